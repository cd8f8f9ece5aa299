package cmd

import (
	"github.com/creativeprojects/mailcheck/cfg"
	"github.com/creativeprojects/mailcheck/credential"
)

type GlobalFlags struct {
	configFile string
	quiet      bool
	verbose    bool
}

var global GlobalFlags

// loadConfig reads the configuration file given on the command line
func loadConfig() (*cfg.Config, error) {
	return cfg.LoadFromFile(global.configFile)
}

// keyringLookup is the last resort to find the account password
func keyringLookup(account string) (string, error) {
	ring, err := credential.Open()
	if err != nil {
		return "", err
	}
	return ring.Get(account)
}
