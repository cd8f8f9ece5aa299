package cmd

import (
	"github.com/creativeprojects/mailcheck/cfg"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Mark as complete the users who sent an automatic reply",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	err = inboundCredentials(config, keyringLookup)
	if err != nil {
		return err
	}
	pending, err := scan(config)
	if err != nil {
		return err
	}
	displayPending(pending)
	return nil
}

func scan(config *cfg.Config) ([]string, error) {
	file, store, err := loadStore(config)
	if err != nil {
		return nil, err
	}
	store, err = newScanner(config, file).Scan(store)
	if err != nil {
		return nil, err
	}
	return store.Pending(), nil
}
