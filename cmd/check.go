package cmd

import (
	"github.com/creativeprojects/mailcheck/cfg"
	"github.com/creativeprojects/mailcheck/checker"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan for automatic replies then send the notice to the pending users (default command)",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	err = config.ResolveCredentials(keyringLookup)
	if err != nil {
		return err
	}
	pending, err := check(config)
	if err != nil {
		return err
	}
	displayPending(pending)
	return nil
}

// check runs the scan then sends the notices, and returns the users still pending
func check(config *cfg.Config) ([]string, error) {
	file, store, err := loadStore(config)
	if err != nil {
		return nil, err
	}
	_, pending, err := checker.Run(store, newScanner(config, file), newNotifier(config, file), config.Recipients())
	if err != nil {
		return nil, err
	}
	return pending, nil
}
