package cmd

import (
	"github.com/creativeprojects/mailcheck/cfg"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send the notice to the pending users, without checking for replies first",
	RunE:  runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	err = config.ResolveCredentials(keyringLookup)
	if err != nil {
		return err
	}
	pending, err := send(config)
	if err != nil {
		return err
	}
	displayPending(pending)
	return nil
}

func send(config *cfg.Config) ([]string, error) {
	file, store, err := loadStore(config)
	if err != nil {
		return nil, err
	}
	store, err = newNotifier(config, file).Send(store, config.Recipients())
	if err != nil {
		return nil, err
	}
	return store.Pending(), nil
}
