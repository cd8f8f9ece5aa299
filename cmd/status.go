package cmd

import (
	"github.com/creativeprojects/mailcheck/status"
	"github.com/creativeprojects/mailcheck/term"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const dateFormat = "2006-01-02 15:04:05 MST"

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the status of each user",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	_, store, err := loadStore(config)
	if err != nil {
		return err
	}
	if len(store) == 0 {
		term.Warn("No user to check")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(statusTable(store)).Render()
}

func statusTable(store status.Store) pterm.TableData {
	data := pterm.TableData{
		{"Address", "Status", "Last checked"},
	}
	for _, address := range store.Addresses() {
		entry := store[address]
		lastChecked := "never"
		if entry.LastChecked != nil {
			lastChecked = entry.LastChecked.Format(dateFormat)
		}
		data = append(data, []string{address, string(entry.Status), lastChecked})
	}
	return data
}
