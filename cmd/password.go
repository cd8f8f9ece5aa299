package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/creativeprojects/mailcheck/credential"
	"github.com/creativeprojects/mailcheck/term"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Manage the account password kept in the system keyring",
}

var passwordSetCmd = &cobra.Command{
	Use:   "set [account]",
	Short: "Save the account password into the system keyring",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPasswordSet,
}

var passwordDeleteCmd = &cobra.Command{
	Use:   "delete [account]",
	Short: "Remove the account password from the system keyring",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPasswordDelete,
}

func init() {
	passwordCmd.AddCommand(passwordSetCmd, passwordDeleteCmd)
	rootCmd.AddCommand(passwordCmd)
}

// accountName defaults to the email address from the configuration
func accountName(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	config, err := loadConfig()
	if err != nil {
		return "", err
	}
	err = config.ResolveAddress()
	if err != nil {
		return "", err
	}
	return config.EmailAddress, nil
}

func runPasswordSet(cmd *cobra.Command, args []string) error {
	account, err := accountName(args)
	if err != nil {
		return err
	}
	fmt.Printf("Password for %s: ", account)
	password, err := xterm.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("cannot read password: %w", err)
	}
	if len(password) == 0 {
		return errors.New("empty password")
	}
	ring, err := credential.Open()
	if err != nil {
		return err
	}
	err = ring.Set(account, string(password))
	if err != nil {
		return err
	}
	term.Infof("password saved for %s", account)
	return nil
}

func runPasswordDelete(cmd *cobra.Command, args []string) error {
	account, err := accountName(args)
	if err != nil {
		return err
	}
	ring, err := credential.Open()
	if err != nil {
		return err
	}
	err = ring.Delete(account)
	if err != nil {
		return err
	}
	term.Infof("password removed for %s", account)
	return nil
}
