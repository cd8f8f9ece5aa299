package cmd

import (
	"os"

	"github.com/creativeprojects/mailcheck/cfg"
	"github.com/creativeprojects/mailcheck/term"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mailcheck",
	Short: "Send a deprecation notice and check for automatic replies",
	Long: "\nSend a deprecation notice to a list of users, and mark as complete the users" +
		"\nwho sent back an automatic reply. Without a command, runs the full check.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCheck,
}

func init() {
	cobra.OnInitialize(initEnv, initLog)
	flag := rootCmd.PersistentFlags()
	flag.StringVarP(&global.configFile, "config", "c", cfg.DefaultFilename, "configuration file")
	flag.BoolVarP(&global.quiet, "quiet", "q", false, "only display warnings and errors")
	flag.BoolVarP(&global.verbose, "verbose", "v", false, "display debugging information")
}

// initEnv loads the optional .env file from the current directory
func initEnv() {
	_ = godotenv.Load()
}

func initLog() {
	switch {
	case global.verbose:
		term.SetLevel(term.LevelDebug)
	case global.quiet:
		term.SetLevel(term.LevelWarn)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		term.Error(err)
		os.Exit(1)
	}
}
