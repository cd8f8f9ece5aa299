package cmd

import "github.com/creativeprojects/mailcheck/term"

func displayPending(pending []string) {
	if len(pending) == 0 {
		term.Info("No pending users remaining!")
		return
	}
	term.Print("Pending users:")
	for _, address := range pending {
		term.Print("- " + address)
	}
	term.Printf("Total pending users: %d", len(pending))
}
