package main

import "github.com/creativeprojects/mailcheck/cmd"

// set by goreleaser
var (
	version = "0.0.0-dev"
	commit  = ""
	date    = ""
	builtBy = ""
)

func main() {
	cmd.SetApp(version, commit, date, builtBy)
	cmd.Execute()
}
