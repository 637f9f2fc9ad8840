package main

import (
	"os"

	"visitavigliano/internal/cli"
	appLog "visitavigliano/internal/log"
)

func main() {
	appLog.Info("visitavigliano starting", "version", cli.Version)

	if err := cli.NewRootCmd().Execute(); err != nil {
		appLog.Error("command failed", err)
		os.Exit(cli.ExitError)
	}
	os.Exit(cli.ExitSuccess)
}
