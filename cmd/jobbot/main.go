// cmd/jobbot/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "jobbot",
		Short:         "Conversational job search assistant",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: configs/config.yaml)")

	root.AddCommand(
		newServeCmd(&configPath),
		newChatCmd(&configPath),
		newWorkerCmd(&configPath),
		newClassifyCmd(&configPath),
	)
	return root
}
