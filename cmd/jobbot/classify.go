package main

import (
	"encoding/json"
	"strings"

	"job-assistant/internal/jobsource"

	"github.com/spf13/cobra"
)

func newClassifyCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text...>",
		Short: "Print the intent, confidence and entities for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			// No listings are needed to classify.
			asst, err := a.buildAssistant(jobsource.Static(nil))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(asst.Understand(strings.Join(args, " ")))
		},
	}
}
