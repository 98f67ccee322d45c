package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"job-assistant/internal/assistant"
	"job-assistant/internal/responder"

	"github.com/spf13/cobra"
)

func newChatCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant on the terminal (type exit to quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			asst, err := a.buildAssistant(nil)
			if err != nil {
				return err
			}
			return chat(cmd.Context(), asst, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// chat runs the prompt loop until "exit" (any case) or end of input.
func chat(ctx context.Context, asst *assistant.Assistant, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		line := sc.Text()
		if strings.EqualFold(line, "exit") {
			return nil
		}

		resp := asst.Answer(ctx, line)
		fmt.Fprintf(out, "Bot: %s\n", responder.Render(resp))
	}
}
