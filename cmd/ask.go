package cmd

import (
	"fmt"
	"os"

	"github.com/longkey1/sunyata/internal/render"
	"github.com/longkey1/sunyata/internal/sunyata/session"
	"github.com/spf13/cobra"
)

var (
	askFlags  requestFlags
	askRender bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask the assistant once and stream the answer",
	Long: `Send one request to the assistant and stream the answer to stdout.

If no query is provided as an argument, it reads from stdin.
If --editor flag is set, it opens the default editor (from EDITOR environment variable) to compose the query.

Examples:
  sunyata ask -l Python "reverse a linked list"
  sunyata ask -l SQL -t "Explain Code" < query.sql
  sunyata ask -l Java -a debug -r testing < Main.java
  sunyata ask --render "binary search in C++" -l c++`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, system, err := loadConfig()
		if err != nil {
			return err
		}

		query, err := askFlags.readQuery(args, os.Stdin)
		if err != nil {
			return err
		}
		req, err := askFlags.request(cmd, cfg, query)
		if err != nil {
			return err
		}

		a, err := newAssistant(cfg, system, newLogger(false))
		if err != nil {
			return err
		}
		// Reject bad input before anything is streamed.
		if err := a.Validate(req); err != nil {
			return err
		}

		pretty := askRender && render.IsStdoutTTY()
		sink := func(fragment string) {
			fmt.Print(fragment)
		}
		if pretty {
			sink = nil
		}

		it, err := a.Submit(cmd.Context(), session.NewSession(), req, sink)
		if err != nil {
			return err
		}

		if pretty {
			fmt.Print(render.NewTerminal(100).Render(it.Response))
		} else {
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askFlags.register(askCmd)
	askCmd.Flags().BoolVar(&askRender, "render", false, "Render the answer as Markdown when stdout is a terminal")
}
