/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/spf13/cobra"
)

var optionsAsJSON bool

// optionsCmd represents the options command
var optionsCmd = &cobra.Command{
	Use:   "options [kind]",
	Short: "List the selectable languages, task types, actions and requirements",
	Long: `List the values accepted by --language, --task, --action and --require.
Matching is case-insensitive.

Example:
  sunyata options             # List everything
  sunyata options languages   # List languages only
  sunyata options tasks       # List task types only`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"languages", "tasks", "actions", "requirements"},
	RunE: func(cmd *cobra.Command, args []string) error {
		all := map[string][]string{
			"languages":    labels(sunyata.Languages),
			"tasks":        labels(sunyata.TaskTypes),
			"actions":      labels(sunyata.Actions),
			"requirements": prompt.RequirementNames,
		}
		order := []string{"languages", "tasks", "actions", "requirements"}

		if len(args) > 0 {
			kind := strings.ToLower(args[0])
			if _, ok := all[kind]; !ok {
				return fmt.Errorf("unknown kind '%s'\nAvailable kinds: %s", args[0], strings.Join(order, ", "))
			}
			order = []string{kind}
		}

		if optionsAsJSON {
			out := make(map[string][]string, len(order))
			for _, k := range order {
				out[k] = all[k]
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		for i, k := range order {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s:\n", strings.ToUpper(k[:1])+k[1:])
			for _, v := range all[k] {
				fmt.Printf("  %s\n", v)
			}
		}
		return nil
	},
}

func labels[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&optionsAsJSON, "json", false, "Output as JSON")
}
