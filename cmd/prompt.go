/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/spf13/cobra"
)

var (
	promptFlags  requestFlags
	promptAsJSON bool
	promptSystem bool
)

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt [query]",
	Short: "Show the prompt that would be sent, without sending it",
	Long: `Assemble the conversation for a request and print it without calling the
inference endpoint. It takes the same flags as 'sunyata ask'.

By default only the user prompt is printed. Use --system to include the
system prompt, or --json to print the messages as the endpoint receives them.

The system prompt can be replaced with a TOML file set as prompt_file in the
configuration:
system = "You are ..."
model = "optional-model-name"  # Optional: overrides the configured model`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, system, err := loadConfig()
		if err != nil {
			return err
		}

		query, err := promptFlags.readQuery(args, os.Stdin)
		if err != nil {
			return err
		}
		req, err := promptFlags.request(cmd, cfg, query)
		if err != nil {
			return err
		}

		user, err := prompt.Build(prompt.Request{
			TaskType:     req.TaskType,
			Language:     req.Language,
			Body:         req.Query,
			Requirements: req.Requirements,
			Action:       req.Action,
		})
		if err != nil {
			return err
		}

		if promptAsJSON {
			out := struct {
				Model       string            `json:"model"`
				Temperature float32           `json:"temperature"`
				TopP        float32           `json:"top_p"`
				MaxTokens   int               `json:"max_tokens"`
				Messages    []sunyata.Message `json:"messages"`
			}{
				Model:       cfg.Model,
				Temperature: req.Temperature,
				TopP:        cfg.TopP,
				MaxTokens:   cfg.MaxTokens,
				Messages:    prompt.Messages(system, user),
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		if promptSystem {
			fmt.Printf("System:\n%s\n\nUser:\n", system)
		}
		fmt.Println(user)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)

	promptFlags.register(promptCmd)
	promptCmd.Flags().BoolVar(&promptAsJSON, "json", false, "Print the request messages and parameters as JSON")
	promptCmd.Flags().BoolVar(&promptSystem, "system", false, "Include the system prompt")
}
