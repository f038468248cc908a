package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/longkey1/sunyata/internal/sunyata/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFields = "configfile, base_url, model, top_p, max_tokens, temperature, timeout, prompt_file, addr, history_limit, rate_limit, session_idle_timeout, api_key"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.
The API key is read from HF_API_KEY (or a .env file) and is always masked.

If a field name is specified, only that field's value is displayed.
Available fields: ` + configFields + `

Examples:
  sunyata config                # Show all configuration
  sunyata config model          # Show only model
  sunyata config api_key        # Show only the masked API key`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		apiKey := "(not set)"
		if creds, err := config.LoadCredentials(dotenvFile); err == nil {
			apiKey = config.MaskToken(creds.APIKey)
		}

		values := []struct {
			field, label string
			value        interface{}
		}{
			{"configfile", "ConfigFile", viper.ConfigFileUsed()},
			{"base_url", "BaseURL", cfg.BaseURL},
			{"model", "Model", cfg.Model},
			{"top_p", "TopP", cfg.TopP},
			{"max_tokens", "MaxTokens", cfg.MaxTokens},
			{"temperature", "Temperature", cfg.Temperature},
			{"timeout", "Timeout", cfg.Timeout},
			{"prompt_file", "PromptFile", cfg.PromptFile},
			{"addr", "Addr", cfg.Addr},
			{"history_limit", "HistoryLimit", cfg.HistoryLimit},
			{"rate_limit", "RateLimit", cfg.RateLimit},
			{"session_idle_timeout", "SessionIdleTimeout", cfg.SessionIdleTimeout},
			{"api_key", "APIKey", apiKey},
		}

		// If a field is specified, show only that field
		if len(args) > 0 {
			field := strings.ToLower(args[0])
			for _, v := range values {
				if v.field == field || strings.ReplaceAll(v.field, "_", "") == field {
					fmt.Println(v.value)
					return nil
				}
			}
			fmt.Fprintf(os.Stderr, "Available fields: %s\n", configFields)
			return fmt.Errorf("unknown field: %s", args[0])
		}

		for _, v := range values {
			fmt.Printf("%s: %v\n", v.label, v.value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
