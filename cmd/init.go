package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/sunyata/internal/sunyata/config"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize the configuration file with default settings.
The config file will be created at $HOME/.config/sunyata/config.toml by default.
You can specify a different location using the --config option.

A system.toml holding the default system prompt is written next to it. Set
prompt_file = "system.toml" in the config to use an edited copy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := userConfigDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %v", err)
		}
		configFile := filepath.Join(dir, "config.toml")
		if cfgFile != "" {
			configFile = cfgFile
		}
		configDir := filepath.Dir(configFile)

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %v", err)
		}
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("config file already exists at: %s", configFile)
		}

		if err := writeTOML(configFile, config.NewDefaultConfig()); err != nil {
			return err
		}
		fmt.Printf("Configuration file created at: %s\n", configFile)

		promptFile := filepath.Join(configDir, "system.toml")
		if _, err := os.Stat(promptFile); err == nil {
			return nil
		}
		if err := writeTOML(promptFile, prompt.Prompt{System: prompt.DefaultSystemPrompt}); err != nil {
			return err
		}
		fmt.Printf("System prompt template created at: %s\n", promptFile)
		return nil
	},
}

func writeTOML(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %v", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
