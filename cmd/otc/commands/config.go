package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opentoclose/internal/constants"
)

// cliConfig is the persisted shape of ~/.otc/config.yml.
type cliConfig struct {
	API    string `yaml:"api,omitempty"`
	Token  string `yaml:"token,omitempty"`
	Output string `yaml:"output,omitempty"`
}

func configFilePath() (string, error) {
	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".otc", "config.yml"), nil
}

func loadCLIConfig() cliConfig {
	return cliConfig{
		API:    viper.GetString("api"),
		Token:  viper.GetString("token"),
		Output: viper.GetString("output"),
	}
}

func saveCLIConfig(config cliConfig) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	encoded, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, encoded, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and set values persisted in the CLI config file",
	}

	cmd.AddCommand(newConfigViewCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := map[string]string{
				"api":    viper.GetString("api"),
				"output": viper.GetString("output"),
				"token":  maskToken(viper.GetString("token")),
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value")

			keys := make([]string, 0, len(settings))
			for key := range settings {
				keys = append(keys, key)
			}

			sort.Strings(keys)

			for _, key := range keys {
				value := settings[key]
				if value == "" {
					value = NotAvailable
				}

				_ = table.Append(key, value)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Persist a configuration value",
		Long:  "Persist one of: api, token, output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadCLIConfig()

			switch key {
			case "api":
				config.API = value
			case "token":
				config.Token = value
			case "output":
				config.Output = value
			default:
				return fmt.Errorf("unknown config key %q, expected api, token, or output", key)
			}

			if err := saveCLIConfig(config); err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}

	return "***"
}
