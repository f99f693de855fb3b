package commands

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/opentoclose/internal/constants"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
	"github.com/fivetwenty-io/opentoclose/pkg/otcclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store and verify an API token",
		Long:  "Verify an Open To Close API token against the API and persist it in the CLI config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = viper.GetString("token")
			}

			if token == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = string(byteToken)

				fmt.Println()
			}

			if token == "" {
				return otc.NewAuthenticationError("API token is required")
			}

			client, err := otcclient.New(&otc.Config{
				APIKey:      token,
				BaseURL:     viper.GetString("api"),
				HTTPTimeout: constants.ShortHTTPTimeout,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the token with a cheap read before persisting it.
			if _, err := client.Teams().List(context.Background(), map[string]interface{}{"limit": 1}); err != nil {
				return fmt.Errorf("token verification failed: %w", err)
			}

			config := loadCLIConfig()
			config.Token = token

			if api := viper.GetString("api"); api != "" {
				config.API = api
			}

			if err := saveCLIConfig(config); err != nil {
				return err
			}

			fmt.Println("Login successful")

			return nil
		},
	}

	cmd.Flags().StringVar(&token, "api-token", "", "API token (prompted when omitted)")

	return cmd
}
