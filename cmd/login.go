package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"ring-cli/internal/client"
	"ring-cli/internal/config"
)

// Variables to hold flag values
var (
	host string
	user string
	pass string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the Ring API",
	Long: `Exchanges your Ring account credentials for an auth token and saves
the token locally for future commands. The credentials themselves are never
stored; once the token expires, run login again.

Example:
  ring-cli login --username user@example.com --password secret`,
	Run: func(cmd *cobra.Command, args []string) {
		// Clean up input host (remove trailing slash if present)
		host = strings.TrimRight(host, "/")

		fmt.Printf("Authenticating as user '%s'...\n", user)

		// Exchange credentials for a validated session
		api, err := client.NewFromCredentials(client.ClientConfig{BaseURL: host, Logger: logger}, user, pass)
		if err != nil {
			log.Fatalf("Fatal: Login failed: %v", err)
		}

		fmt.Println("Login successful. Saving configuration...")

		// Persist the base URL only when overridden, so subsequent commands
		// talk to the same host.
		if host != "" {
			viper.Set("base_url", host)
		}

		// Persist the token to file; future commands reconnect with it
		// instead of credentials.
		if err := config.SaveToken(api.AuthToken()); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Printf("Token saved. You can now run commands like './ring-cli devices list'.\n")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	// Define Flags
	// We use local flags because these are specific only to the login action.
	loginCmd.Flags().StringVar(&host, "host", "", "API base URL override (default https://api.ring.com)")
	loginCmd.Flags().StringVarP(&user, "username", "u", "", "Ring account username (email)")
	loginCmd.Flags().StringVarP(&pass, "password", "p", "", "Ring account password")

	// Mark required flags to ensure the user provides necessary info
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
