package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"ring-cli/internal/client"
	"ring-cli/pkg/models"
)

// Helper to rebuild an authenticated client from the saved token.
// Exits with a re-login hint when the token is missing or rejected.
func setupClient() *client.RingClient {
	token := viper.GetString("auth_token")
	baseURL := viper.GetString("base_url")

	if token == "" {
		fmt.Println("Error: Not logged in. Please run 'ring-cli login' first.")
		os.Exit(1)
	}

	api, err := client.NewFromToken(client.ClientConfig{BaseURL: baseURL, Logger: logger}, token)
	if err != nil {
		if errors.Is(err, client.ErrAuthentication) {
			fmt.Println("Error: Saved token was rejected. Please run 'ring-cli login' again.")
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}

	return api
}

// Parent Command
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Inspect Ring devices",
	Long:  `List the doorbells, chimes, and cameras on your account.`,
}

// List Command
var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all devices",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		devices, err := api.ListDevices()
		if err != nil {
			fmt.Printf("Error fetching devices: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(devices); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tDESCRIPTION\tTYPE\tBATTERY\tADDRESS")
		fmt.Fprintln(w, "--\t-----------\t----\t-------\t-------")

		for _, d := range devices {
			battery := "n/a"
			if d.BatteryLife != models.BatteryNotApplicable {
				battery = fmt.Sprintf("%d%%", d.BatteryLife)
			}

			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				d.ID,
				d.Description,
				d.Type,
				battery,
				d.Address,
			)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.AddCommand(devicesListCmd)
}
