package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"ring-cli/pkg/models"
)

var (
	historyLimit int
	recordingID  uint64
)

var dingsCmd = &cobra.Command{
	Use:   "dings",
	Short: "Review motion and ring events",
	Long:  `List active or historical dings (motion and doorbell events) and resolve recording URLs.`,
}

var dingsActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "List dings currently in progress",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		dings, err := api.ListActiveDings()
		if err != nil {
			fmt.Printf("Error fetching active dings: %v\n", err)
			os.Exit(1)
		}

		printDings(dings)
	},
}

var dingsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent dings",
	Example: `  ring-cli dings history --limit 50`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		dings, err := api.ListDingHistory(historyLimit)
		if err != nil {
			fmt.Printf("Error fetching ding history: %v\n", err)
			os.Exit(1)
		}

		printDings(dings)
	},
}

var dingsRecordingCmd = &cobra.Command{
	Use:   "recording",
	Short: "Resolve the recording URL for a ding",
	Long: `Looks the ding up in recent history and prints the signed, time-limited
URL of its video recording. The URL expires quickly; download promptly.`,
	Example: `  ring-cli dings recording --id 6757199004`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		dings, err := api.ListDingHistory(historyLimit)
		if err != nil {
			fmt.Printf("Error fetching ding history: %v\n", err)
			os.Exit(1)
		}

		for _, d := range dings {
			if d.ID != recordingID {
				continue
			}

			url, err := api.RecordingURL(d)
			if err != nil {
				fmt.Printf("Error resolving recording: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(url)
			return
		}

		fmt.Printf("Error: ding %d not found in the last %d history entries. Try a larger --limit.\n",
			recordingID, historyLimit)
		os.Exit(1)
	},
}

// printDings renders a ding list as JSON or a table, newest first as the API
// returns them.
func printDings(dings []models.Ding) {
	// --- JSON OUTPUT ---
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dings); err != nil {
			fmt.Printf("Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(dings) == 0 {
		fmt.Println("No dings found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTYPE\tDEVICE\tANSWERED\tRECORDING")
	fmt.Fprintln(w, "--\t----\t----\t------\t--------\t---------")

	for _, d := range dings {
		device := "-"
		if d.Device != nil {
			device = d.Device.Description
		}

		recording := "pending"
		if d.RecordingIsReady {
			recording = "ready"
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n",
			d.ID,
			d.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			d.Type,
			device,
			d.Answered,
			recording,
		)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(dingsCmd)

	dingsCmd.AddCommand(dingsActiveCmd)
	dingsCmd.AddCommand(dingsHistoryCmd)
	dingsCmd.AddCommand(dingsRecordingCmd)

	dingsHistoryCmd.Flags().IntVar(&historyLimit, "limit", 30, "Maximum number of dings to list")

	dingsRecordingCmd.Flags().Uint64Var(&recordingID, "id", 0, "ID of the ding")
	dingsRecordingCmd.Flags().IntVar(&historyLimit, "limit", 30, "How far back in history to search")
	_ = dingsRecordingCmd.MarkFlagRequired("id")
}
