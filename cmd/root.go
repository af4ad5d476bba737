package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"ring-cli/internal/config"
	"ring-cli/internal/logging"
)

var (
	cfgFile    string
	jsonOutput bool
	logLevel   string
	logger     *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ring-cli",
	Short: "A CLI for the Ring home-security cloud API",
	Long: `List your Ring devices, review motion and ring events (dings),
and resolve recording URLs via the Ring cloud API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		config.InitConfig(cfgFile)
		logger = logging.New(logLevel)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ring-cli.yaml)")

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
