// Package root contains the root command for the application
package root

import (
	"os"

	"crediq/bureau-xml/internal/api"
	"crediq/bureau-xml/internal/bureauparser"
	"crediq/bureau-xml/internal/common"
	"crediq/bureau-xml/internal/config"
	"crediq/bureau-xml/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bureau-xml",
		Short: "A CLI tool to parse consumer credit bureau XML reports.",
		Long: `bureau-xml parses consumer credit bureau XML reports into a normalized
structure and exports them to CSV or JSON. It can also serve the parsed
reports over an HTTP API backed by a local SQLite store.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to bureau-xml!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger for all packages
			bureauparser.SetLogger(Log)
			store.SetLogger(Log)
			api.SetLogger(Log)

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
}
