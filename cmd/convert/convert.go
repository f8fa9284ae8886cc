// Package convert handles single-file report conversion commands
package convert

import (
	"strings"

	"crediq/bureau-xml/cmd/root"
	"crediq/bureau-xml/internal/bureauparser"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a bureau report XML file",
	Long: `Convert a bureau report XML file to CSV or JSON.

CSV output contains the report's credit accounts; JSON output contains
the complete normalized report.

Example:
  bureau-xml convert -i report.xml -o report.csv
  bureau-xml convert -i report.xml -o report.json --format json`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format (csv or json)")
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Convert command called")
	root.Log.Infof("Input report file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		root.Log.Fatal("Input and output files must be specified")
	}

	if root.SharedFlags.Validate {
		valid, err := bureauparser.ValidateFormat(root.SharedFlags.Input)
		if err != nil {
			root.Log.Fatalf("Error validating file: %v", err)
		}
		if !valid {
			root.Log.Fatal("Input file is not a recognizable bureau report")
		}
	}

	var err error
	switch strings.ToLower(format) {
	case "json":
		err = bureauparser.ConvertToJSON(root.SharedFlags.Input, root.SharedFlags.Output)
	case "csv":
		err = bureauparser.ConvertToCSV(root.SharedFlags.Input, root.SharedFlags.Output)
	default:
		root.Log.Fatalf("Unsupported output format: %s", format)
	}
	if err != nil {
		root.Log.Fatalf("Error converting file: %v", err)
	}

	root.Log.Info("Report conversion completed successfully!")
}
