// Package validate handles report format validation commands
package validate

import (
	"crediq/bureau-xml/cmd/root"
	"crediq/bureau-xml/internal/bureauparser"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether a file is a bureau report",
	Long: `Check whether an XML file is a recognizable bureau credit report
without converting it.

Example:
  bureau-xml validate -i report.xml`,
	Run: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file must be specified")
	}

	valid, err := bureauparser.ValidateFormat(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error validating file: %v", err)
	}

	if valid {
		root.Log.Infof("%s is a recognizable bureau report", root.SharedFlags.Input)
	} else {
		root.Log.Warnf("%s is not a recognizable bureau report", root.SharedFlags.Input)
	}
}
