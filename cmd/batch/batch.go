// Package batch handles batch processing of report files
package batch

import (
	"crediq/bureau-xml/cmd/root"
	"crediq/bureau-xml/internal/bureauparser"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch convert report files from a directory",
	Long: `Batch convert all bureau report XML files in an input directory,
writing one CSV per report into the output directory. Files that are
not bureau reports are skipped.

Example:
  bureau-xml batch -i input_dir/ -o output_dir/`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	root.Log.Infof("Input directory: %s", inputDir)
	root.Log.Infof("Output directory: %s", outputDir)

	if inputDir == "" || outputDir == "" {
		root.Log.Fatal("Input and output directories must be specified")
	}

	result, err := bureauparser.BatchConvert(inputDir, outputDir)
	if err != nil {
		root.Log.Fatalf("Error during batch conversion: %v", err)
	}

	root.Log.Infof("Batch processing completed. %d files converted, %d skipped, %d failed.",
		result.Processed, result.Skipped, len(result.Failed))
	for _, name := range result.Failed {
		root.Log.Warnf("Failed to convert: %s", name)
	}
}
