package bureauparser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// BatchResult summarizes a batch conversion run.
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    []string
}

// BatchConvert converts every XML file in inputDir that validates as a
// bureau report, writing one CSV per report into outputDir. Files that
// do not look like bureau reports are skipped; files that fail to
// convert are collected in the result rather than aborting the run.
func BatchConvert(inputDir, outputDir string) (*BatchResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("error reading input directory: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	result := &BatchResult{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}

		inputFile := filepath.Join(inputDir, entry.Name())
		valid, err := ValidateFormat(inputFile)
		if err != nil || !valid {
			log.WithField("file", inputFile).Debug("Skipping file that is not a bureau report")
			result.Skipped++
			continue
		}

		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		outputFile := filepath.Join(outputDir, base+".csv")

		if err := ConvertToCSV(inputFile, outputFile); err != nil {
			log.WithFields(logrus.Fields{
				"file":  inputFile,
				"error": err,
			}).Error("Failed to convert file")
			result.Failed = append(result.Failed, entry.Name())
			continue
		}
		result.Processed++
	}

	log.WithFields(logrus.Fields{
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"failed":    len(result.Failed),
	}).Info("Batch conversion complete")
	return result, nil
}
