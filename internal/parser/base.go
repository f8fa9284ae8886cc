// Package parser provides the parser contract and shared base functionality.
package parser

import (
	"crediq/bureau-xml/internal/common"
	"crediq/bureau-xml/internal/logging"
	"crediq/bureau-xml/internal/models"
)

// BaseParser provides common functionality for parser implementations.
// Parsers embed it to inherit logging configuration and export helpers:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser with the provided logger. A nil
// logger falls back to a default.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseParser{logger: logger}
}

// SetBaseLogger replaces the embedded logger.
func (b *BaseParser) SetBaseLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance. A zero-value
// BaseParser lazily falls back to the standard logger so embedding
// structs stay usable without construction.
func (b *BaseParser) GetLogger() logging.Logger {
	if b.logger == nil {
		b.logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return b.logger
}

// WriteToCSV writes a transformed report's accounts to a CSV file using
// the standardized writer so output stays consistent across parsers.
func (b *BaseParser) WriteToCSV(report *models.TransformedReport, csvFile string) error {
	b.GetLogger().Info("Writing report accounts to CSV",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile})
	return common.WriteAccountsToCSV(report, csvFile)
}
