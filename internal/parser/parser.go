package parser

import (
	"io"

	"crediq/bureau-xml/internal/models"

	"github.com/sirupsen/logrus"
)

// Parser is the contract for bureau report parsers. A parser understands
// one input format and transforms it into the normalized TransformedReport
// structure. Implementations return typed errors (InvalidFormatError,
// TransformationError) for specific failures.
type Parser interface {
	// Parse reads report data from r and transforms it.
	Parse(r io.Reader) (*models.TransformedReport, error)

	// ParseFile parses a report file on disk.
	ParseFile(filePath string) (*models.TransformedReport, error)

	// ValidateFormat checks whether the file looks like this parser's format.
	ValidateFormat(filePath string) (bool, error)

	// ConvertToCSV parses a report file and writes its accounts to CSV.
	ConvertToCSV(inputFile, outputFile string) error

	// SetLogger configures the parser's logger.
	SetLogger(logger *logrus.Logger)
}
