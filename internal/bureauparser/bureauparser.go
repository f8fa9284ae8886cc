// Package bureauparser parses consumer credit bureau XML reports and
// transforms them into the normalized report structure. It handles both
// the primary bureau layout and a set of legacy layouts produced by
// older report generators.
package bureauparser

import (
	"fmt"
	"io"
	"os"

	"crediq/bureau-xml/internal/banknames"
	"crediq/bureau-xml/internal/common"
	"crediq/bureau-xml/internal/logging"
	"crediq/bureau-xml/internal/models"
	"crediq/bureau-xml/internal/parser"
	"crediq/bureau-xml/internal/parsererror"
	"crediq/bureau-xml/internal/schema"
	"crediq/bureau-xml/internal/transformer"
	"crediq/bureau-xml/internal/xmltree"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
		xmltree.SetLogger(logger)
		transformer.SetLogger(logger)
		schema.SetLogger(logger)
		common.SetLogger(logger)
	}
}

// Parse reads bureau report XML from r and transforms it into the
// normalized report structure.
func Parse(r io.Reader) (*models.TransformedReport, error) {
	doc, err := xmltree.Decode(r)
	if err != nil {
		return nil, err
	}
	return transformDocument(doc)
}

// ParseFile parses a bureau report XML file on disk.
func ParseFile(filePath string) (*models.TransformedReport, error) {
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil, parsererror.FileNotFoundError(filePath)
		}
		return nil, fmt.Errorf("error checking file: %w", err)
	}

	log.WithField("file", filePath).Info("Parsing bureau report file")

	doc, err := xmltree.DecodeFile(filePath)
	if err != nil {
		return nil, err
	}
	return transformDocument(doc)
}

// transformDocument validates a decoded document and runs the
// transformation.
func transformDocument(doc xmltree.Mapping) (*models.TransformedReport, error) {
	if !schema.Validate(doc) {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "bureau credit report XML",
			Msg:            "document root does not look like a bureau report",
		}
	}

	report, err := transformer.Transform(doc)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"accounts":  len(report.CreditAccounts),
		"enquiries": len(report.Enquiries),
	}).Info("Parsed bureau report")
	return report, nil
}

// ValidateFormat checks whether the file looks like a bureau report
// without performing the full transformation.
func ValidateFormat(filePath string) (bool, error) {
	return schema.ValidateFormat(filePath)
}

// ConvertToCSV parses a bureau report file and writes its credit
// accounts to a CSV file.
func ConvertToCSV(inputFile, outputFile string) error {
	report, err := ParseFile(inputFile)
	if err != nil {
		return err
	}
	return common.WriteAccountsToCSV(report, outputFile)
}

// ConvertToJSON parses a bureau report file and writes the full
// normalized report as JSON.
func ConvertToJSON(inputFile, outputFile string) error {
	report, err := ParseFile(inputFile)
	if err != nil {
		return err
	}
	return common.WriteReportToJSON(report, outputFile)
}

// Adapter wraps the package-level functions behind the parser.Parser
// interface, with optional bank name normalization applied to the
// parsed accounts. It embeds BaseParser so its own logging flows
// through the logging.Logger abstraction and is mockable in tests.
type Adapter struct {
	parser.BaseParser
	BankNames *banknames.Store
}

// NewAdapter creates an Adapter for the bureau report format.
func NewAdapter() parser.Parser {
	return &Adapter{BaseParser: parser.NewBaseParser(nil)}
}

// Parse implements parser.Parser.
func (a *Adapter) Parse(r io.Reader) (*models.TransformedReport, error) {
	report, err := Parse(r)
	if err != nil {
		a.GetLogger().WithError(err).Error("Failed to parse bureau report")
		return nil, err
	}
	a.normalize(report)
	a.GetLogger().Info("Parsed bureau report",
		logging.Field{Key: logging.FieldCount, Value: len(report.CreditAccounts)})
	return report, nil
}

// ParseFile implements parser.Parser.
func (a *Adapter) ParseFile(filePath string) (*models.TransformedReport, error) {
	a.GetLogger().Info("Parsing bureau report file",
		logging.Field{Key: logging.FieldInputFile, Value: filePath})

	report, err := ParseFile(filePath)
	if err != nil {
		a.GetLogger().WithError(err).Error("Failed to parse bureau report")
		return nil, err
	}
	a.normalize(report)
	return report, nil
}

// ValidateFormat implements parser.Parser.
func (a *Adapter) ValidateFormat(filePath string) (bool, error) {
	return ValidateFormat(filePath)
}

// ConvertToCSV implements parser.Parser.
func (a *Adapter) ConvertToCSV(inputFile, outputFile string) error {
	report, err := a.ParseFile(inputFile)
	if err != nil {
		return err
	}
	return a.WriteToCSV(report, outputFile)
}

// SetLogger implements parser.Parser.
func (a *Adapter) SetLogger(logger *logrus.Logger) {
	SetLogger(logger)
	a.SetBaseLogger(logging.NewLogrusAdapterFromLogger(logger))
}

func (a *Adapter) normalize(report *models.TransformedReport) {
	if a.BankNames == nil {
		return
	}
	for i := range report.CreditAccounts {
		report.CreditAccounts[i].BankName = a.BankNames.Resolve(report.CreditAccounts[i].BankName)
	}
	for i := range report.Enquiries {
		report.Enquiries[i].Institution = a.BankNames.Resolve(report.Enquiries[i].Institution)
	}
}
