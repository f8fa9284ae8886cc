// Package common provides shared export functionality for transformed
// reports.
package common

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"crediq/bureau-xml/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Delimiter is the global CSV delimiter, configurable via SetDelimiter.
var Delimiter rune = ','

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// SetDelimiter sets the delimiter used for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(w)
	})
}

// accountRow is the CSV projection of a CreditAccount.
type accountRow struct {
	Type             string `csv:"Type"`
	BankName         string `csv:"Bank"`
	AccountNumber    string `csv:"Account Number"`
	Status           string `csv:"Status"`
	DateOpened       string `csv:"Date Opened"`
	DateClosed       string `csv:"Date Closed"`
	LastReported     string `csv:"Last Reported"`
	CurrentBalance   string `csv:"Current Balance"`
	AmountOverdue    string `csv:"Amount Overdue"`
	SanctionedAmount string `csv:"Sanctioned Amount"`
	PaymentHistory   string `csv:"Payment History"`
}

// enquiryRow is the CSV projection of an Enquiry.
type enquiryRow struct {
	Institution string `csv:"Institution"`
	Date        string `csv:"Date"`
	Amount      string `csv:"Amount"`
	Purpose     string `csv:"Purpose"`
}

// WriteAccountsToCSV writes a report's credit accounts to a CSV file.
func WriteAccountsToCSV(report *models.TransformedReport, csvFile string) error {
	if report == nil {
		return fmt.Errorf("cannot write nil report to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(report.CreditAccounts),
	}).Info("Writing credit accounts to CSV file")

	rows := make([]accountRow, 0, len(report.CreditAccounts))
	for _, account := range report.CreditAccounts {
		rows = append(rows, accountRow{
			Type:             account.Type,
			BankName:         account.BankName,
			AccountNumber:    account.AccountNumber,
			Status:           account.Status,
			DateOpened:       formatDate(account.DateOpened),
			DateClosed:       formatDate(account.DateClosed),
			LastReported:     formatDate(account.LastReported),
			CurrentBalance:   account.CurrentBalance.String(),
			AmountOverdue:    account.AmountOverdue.String(),
			SanctionedAmount: account.SanctionedAmount.String(),
			PaymentHistory:   account.PaymentHistory,
		})
	}

	return writeCSVFile(csvFile, &rows)
}

// WriteEnquiriesToCSV writes a report's enquiries to a CSV file.
func WriteEnquiriesToCSV(report *models.TransformedReport, csvFile string) error {
	if report == nil {
		return fmt.Errorf("cannot write nil report to CSV")
	}

	rows := make([]enquiryRow, 0, len(report.Enquiries))
	for _, enquiry := range report.Enquiries {
		rows = append(rows, enquiryRow{
			Institution: enquiry.Institution,
			Date:        enquiry.Date.Format("2006-01-02"),
			Amount:      enquiry.Amount.String(),
			Purpose:     enquiry.Purpose,
		})
	}

	return writeCSVFile(csvFile, &rows)
}

// WriteReportToJSON writes the full transformed report as indented JSON.
func WriteReportToJSON(report *models.TransformedReport, jsonFile string) error {
	if report == nil {
		return fmt.Errorf("cannot write nil report to JSON")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling report: %w", err)
	}

	if err := os.WriteFile(jsonFile, data, 0644); err != nil {
		return fmt.Errorf("error writing JSON file: %w", err)
	}

	log.WithField("file", jsonFile).Info("Wrote report JSON")
	return nil
}

func writeCSVFile(csvFile string, rows interface{}) error {
	f, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
