package parser

import (
	"os"
	"path/filepath"
	"testing"

	"crediq/bureau-xml/internal/logging"
	"crediq/bureau-xml/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseParser(t *testing.T) {
	t.Run("with provided logger", func(t *testing.T) {
		mockLog := &logging.MockLogger{}
		baseParser := NewBaseParser(mockLog)

		assert.Equal(t, mockLog, baseParser.logger)
	})

	t.Run("with nil logger uses default", func(t *testing.T) {
		baseParser := NewBaseParser(nil)

		assert.NotNil(t, baseParser.GetLogger())
	})
}

func TestBaseParser_SetBaseLogger(t *testing.T) {
	t.Run("sets new logger", func(t *testing.T) {
		baseParser := NewBaseParser(nil)
		mockLog := &logging.MockLogger{}

		baseParser.SetBaseLogger(mockLog)

		assert.Equal(t, mockLog, baseParser.logger)
	})

	t.Run("ignores nil logger", func(t *testing.T) {
		mockLog := &logging.MockLogger{}
		baseParser := NewBaseParser(mockLog)

		baseParser.SetBaseLogger(nil)

		assert.Equal(t, mockLog, baseParser.logger)
	})
}

func TestBaseParser_GetLoggerZeroValue(t *testing.T) {
	var baseParser BaseParser

	logger := baseParser.GetLogger()

	assert.NotNil(t, logger)
}

func TestBaseParser_WriteToCSV(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "accounts.csv")

	mockLog := &logging.MockLogger{}
	baseParser := NewBaseParser(mockLog)

	report := &models.TransformedReport{
		CreditAccounts: []models.CreditAccount{
			{
				Type:           "Credit Card (Revolving)",
				BankName:       "HDFC Bank",
				AccountNumber:  "XXXX1234",
				Status:         "Active - Regular",
				CurrentBalance: decimal.NewFromInt(45000),
			},
		},
	}

	require.NoError(t, baseParser.WriteToCSV(report, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Credit Card (Revolving)")

	assert.True(t, mockLog.HasMessage("Writing report accounts to CSV"))
	require.NotEmpty(t, mockLog.Entries)
	assert.Equal(t, logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		mockLog.Entries[0].Fields[0])
}
