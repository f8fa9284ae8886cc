package bureauparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crediq/bureau-xml/internal/banknames"
	"crediq/bureau-xml/internal/logging"
	"crediq/bureau-xml/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<INProfileResponse>
  <Current_Application>
    <Current_Application_Details>
      <Current_Applicant_Details>
        <First_Name>Ravi</First_Name>
        <Last_Name>Kumar</Last_Name>
        <IncomeTaxPan>ABCDE1234F</IncomeTaxPan>
        <MobilePhoneNumber>9876543210</MobilePhoneNumber>
      </Current_Applicant_Details>
    </Current_Application_Details>
  </Current_Application>
  <CAIS_Account>
    <CAIS_Account_DETAILS>
      <Subscriber_Name>HDFCBK</Subscriber_Name>
      <Account_Number>XXXX1234</Account_Number>
      <Account_Type>10</Account_Type>
      <Portfolio_Type>R</Portfolio_Type>
      <Account_Status>11</Account_Status>
      <Current_Balance>45000</Current_Balance>
      <Open_Date>20200315</Open_Date>
    </CAIS_Account_DETAILS>
  </CAIS_Account>
  <SCORE>
    <BureauScore>780</BureauScore>
  </SCORE>
</INProfileResponse>`

func writeSampleFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0600))
	return path
}

func TestParse(t *testing.T) {
	report, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	assert.Equal(t, "Ravi Kumar", report.BasicDetails.Name)
	assert.Equal(t, "ABCDE1234F", report.BasicDetails.PAN)
	require.Len(t, report.CreditAccounts, 1)
	assert.Equal(t, "HDFCBK", report.CreditAccounts[0].BankName)
}

func TestParseRejectsUnrecognizedDocument(t *testing.T) {
	xml := `<?xml version="1.0"?><Invoice><Total>10</Total></Invoice>`
	_, err := Parse(strings.NewReader(xml))
	require.Error(t, err)

	var formatErr *parsererror.InvalidFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestParseRejectsMalformedXML(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not xml"))
	assert.Error(t, err)
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()
	valid := writeSampleFile(t, dir, "report.xml")

	ok, err := ValidateFormat(valid)
	require.NoError(t, err)
	assert.True(t, ok)

	other := filepath.Join(dir, "other.xml")
	require.NoError(t, os.WriteFile(other, []byte("<Invoice><Total>10</Total></Invoice>"), 0600))
	ok, err = ValidateFormat(other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConvertToCSV(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleFile(t, dir, "report.xml")
	output := filepath.Join(dir, "report.csv")

	require.NoError(t, ConvertToCSV(input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Credit Card (Revolving)")
	assert.Contains(t, string(data), "2020-03-15")
}

func TestConvertToJSON(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleFile(t, dir, "report.xml")
	output := filepath.Join(dir, "report.json")

	require.NoError(t, ConvertToJSON(input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ravi Kumar")
}

func TestAdapterNormalizesBankNames(t *testing.T) {
	dir := t.TempDir()
	mapping := filepath.Join(dir, "banks.yaml")
	require.NoError(t, os.WriteFile(mapping, []byte("- code: HDFCBK\n  name: HDFC Bank\n"), 0600))

	store := banknames.NewStore(mapping)
	require.NoError(t, store.Load())

	adapter := &Adapter{BankNames: store}
	report, err := adapter.Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	require.Len(t, report.CreditAccounts, 1)
	assert.Equal(t, "HDFC Bank", report.CreditAccounts[0].BankName)
}

func TestAdapterLogsThroughInjectedLogger(t *testing.T) {
	mockLog := &logging.MockLogger{}
	adapter := &Adapter{}
	adapter.SetBaseLogger(mockLog)

	_, err := adapter.Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	assert.True(t, mockLog.HasMessage("Parsed bureau report"))
}

func TestAdapterLogsParseFailure(t *testing.T) {
	mockLog := &logging.MockLogger{}
	adapter := &Adapter{}
	adapter.SetBaseLogger(mockLog)

	_, err := adapter.Parse(strings.NewReader("<Invoice><Total>10</Total></Invoice>"))
	require.Error(t, err)

	assert.True(t, mockLog.HasMessage("Failed to parse bureau report"))
	require.NotEmpty(t, mockLog.Entries)
	assert.Equal(t, "ERROR", mockLog.Entries[len(mockLog.Entries)-1].Level)
}

func TestAdapterConvertToCSV(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleFile(t, dir, "report.xml")
	output := filepath.Join(dir, "report.csv")

	mockLog := &logging.MockLogger{}
	adapter := &Adapter{}
	adapter.SetBaseLogger(mockLog)

	require.NoError(t, adapter.ConvertToCSV(input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Credit Card (Revolving)")
	assert.True(t, mockLog.HasMessage("Writing report accounts to CSV"))
}

func TestBatchConvert(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")

	writeSampleFile(t, inputDir, "a.xml")
	writeSampleFile(t, inputDir, "b.xml")
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "other.xml"),
		[]byte("<Invoice><Total>10</Total></Invoice>"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"),
		[]byte("not xml"), 0600))

	result, err := BatchConvert(inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Failed)

	assert.FileExists(t, filepath.Join(outputDir, "a.csv"))
	assert.FileExists(t, filepath.Join(outputDir, "b.csv"))
}
