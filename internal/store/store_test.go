package store

import (
	"context"
	"os"
	"testing"
	"time"

	"crediq/bureau-xml/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testReport(name string, score int, balance int64) *models.TransformedReport {
	return &models.TransformedReport{
		BasicDetails: models.BasicDetails{
			Name:        name,
			CreditScore: &score,
		},
		ReportSummary: models.ReportSummary{
			TotalAccounts:        1,
			ActiveAccounts:       1,
			CurrentBalanceAmount: decimal.NewFromInt(balance),
			SecuredAmount:        decimal.Zero,
			UnsecuredAmount:      decimal.NewFromInt(balance),
		},
		CreditAccounts: []models.CreditAccount{
			{
				Type:           "Credit Card (Revolving)",
				BankName:       "HDFC Bank",
				AccountNumber:  "XXXX1234",
				Status:         "Active - Regular",
				CurrentBalance: decimal.NewFromInt(balance),
			},
		},
		Enquiries:  []models.Enquiry{},
		ReportDate: time.Now().UTC(),
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stored, err := s.Save(ctx, "report.xml", []byte("<xml/>"), testReport("Ravi Kumar", 780, 45000))
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)
	assert.Equal(t, "report.xml", stored.FileName)
	assert.Len(t, stored.ContentHash, 64)

	got, err := s.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.Report.BasicDetails.Name)
	require.NotNil(t, got.Report.BasicDetails.CreditScore)
	assert.Equal(t, 780, *got.Report.BasicDetails.CreditScore)
	assert.True(t, got.Report.ReportSummary.CurrentBalanceAmount.Equal(decimal.NewFromInt(45000)))
}

func TestSaveArchivesRawContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	content := []byte("<xml>archive me</xml>")

	stored, err := s.Save(ctx, "report.xml", content, testReport("Ravi", 700, 100))
	require.NoError(t, err)
	require.NotEmpty(t, stored.StoragePath)

	archived, err := os.ReadFile(stored.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, content, archived)

	require.NoError(t, s.Delete(ctx, stored.ID))
	_, err = os.Stat(stored.StoragePath)
	assert.True(t, os.IsNotExist(err))
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveDuplicateContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	content := []byte("<xml>same</xml>")

	_, err := s.Save(ctx, "a.xml", content, testReport("Ravi", 700, 100))
	require.NoError(t, err)

	_, err = s.Save(ctx, "b.xml", content, testReport("Ravi", 700, 100))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetByHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	content := []byte("<xml>hash me</xml>")

	stored, err := s.Save(ctx, "a.xml", content, testReport("Ravi", 700, 100))
	require.NoError(t, err)

	got, err := s.GetByHash(ctx, HashContent(content))
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestListPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		content := []byte{byte(i)}
		_, err := s.Save(ctx, "report.xml", content, testReport("Applicant", 700+i, 1000))
		require.NoError(t, err)
	}

	page, err := s.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := s.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stored, err := s.Save(ctx, "report.xml", []byte("<xml/>"), testReport("Ravi", 700, 100))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, stored.ID))
	_, err = s.Get(ctx, stored.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, stored.ID), ErrNotFound)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "a.xml", []byte("a"), testReport("A", 700, 1000))
	require.NoError(t, err)
	_, err = s.Save(ctx, "b.xml", []byte("b"), testReport("B", 800, 2000))
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ReportCount)
	assert.Equal(t, 2, stats.AccountCount)
	assert.Equal(t, 0, stats.EnquiryCount)
	assert.True(t, stats.TotalBalance.Equal(decimal.NewFromInt(3000)))
	assert.InDelta(t, 750.0, stats.AverageCreditScore, 0.01)
}

func TestStatsEmptyStore(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ReportCount)
	assert.True(t, stats.TotalBalance.IsZero())
}

func TestHashContentIsStable(t *testing.T) {
	a := HashContent([]byte("payload"))
	b := HashContent([]byte("payload"))
	c := HashContent([]byte("other"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
