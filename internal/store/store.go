// Package store persists parsed bureau reports in SQLite. The normalized
// report payload is stored as a JSON column; identity and listing fields
// are projected into their own columns so queries stay cheap.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"crediq/bureau-xml/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ErrNotFound is returned when no report exists for a requested ID.
var ErrNotFound = errors.New("report not found")

// ErrDuplicate is returned when a report with the same content hash has
// already been saved.
var ErrDuplicate = errors.New("report already stored")

// Store is a SQLite-backed report store. Raw report files are archived
// under filesDir next to the database so the original XML stays
// retrievable.
type Store struct {
	db       *sql.DB
	path     string
	filesDir string
}

// New opens (or creates) the report database in dataDir. An empty
// dataDir defaults to ~/.bureau-xml/data.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bureau-xml", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	filesDir := filepath.Join(dataDir, "files")
	if err := os.MkdirAll(filesDir, 0700); err != nil {
		return nil, fmt.Errorf("creating files directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reports.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath, filesDir: filesDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.WithField("path", dbPath).Debug("Opened report store")
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS reports (
			id            TEXT PRIMARY KEY,
			file_name     TEXT NOT NULL,
			content_hash  TEXT NOT NULL UNIQUE,
			storage_path  TEXT NOT NULL DEFAULT '',
			applicant     TEXT NOT NULL DEFAULT '',
			credit_score  INTEGER,
			account_count INTEGER NOT NULL DEFAULT 0,
			enquiry_count INTEGER NOT NULL DEFAULT 0,
			balance       TEXT NOT NULL DEFAULT '0',
			payload       TEXT NOT NULL,
			created_at    DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating reports table: %w", err)
	}
	return nil
}

// HashContent returns the hex SHA-256 of raw report content, the identity
// used for duplicate detection.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Save persists a parsed report. The raw content is hashed for duplicate
// detection; saving the same content twice returns ErrDuplicate.
func (s *Store) Save(ctx context.Context, fileName string, rawContent []byte, report *models.TransformedReport) (*models.StoredReport, error) {
	if report == nil {
		return nil, fmt.Errorf("cannot save nil report")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}

	stored := &models.StoredReport{
		ID:          uuid.NewString(),
		FileName:    fileName,
		ContentHash: HashContent(rawContent),
		Report:      *report,
		CreatedAt:   time.Now().UTC(),
	}

	if len(rawContent) > 0 {
		stored.StoragePath = filepath.Join(s.filesDir, stored.ID+".xml")
		if err := os.WriteFile(stored.StoragePath, rawContent, 0600); err != nil {
			return nil, fmt.Errorf("archiving report file: %w", err)
		}
	}

	var score *int
	if report.BasicDetails.CreditScore != nil {
		score = report.BasicDetails.CreditScore
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports
			(id, file_name, content_hash, storage_path, applicant, credit_score,
			 account_count, enquiry_count, balance, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, stored.ID, stored.FileName, stored.ContentHash, stored.StoragePath,
		report.BasicDetails.Name, score,
		len(report.CreditAccounts), len(report.Enquiries),
		report.ReportSummary.CurrentBalanceAmount.String(),
		string(payload), stored.CreatedAt)

	if err != nil {
		if stored.StoragePath != "" {
			_ = os.Remove(stored.StoragePath)
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("saving report: %w", err)
	}

	log.WithFields(logrus.Fields{
		"id":   stored.ID,
		"file": fileName,
	}).Info("Stored report")
	return stored, nil
}

// Get retrieves a stored report by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.StoredReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, content_hash, storage_path, payload, created_at
		FROM reports WHERE id = ?
	`, id)

	return scanStoredReport(row)
}

// GetByHash retrieves a stored report by its content hash.
func (s *Store) GetByHash(ctx context.Context, hash string) (*models.StoredReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, content_hash, storage_path, payload, created_at
		FROM reports WHERE content_hash = ?
	`, hash)

	return scanStoredReport(row)
}

// List returns stored reports newest first, paginated by limit/offset.
// A non-positive limit defaults to 50.
func (s *Store) List(ctx context.Context, limit, offset int) ([]models.StoredReport, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, content_hash, storage_path, payload, created_at
		FROM reports
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []models.StoredReport
	for rows.Next() {
		var stored models.StoredReport
		var payload string
		if err := rows.Scan(&stored.ID, &stored.FileName, &stored.ContentHash,
			&stored.StoragePath, &payload, &stored.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &stored.Report); err != nil {
			return nil, fmt.Errorf("unmarshalling report payload: %w", err)
		}
		reports = append(reports, stored)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}

// Count returns the total number of stored reports.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting reports: %w", err)
	}
	return count, nil
}

// Delete removes a stored report and its archived file. Deleting an
// unknown ID returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	var storagePath string
	err := s.db.QueryRowContext(ctx,
		"SELECT storage_path FROM reports WHERE id = ?", id).Scan(&storagePath)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("looking up report: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}

	if storagePath != "" {
		if err := os.Remove(storagePath); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warn("Failed to remove archived report file")
		}
	}
	return nil
}

// Stats aggregates what the store currently holds.
func (s *Store) Stats(ctx context.Context) (*models.StoreStats, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(account_count), 0),
		       COALESCE(SUM(enquiry_count), 0),
		       COALESCE(AVG(credit_score), 0)
		FROM reports
	`)

	stats := &models.StoreStats{TotalBalance: decimal.Zero}
	if err := row.Scan(&stats.ReportCount, &stats.AccountCount,
		&stats.EnquiryCount, &stats.AverageCreditScore); err != nil {
		return nil, fmt.Errorf("scanning stats: %w", err)
	}

	// Balances are stored as decimal strings, so the sum happens here
	// rather than in SQL.
	rows, err := s.db.QueryContext(ctx, "SELECT balance FROM reports")
	if err != nil {
		return nil, fmt.Errorf("querying balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var balance string
		if err := rows.Scan(&balance); err != nil {
			return nil, fmt.Errorf("scanning balance: %w", err)
		}
		amount, err := decimal.NewFromString(balance)
		if err != nil {
			continue
		}
		stats.TotalBalance = stats.TotalBalance.Add(amount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating balances: %w", err)
	}

	return stats, nil
}

func scanStoredReport(row *sql.Row) (*models.StoredReport, error) {
	var stored models.StoredReport
	var payload string

	if err := row.Scan(&stored.ID, &stored.FileName, &stored.ContentHash,
		&stored.StoragePath, &payload, &stored.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &stored.Report); err != nil {
		return nil, fmt.Errorf("unmarshalling report payload: %w", err)
	}

	return &stored, nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures in the error text.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
