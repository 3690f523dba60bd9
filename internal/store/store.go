// Package store persists validation run history to SQLite so past QC reports
// stay queryable after the process exits.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"invoiceqc/pkg/models"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// the run table exists. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS validation_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ran_at DATETIME NOT NULL,
		total_invoices INTEGER NOT NULL,
		valid_invoices INTEGER NOT NULL,
		invalid_invoices INTEGER NOT NULL,
		report_json TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

// RunSummary is one row of run history.
type RunSummary struct {
	ID              int64     `json:"id"`
	RanAt           time.Time `json:"ran_at"`
	TotalInvoices   int       `json:"total_invoices"`
	ValidInvoices   int       `json:"valid_invoices"`
	InvalidInvoices int       `json:"invalid_invoices"`
}

// RunStore records and lists validation runs.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a RunStore over an initialized database.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// SaveRun persists one validation report and returns its run id.
func (s *RunStore) SaveRun(report models.Report) (int64, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO validation_runs (ran_at, total_invoices, valid_invoices, invalid_invoices, report_json)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC(),
		report.Summary.TotalInvoices,
		report.Summary.ValidInvoices,
		report.Summary.InvalidInvoices,
		string(data),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns run summaries, newest first, up to limit rows.
func (s *RunStore) ListRuns(limit int) ([]RunSummary, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, ran_at, total_invoices, valid_invoices, invalid_invoices
		 FROM validation_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.RanAt, &r.TotalInvoices, &r.ValidInvoices, &r.InvalidInvoices); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns the full report stored for one run.
func (s *RunStore) GetRun(id int64) (models.Report, error) {
	var raw string
	err := s.db.QueryRow(`SELECT report_json FROM validation_runs WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		return models.Report{}, fmt.Errorf("get run %d: %w", id, err)
	}

	var report models.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return models.Report{}, fmt.Errorf("unmarshal stored report: %w", err)
	}
	return report, nil
}
