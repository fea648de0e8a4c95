package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/weikunhan/reportsmith/report"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// ImportMaster stores one master file's records under a new import run.
// The run row and its records commit together or not at all.
func (s *SQLite) ImportMaster(run ImportRun, recs []report.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO imports (import_id, source, imported_at, rows)
		VALUES (?, ?, ?, ?)`,
		run.ImportID, run.Source, run.ImportedAt, run.Rows,
	); err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records
		(import_id, activity_date, process_date, settle_date, instrument, description, trans_code, quantity, price, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.Exec(
			run.ImportID, rec.ActivityDate, rec.ProcessDate, rec.SettleDate,
			rec.Instrument, rec.Description, rec.TransCode, rec.Quantity,
			rec.Price, rec.Amount,
		); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
