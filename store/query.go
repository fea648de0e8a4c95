package store

import (
	"fmt"

	"github.com/weikunhan/reportsmith/report"
)

const recordColumns = `activity_date, process_date, settle_date, instrument, description, trans_code, quantity, price, amount`

// ListByInstrument returns all stored records for one instrument, oldest
// import first.
func (s *SQLite) ListByInstrument(instrument string) ([]report.Record, error) {
	return s.listRecords(`
		SELECT `+recordColumns+`
		FROM records
		WHERE instrument = ?
		ORDER BY rowid ASC`, instrument)
}

// ListByDay returns all stored records with the given activity date. The
// date must match the export's own format.
func (s *SQLite) ListByDay(day string) ([]report.Record, error) {
	return s.listRecords(`
		SELECT `+recordColumns+`
		FROM records
		WHERE activity_date = ?
		ORDER BY rowid ASC`, day)
}

func (s *SQLite) listRecords(query string, args ...any) ([]report.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.Record
	for rows.Next() {
		var rec report.Record
		if err := rows.Scan(
			&rec.ActivityDate,
			&rec.ProcessDate,
			&rec.SettleDate,
			&rec.Instrument,
			&rec.Description,
			&rec.TransCode,
			&rec.Quantity,
			&rec.Price,
			&rec.Amount,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListImports returns every import run, oldest first. ULID import ids sort
// by creation time, so ordering by id is ordering by time.
func (s *SQLite) ListImports() ([]ImportRun, error) {
	rows, err := s.db.Query(`
		SELECT import_id, source, imported_at, rows
		FROM imports
		ORDER BY import_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ImportRun
	for rows.Next() {
		var run ImportRun
		if err := rows.Scan(&run.ImportID, &run.Source, &run.ImportedAt, &run.Rows); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetImport returns a single import run by id.
func (s *SQLite) GetImport(importID string) (ImportRun, error) {
	var run ImportRun
	err := s.db.QueryRow(`
		SELECT import_id, source, imported_at, rows
		FROM imports
		WHERE import_id = ?`, importID).Scan(
		&run.ImportID, &run.Source, &run.ImportedAt, &run.Rows,
	)
	if err != nil {
		return ImportRun{}, fmt.Errorf("import %q: %w", importID, err)
	}
	return run, nil
}
