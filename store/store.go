package store

import (
	"time"

	"github.com/weikunhan/reportsmith/report"
)

// ImportRun describes one master-file import into the store.
type ImportRun struct {
	ImportID   string
	Source     string
	ImportedAt time.Time
	Rows       int
}

// Store persists assembled master records for later querying.
type Store interface {
	ImportMaster(run ImportRun, recs []report.Record) error
	Close() error
}
