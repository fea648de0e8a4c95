package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Header is the canonical column set of a brokerage activity export and of
// the assembled master file.
var Header = []string{
	"Activity Date",
	"Process Date",
	"Settle Date",
	"Instrument",
	"Description",
	"Trans Code",
	"Quantity",
	"Price",
	"Amount",
}

// Record is one row of brokerage activity. Price and Amount keep their raw
// accounting-formatted text; Quantity is normalized to an integer at the
// parse boundary.
type Record struct {
	ActivityDate string
	ProcessDate  string
	SettleDate   string
	Instrument   string
	Description  string
	TransCode    string
	Quantity     int64
	Price        string
	Amount       string
}

func (r Record) fields() []string {
	return []string{
		r.ActivityDate,
		r.ProcessDate,
		r.SettleDate,
		r.Instrument,
		r.Description,
		r.TransCode,
		strconv.FormatInt(r.Quantity, 10),
		r.Price,
		r.Amount,
	}
}

var digitRun = regexp.MustCompile(`\d+`)

// NormalizeInstrument strips the numeric suffixes some exports attach to a
// ticker so every variant groups under one instrument.
func NormalizeInstrument(s string) string {
	return strings.TrimSpace(digitRun.ReplaceAllString(s, ""))
}

// parseQuantity normalizes an export quantity cell: a leading "S" marker is
// stripped and anything that still fails to parse coerces to zero.
func parseQuantity(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, "S", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(v)
}

// LoadExport reads one raw export file. The header row is required, the
// trailing disclaimer row is dropped unconditionally, and malformed rows
// are skipped with a warning rather than aborting the batch.
func LoadExport(path string, lg Logger) ([]Record, error) {
	return loadFile(path, true, lg)
}

// LoadMaster reads an assembled master file. Same format as an export but
// without the disclaimer footer.
func LoadMaster(path string, lg Logger) ([]Record, error) {
	return loadFile(path, false, lg)
}

func loadFile(path string, dropFooter bool, lg Logger) ([]Record, error) {
	if lg == nil {
		lg = NopLogger()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := readRecords(f, lg)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if dropFooter && len(recs) > 0 {
		recs = recs[:len(recs)-1]
	}
	return recs, nil
}

func readRecords(r io.Reader, lg Logger) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header row: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	cols := make([]int, len(Header))
	for i, name := range Header {
		j, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[i] = j
	}

	var out []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			lg.Warnf("skipping malformed row %d: %v", perr.Line, err)
			continue
		}
		if err != nil {
			return nil, err
		}

		ok := true
		for _, j := range cols {
			if j >= len(row) {
				ok = false
				break
			}
		}
		if !ok {
			lg.Warnf("skipping short row with %d fields", len(row))
			continue
		}

		out = append(out, Record{
			ActivityDate: strings.TrimSpace(row[cols[0]]),
			ProcessDate:  strings.TrimSpace(row[cols[1]]),
			SettleDate:   strings.TrimSpace(row[cols[2]]),
			Instrument:   strings.TrimSpace(row[cols[3]]),
			Description:  strings.TrimSpace(row[cols[4]]),
			TransCode:    strings.TrimSpace(row[cols[5]]),
			Quantity:     parseQuantity(row[cols[6]]),
			Price:        strings.TrimSpace(row[cols[7]]),
			Amount:       strings.TrimSpace(row[cols[8]]),
		})
	}
	return out, nil
}

// MasterWriter appends records to the master file. Exactly one writer may
// own the file at a time; a batch must be fully flushed before the next one
// appends.
type MasterWriter struct {
	w *csv.Writer
	f *os.File
}

// NewMasterWriter creates (or truncates) the master file and writes the
// canonical header.
func NewMasterWriter(path string) (*MasterWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &MasterWriter{w: w, f: f}, nil
}

// OpenMasterAppend opens an existing master file for appending a later
// batch. No header is written.
func OpenMasterAppend(path string) (*MasterWriter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &MasterWriter{w: csv.NewWriter(f), f: f}, nil
}

func (m *MasterWriter) WriteRecords(recs []Record) error {
	for _, rec := range recs {
		if err := m.w.Write(rec.fields()); err != nil {
			return err
		}
	}
	m.w.Flush()
	return m.w.Error()
}

func (m *MasterWriter) Close() error {
	m.w.Flush()
	if err := m.w.Error(); err != nil {
		m.f.Close()
		return err
	}
	return m.f.Close()
}
