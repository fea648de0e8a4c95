package report

import "sort"

// Resolver finds the boundary where two chronologically adjacent export
// files diverge, so concatenating them does not duplicate rows. The older
// file ends with its most recent rows; the newer file may begin with rows
// the older one already carries.
type Resolver struct {
	lg Logger
}

func NewResolver(lg Logger) *Resolver {
	if lg == nil {
		lg = NopLogger()
	}
	return &Resolver{lg: lg}
}

// Continuation returns newer with its duplicated leading rows removed,
// along with the overlap length it found. The scan grows the window one row
// at a time and the smallest window that matches wins. Zero means the files
// simply do not overlap; that is a valid outcome and only worth a warning.
func (r *Resolver) Continuation(older, newer []Record) ([]Record, int) {
	max := len(newer)
	if len(older) < max {
		max = len(older)
	}

	for i := 1; i <= max; i++ {
		a := canonical(older[len(older)-i:])
		b := canonical(newer[:i])
		if equalRecords(a, b) {
			r.lg.Infof("found %d overlapping rows at the report boundary", i)
			return newer[i:], i
		}
	}

	r.lg.Warnf("no overlap found between adjacent report parts")
	return newer, 0
}

// canonical copies a boundary window and sorts it on the comparison tuple
// (Amount, Price, Quantity). Exports do not guarantee intra-day row order,
// so windows are compared as sets with a fixed ordering.
func canonical(rs []Record) []Record {
	out := make([]Record, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount < out[j].Amount
		}
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Quantity < out[j].Quantity
	})
	return out
}

func equalRecords(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
