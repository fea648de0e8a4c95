package report

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(date, code string, qty int64, price, amount string) Record {
	return Record{
		ActivityDate: date,
		ProcessDate:  date,
		SettleDate:   date,
		Instrument:   "AAPL",
		Description:  "Apple",
		TransCode:    code,
		Quantity:     qty,
		Price:        price,
		Amount:       amount,
	}
}

// seqRecords builds n distinct rows; amounts encode the index so no two
// rows collide accidentally.
func seqRecords(n, offset int) []Record {
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		v := strconv.Itoa(offset + i)
		out = append(out, rec("1/"+v+"/2024", "Buy", int64(offset+i+1), "$"+v+".00", "($"+v+".50)"))
	}
	return out
}

func TestContinuationFindsBoundary(t *testing.T) {
	t.Parallel()

	older := seqRecords(5, 0)
	// newer repeats older's last two rows, then continues.
	newer := append(append([]Record{}, older[3:]...), seqRecords(3, 10)...)

	res := NewResolver(nil)
	cont, n := res.Continuation(older, newer)

	assert.Equal(t, 2, n)
	assert.Equal(t, seqRecords(3, 10), cont)
}

func TestContinuationBoundaryOrderInsensitive(t *testing.T) {
	t.Parallel()

	older := seqRecords(5, 0)
	// The same three boundary rows, shuffled in the newer file. The shuffle
	// keeps every smaller prefix window from matching: the newer file does
	// not start with older's last row, so only the full three-row window
	// canonicalizes to equality.
	newer := []Record{older[3], older[2], older[4]}
	newer = append(newer, seqRecords(2, 20)...)

	res := NewResolver(nil)
	cont, n := res.Continuation(older, newer)

	assert.Equal(t, 3, n)
	assert.Equal(t, seqRecords(2, 20), cont)
}

func TestContinuationNoOverlap(t *testing.T) {
	t.Parallel()

	older := seqRecords(4, 0)
	newer := seqRecords(4, 50)

	lg := &captureLogger{}
	res := NewResolver(lg)
	cont, n := res.Continuation(older, newer)

	assert.Equal(t, 0, n)
	assert.Equal(t, newer, cont)
	assert.NotEmpty(t, lg.warns)
}

func TestContinuationFullDuplicate(t *testing.T) {
	t.Parallel()

	older := seqRecords(6, 0)
	newer := append([]Record{}, older[2:]...) // all of newer already known

	res := NewResolver(nil)
	cont, n := res.Continuation(older, newer)

	assert.Equal(t, len(newer), n)
	assert.Empty(t, cont)
}

func TestContinuationFirstMatchWins(t *testing.T) {
	t.Parallel()

	// older ends with two identical rows; newer starts with the same pair.
	// A one-row window already matches, so the scan stops at 1 even though
	// a two-row overlap would also hold.
	dup := rec("1/5/2024", "Buy", 1, "$5.00", "($5.00)")
	older := append(seqRecords(3, 0), dup, dup)
	newer := []Record{dup, dup}
	newer = append(newer, seqRecords(1, 30)...)

	res := NewResolver(nil)
	cont, n := res.Continuation(older, newer)

	assert.Equal(t, 1, n)
	assert.Equal(t, append([]Record{dup}, seqRecords(1, 30)...), cont)
}

func TestContinuationBounds(t *testing.T) {
	t.Parallel()

	res := NewResolver(nil)
	for _, lens := range [][2]int{{0, 3}, {3, 0}, {1, 5}, {5, 1}, {4, 4}} {
		older := seqRecords(lens[0], 0)
		newer := seqRecords(lens[1], 100)

		_, n := res.Continuation(older, newer)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, len(newer))
	}
}

// Concatenating older with the continuation must reproduce older plus
// newer's unique suffix: nothing duplicated, nothing dropped.
func TestContinuationIdempotence(t *testing.T) {
	t.Parallel()

	older := seqRecords(5, 0)
	uniqueTail := seqRecords(3, 40)
	newer := append(append([]Record{}, older[3:]...), uniqueTail...)

	res := NewResolver(nil)
	cont, _ := res.Continuation(older, newer)

	combined := append(append([]Record{}, older...), cont...)
	want := append(append([]Record{}, older...), uniqueTail...)
	assert.Equal(t, want, combined)
}
