package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LedgerRow is one aggregated output row of a position ledger, most useful
// read newest-first. Profit is only set on rows that close a position back
// to zero (and on self-contained amount-only rows).
type LedgerRow struct {
	Date        string
	Description string // option leg, empty for stock rows
	TransCode   string
	Quantity    int64
	Price       string
	Amount      decimal.Decimal
	Profit      decimal.NullDecimal
}

// ledgerKey is the aggregation key: all transactions sharing it are summed
// into one accumulator entry. tag disambiguates day-trade cycles (stock) or
// carries the option leg description.
type ledgerKey struct {
	date  string
	code  string
	price string
	tag   string
}

type ledgerEntry struct {
	key      ledgerKey
	class    int
	quantity int64
	amount   decimal.Decimal
}

// accumulator keeps entries in first-insertion order. Output iterates the
// slice in reverse so reports read newest-first; ordering is structural,
// never a property of map iteration.
type accumulator struct {
	index   map[ledgerKey]int
	entries []*ledgerEntry
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[ledgerKey]int)}
}

// entry returns the accumulator entry for key, creating a zero-valued one
// on first access.
func (a *accumulator) entry(key ledgerKey, class int) *ledgerEntry {
	if i, ok := a.index[key]; ok {
		return a.entries[i]
	}
	e := &ledgerEntry{key: key, class: class}
	a.index[key] = len(a.entries)
	a.entries = append(a.entries, e)
	return e
}

// dayTradeCounter disambiguates multiple buy/sell cycles on the same
// calendar date. The sequence number bumps each time the transaction code
// changes within a date, so each cycle lands under its own ledger key.
type dayTradeCounter struct {
	last map[string]string
	seq  map[string]int
}

func newDayTradeCounter() *dayTradeCounter {
	return &dayTradeCounter{
		last: make(map[string]string),
		seq:  make(map[string]int),
	}
}

func (c *dayTradeCounter) next(date, code string) int {
	if prev, ok := c.last[date]; ok && prev != code {
		c.seq[date]++
	}
	c.last[date] = code
	return c.seq[date]
}

// ledgerPrice strips the currency marker so the price can serve as a key
// component and a plain numeric output column.
func ledgerPrice(price string) string {
	return strings.TrimSpace(strings.ReplaceAll(price, "$", ""))
}
