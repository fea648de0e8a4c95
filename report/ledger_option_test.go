package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionRec(date, code string, qty int64, price, amount, desc string) Record {
	return Record{
		ActivityDate: date,
		Instrument:   "AAPL",
		Description:  desc,
		TransCode:    code,
		Quantity:     qty,
		Price:        price,
		Amount:       amount,
	}
}

func TestOptionLeg(t *testing.T) {
	t.Parallel()

	cases := []struct {
		desc       string
		instrument string
		want       string
	}{
		{"AAPL 6/21/2024 Call $200.00", "AAPL", "6/21/2024 Call $200.00"},
		{"AAPL 6/21/2024 Call $200.00", "AAPL240621", "6/21/2024 Call $200.00"},
		{"Apple Option Expiration", "ZZZQ", "Apple Option Expiration"},
		{" standalone leg ", "", "standalone leg"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, OptionLeg(tc.desc, tc.instrument), "desc %q", tc.desc)
	}
}

func TestOptionLedgerAwaitMatchClosure(t *testing.T) {
	t.Parallel()

	leg := "AAPL 6/21/2024 Call $200.00"
	l := NewOptionLedger(DefaultClassification(), nil)
	l.Add(optionRec("1/2/2024", "BTO", 1, "$2.00", "($200.00)", leg))
	l.Add(optionRec("1/5/2024", "STC", 1, "$3.00", "$300.00", leg))

	rows := l.Rows()
	require.Len(t, rows, 2)

	// Newest first: the STC row opens the reverse pass and marks the leg
	// awaiting; the BTO row resolves it by code and closes the leg.
	assert.Equal(t, "STC", rows[0].TransCode)
	assert.False(t, rows[0].Profit.Valid)
	assert.Equal(t, "BTO", rows[1].TransCode)
	assert.True(t, rows[1].Profit.Valid)
	assert.Equal(t, "6/21/2024 Call $200.00", rows[1].Description)
}

func TestOptionLedgerLegsAreIndependent(t *testing.T) {
	t.Parallel()

	callLeg := "AAPL 6/21/2024 Call $200.00"
	putLeg := "AAPL 6/21/2024 Put $180.00"

	l := NewOptionLedger(DefaultClassification(), nil)
	l.Add(optionRec("1/2/2024", "BTO", 1, "$2.00", "($200.00)", callLeg))
	l.Add(optionRec("1/2/2024", "BTO", 2, "$1.50", "($300.00)", putLeg))
	l.Add(optionRec("1/5/2024", "STC", 1, "$3.00", "$300.00", callLeg))

	rows := l.Rows()
	require.Len(t, rows, 3)

	// The call leg closes; the put leg stays open with no profit row.
	for _, row := range rows {
		if row.Description == "6/21/2024 Put $180.00" {
			assert.False(t, row.Profit.Valid)
		}
	}
}

func TestOptionLedgerAssignmentAmounts(t *testing.T) {
	t.Parallel()

	leg := "AAPL 6/21/2024 Call $200.00"
	l := NewOptionLedger(DefaultClassification(), nil)
	// Assignment-like codes are the only ones whose amounts are tracked.
	l.Add(optionRec("1/2/2024", "OASGN", 1, "$2.00", "($500.00)", leg))
	l.Add(optionRec("1/5/2024", "OEXCS", 1, "$3.00", "$600.00", leg))

	rows := l.Rows()
	require.Len(t, rows, 2)

	assert.Equal(t, "OEXCS", rows[0].TransCode)
	assert.False(t, rows[0].Profit.Valid)

	closing := rows[1]
	assert.Equal(t, "OASGN", closing.TransCode)
	require.True(t, closing.Profit.Valid)
	assert.True(t, closing.Profit.Decimal.Equal(decimal.NewFromInt(100)),
		"profit %s", closing.Profit.Decimal)
}

// Pins the chosen balance-flip convention: a flip row negates the running
// quantity only while the leg balance is strictly positive.
func TestOptionLedgerBalanceFlip(t *testing.T) {
	t.Parallel()

	rules := Classification{
		KindOption: {
			"OPN": {Class: ClassAccumulate, Factor: 1},
			"EXP": {Class: ClassBalanceFlip, Factor: 1},
		},
	}
	leg := "AAPL 6/21/2024 Call $200.00"

	l := NewOptionLedger(rules, nil)
	l.Add(optionRec("1/2/2024", "EXP", 2, "", "", leg))
	l.Add(optionRec("1/5/2024", "OPN", 2, "$1.00", "($200.00)", leg))

	rows := l.Rows()
	require.Len(t, rows, 2)

	// Reverse pass: OPN raises the leg balance to +2, then EXP flips its
	// quantity against the positive balance and closes the leg.
	assert.Equal(t, "OPN", rows[0].TransCode)
	assert.False(t, rows[0].Profit.Valid)
	assert.Equal(t, "EXP", rows[1].TransCode)
	assert.True(t, rows[1].Profit.Valid)
}

func TestOptionLedgerMalformedAmountSkipped(t *testing.T) {
	t.Parallel()

	leg := "AAPL 6/21/2024 Call $200.00"
	lg := &captureLogger{}
	l := NewOptionLedger(DefaultClassification(), lg)
	l.Add(optionRec("1/2/2024", "OASGN", 1, "$2.00", "not-a-number", leg))

	// A dropped row must leave no trace: no zero-valued entry, and in
	// particular no spurious closed-leg profit row.
	assert.Empty(t, l.Rows())
	assert.NotEmpty(t, lg.warns)
}

func TestOptionLedgerUnknownCodeDropped(t *testing.T) {
	t.Parallel()

	lg := &captureLogger{}
	l := NewOptionLedger(DefaultClassification(), lg)
	l.Add(optionRec("1/2/2024", "???", 1, "$1.00", "$1.00", "AAPL leg"))

	assert.Empty(t, l.Rows())
	require.Len(t, lg.warns, 1)
	assert.Contains(t, lg.warns[0], "not handled")
}
