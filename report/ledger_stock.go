package report

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// StockLedger reconstructs running position state for one instrument from
// its time-ordered stock transactions. Feed rows oldest-first with Add,
// then read the aggregated result with Rows.
type StockLedger struct {
	rules Classification
	lg    Logger
	acc   *accumulator
	days  *dayTradeCounter
}

func NewStockLedger(rules Classification, lg Logger) *StockLedger {
	if lg == nil {
		lg = NopLogger()
	}
	return &StockLedger{
		rules: rules,
		lg:    lg,
		acc:   newAccumulator(),
		days:  newDayTradeCounter(),
	}
}

// Add folds one transaction into the ledger. Rows with an unknown code or
// a malformed amount are reported and dropped; the pass continues.
func (l *StockLedger) Add(rec Record) {
	rule, err := l.rules.Lookup(KindStock, rec.TransCode)
	if err != nil {
		l.lg.Warnf("%s %s: %v", rec.Instrument, rec.ActivityDate, err)
		return
	}

	amt, err := ParseAccounting(rec.Amount)
	if err != nil {
		l.lg.Warnf("%s %s: skipping row: %v", rec.Instrument, rec.ActivityDate, err)
		return
	}

	seq := l.days.next(rec.ActivityDate, rec.TransCode)
	key := ledgerKey{
		date:  rec.ActivityDate,
		code:  rec.TransCode,
		price: ledgerPrice(rec.Price),
		tag:   strconv.Itoa(seq),
	}
	e := l.acc.entry(key, rule.Class)
	factor := decimal.NewFromInt(rule.Factor)

	switch rule.Class {
	case ClassAccumulate:
		e.quantity += rule.Factor * rec.Quantity
		e.amount = e.amount.Sub(factor.Mul(amt))
	case ClassBalanceFlip:
		if e.quantity == 0 {
			e.quantity += rule.Factor * rec.Quantity
		} else {
			e.quantity -= rule.Factor * rec.Quantity
		}
		// amount stays zero for balance flips
	case ClassAmountOnly:
		e.quantity = 0
		e.amount = e.amount.Add(factor.Mul(amt))
	default:
		l.lg.Warnf("%s %s: unsupported behavior class %d for %q",
			rec.Instrument, rec.ActivityDate, rule.Class, rec.TransCode)
	}
}

// Rows returns the aggregated ledger rows, most recently inserted first.
// A running position is kept across rows that are not amount-only; whenever
// it returns to exactly zero the accumulated amount is emitted as that
// row's realized profit and the running amount resets. Amount-only rows
// (fees) are self-contained and carry their own amount as profit.
func (l *StockLedger) Rows() []LedgerRow {
	rows := make([]LedgerRow, 0, len(l.acc.entries))
	var qtySum int64
	amtSum := decimal.Zero

	for i := len(l.acc.entries) - 1; i >= 0; i-- {
		e := l.acc.entries[i]
		row := LedgerRow{
			Date:      e.key.date,
			TransCode: e.key.code,
			Quantity:  e.quantity,
			Price:     e.key.price,
			Amount:    e.amount,
		}

		if e.class == ClassAmountOnly {
			row.Profit = decimal.NullDecimal{Decimal: e.amount, Valid: true}
		} else {
			qtySum += e.quantity
			amtSum = amtSum.Add(e.amount)
			if qtySum == 0 {
				row.Profit = decimal.NullDecimal{Decimal: amtSum, Valid: true}
				amtSum = decimal.Zero
			}
		}
		rows = append(rows, row)
	}
	return rows
}
