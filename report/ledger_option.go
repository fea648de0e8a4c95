package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OptionLeg extracts the leg identity from a free-text description by
// dropping everything up to and including the instrument ticker. What
// remains ("6/21/2024 Call $200.00") distinguishes one contract from
// another under the same underlying.
func OptionLeg(description, instrument string) string {
	ticker := NormalizeInstrument(instrument)
	if ticker == "" {
		return strings.TrimSpace(description)
	}
	if i := strings.Index(description, ticker); i >= 0 {
		return strings.TrimSpace(description[i+len(ticker):])
	}
	return strings.TrimSpace(description)
}

// OptionLedger reconstructs per-leg position state for one underlying from
// its time-ordered option transactions.
type OptionLedger struct {
	rules Classification
	lg    Logger
	acc   *accumulator
}

func NewOptionLedger(rules Classification, lg Logger) *OptionLedger {
	if lg == nil {
		lg = NopLogger()
	}
	return &OptionLedger{rules: rules, lg: lg, acc: newAccumulator()}
}

// Add folds one transaction into the ledger. Legs of classes other than
// accumulate track quantity only; their amount column stays zero because
// option premiums are not tracked per-transaction.
func (l *OptionLedger) Add(rec Record) {
	rule, err := l.rules.Lookup(KindOption, rec.TransCode)
	if err != nil {
		l.lg.Warnf("%s %s: %v", rec.Instrument, rec.ActivityDate, err)
		return
	}

	key := ledgerKey{
		date:  rec.ActivityDate,
		code:  rec.TransCode,
		price: ledgerPrice(rec.Price),
		tag:   OptionLeg(rec.Description, rec.Instrument),
	}

	if rule.Class == ClassAccumulate {
		// Parse before touching the accumulator so a dropped row leaves no
		// phantom entry behind.
		amt, err := ParseAccounting(rec.Amount)
		if err != nil {
			l.lg.Warnf("%s %s: skipping row: %v", rec.Instrument, rec.ActivityDate, err)
			return
		}
		factor := decimal.NewFromInt(rule.Factor)
		e := l.acc.entry(key, rule.Class)
		e.quantity += rule.Factor * rec.Quantity
		e.amount = e.amount.Sub(factor.Mul(amt))
		return
	}

	e := l.acc.entry(key, rule.Class)
	e.quantity += rule.Factor * rec.Quantity
}

type legState struct {
	quantity int64
	amount   decimal.Decimal
}

// Rows returns the aggregated ledger rows, most recently inserted first,
// tracking a running (quantity, amount) per leg.
//
// Await-match legs are two-phase: the first occurrence of a leg is recorded
// tentatively and marked awaiting; its next occurrence resolves the running
// quantity by transaction code (BTO and STC add, BTC and STO subtract)
// instead of by balance sign. Whenever a leg's running quantity returns to
// zero its accumulated amount is emitted as realized profit and resets.
func (l *OptionLedger) Rows() []LedgerRow {
	rows := make([]LedgerRow, 0, len(l.acc.entries))
	legs := make(map[string]*legState)
	awaiting := make(map[string]bool)

	for i := len(l.acc.entries) - 1; i >= 0; i-- {
		e := l.acc.entries[i]
		leg := e.key.tag

		st, ok := legs[leg]
		if !ok {
			st = &legState{amount: decimal.Zero}
			legs[leg] = st
		}

		row := LedgerRow{
			Date:        e.key.date,
			Description: leg,
			TransCode:   e.key.code,
			Quantity:    e.quantity,
			Price:       e.key.price,
			Amount:      e.amount,
		}

		switch e.class {
		case ClassAccumulate:
			st.quantity += e.quantity
			st.amount = st.amount.Add(e.amount)
		case ClassBalanceFlip:
			// Negate while the leg balance is strictly positive. The zero
			// and negative cases accumulate as signed.
			if st.quantity > 0 {
				st.quantity -= e.quantity
			} else {
				st.quantity += e.quantity
			}
		case ClassAwaitMatch:
			if !awaiting[leg] {
				st.quantity += e.quantity
				awaiting[leg] = true
			} else {
				st.quantity += matchDelta(e.key.code, e.quantity)
				awaiting[leg] = false
			}
		default:
			st.quantity += e.quantity
		}

		if st.quantity == 0 {
			row.Profit = decimal.NullDecimal{Decimal: st.amount, Valid: true}
			st.amount = decimal.Zero
		}
		rows = append(rows, row)
	}
	return rows
}

// matchDelta resolves the closing side of an await-match pair from the
// transaction code itself.
func matchDelta(code string, quantity int64) int64 {
	magnitude := quantity
	if magnitude < 0 {
		magnitude = -magnitude
	}
	switch code {
	case "BTO", "STC":
		return magnitude
	case "BTC", "STO":
		return -magnitude
	}
	return quantity
}
