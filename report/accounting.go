package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAccounting converts an accounting-formatted currency or quantity
// string such as "$(1,234.56)" into a decimal value. Dollar signs, thousands
// separators and parentheses are stripped as plain characters; parentheses
// do not negate the value. The ledger sign conventions are built on top of
// the stripped magnitude, so a buy subtracts its amount and a sell adds it.
// Empty or all-space input yields zero.
func ParseAccounting(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	s = strings.NewReplacer("$", "", ",", "", "(", "", ")", "").Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("accounting value %q: %w", s, err)
	}
	return d, nil
}
