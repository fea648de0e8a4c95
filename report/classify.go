package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Kind selects which rule table a transaction is classified against.
type Kind string

const (
	KindStock  Kind = "stock"
	KindOption Kind = "option"
)

// Behavior classes. They decide how a transaction code moves the running
// quantity and amount of a ledger entry.
const (
	ClassAccumulate  = 0 // quantity and amount both tracked, signed by factor
	ClassBalanceFlip = 1 // quantity sign depends on the current balance
	ClassAmountOnly  = 2 // fees and the like, quantity not tracked
	ClassAwaitMatch  = 3 // option legs resolved against a later record
)

// Rule is the (behavior class, sign factor) pair a transaction code maps to.
// The JSON form is a two-element array, e.g. "Buy": [0, 1].
type Rule struct {
	Class  int
	Factor int64
}

func (r *Rule) UnmarshalJSON(b []byte) error {
	var pair [2]int64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("rule must be a [class, factor] pair: %w", err)
	}
	r.Class = int(pair[0])
	r.Factor = pair[1]
	return nil
}

func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{int64(r.Class), r.Factor})
}

// ErrUnknownCode reports a transaction code outside the configured
// vocabulary. Callers log it and drop the row; processing continues.
var ErrUnknownCode = errors.New("transaction code not handled")

// Classification maps instrument kind to transaction code to rule. Loaded
// once per run and read-only afterwards.
type Classification map[Kind]map[string]Rule

// Lookup returns the rule for a code under the given kind.
func (c Classification) Lookup(kind Kind, code string) (Rule, error) {
	rules, ok := c[kind]
	if !ok {
		return Rule{}, fmt.Errorf("%w: no rules for kind %q", ErrUnknownCode, kind)
	}
	r, ok := rules[code]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q (%s)", ErrUnknownCode, code, kind)
	}
	return r, nil
}

// KindFor reports which rule table a code belongs to. Stock rules win when
// a code appears in both.
func (c Classification) KindFor(code string) (Kind, bool) {
	if _, ok := c[KindStock][code]; ok {
		return KindStock, true
	}
	if _, ok := c[KindOption][code]; ok {
		return KindOption, true
	}
	return "", false
}

// LoadClassification reads the classification document, a JSON object of
// the form {"stock": {code: [class, factor]}, "option": {...}}.
func LoadClassification(path string) (Classification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classification config: %w", err)
	}

	var c Classification
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse classification config: %w", err)
	}
	if len(c[KindStock]) == 0 && len(c[KindOption]) == 0 {
		return nil, fmt.Errorf("classification config %s defines no rules", path)
	}
	return c, nil
}

// DefaultClassification covers the common brokerage export vocabulary.
// A configuration file extends or replaces it.
func DefaultClassification() Classification {
	return Classification{
		KindStock: {
			"Buy":  {Class: ClassAccumulate, Factor: 1},
			"Sell": {Class: ClassAccumulate, Factor: -1},
			"SPL":  {Class: ClassBalanceFlip, Factor: 1},
			"SPR":  {Class: ClassBalanceFlip, Factor: 1},
			"AFEE": {Class: ClassAmountOnly, Factor: -1},
			"GOLD": {Class: ClassAmountOnly, Factor: -1},
			"CDIV": {Class: ClassAmountOnly, Factor: 1},
		},
		// TODO: margin interest (MINT) shows up in newer exports and still
		// needs a confirmed sign before it can join the defaults.
		KindOption: {
			"BTO":   {Class: ClassAwaitMatch, Factor: 1},
			"STC":   {Class: ClassAwaitMatch, Factor: -1},
			"STO":   {Class: ClassAwaitMatch, Factor: -1},
			"BTC":   {Class: ClassAwaitMatch, Factor: 1},
			"OEXP":  {Class: ClassBalanceFlip, Factor: -1},
			"OASGN": {Class: ClassAccumulate, Factor: 1},
			"OEXCS": {Class: ClassAccumulate, Factor: -1},
		},
	}
}
