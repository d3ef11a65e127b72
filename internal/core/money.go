// Package core provides the budget and expense domain types.
//
// This file contains money parsing and arithmetic. Amounts are kept as
// integer cents so that sums and comparisons are exact; decimal text is
// only used at the edges.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseMoney converts plain decimal text into Money.
//
// Both dot (12.34) and comma (12,34) separators are accepted. A comma followed
// by three digits reads as a thousands separator and is refused, as are
// exponents and any amount finer than a cent; nothing is rounded. The sign is
// not checked: negative and zero amounts are valid.
//
// Examples:
//
//	ParseMoney("12.34")   -> 1234 cents
//	ParseMoney("-5")      -> -500 cents
//	ParseMoney("3000.01") -> 300001 cents
//	ParseMoney("12.345")  -> ErrInvalidAmount
//	ParseMoney("12,345")  -> ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "eE") {
		return Money{}, ErrInvalidAmount
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		if strings.Count(s, ",") > 1 || strings.Contains(s, ".") || len(s)-i-1 > 2 {
			return Money{}, ErrInvalidAmount
		}
		s = s[:i] + "." + s[i+1:]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return Money{}, ErrInvalidAmount
	}
	if !cents.Equal(decimal.NewFromInt(cents.IntPart())) {
		// out of int64 range
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// MustParseMoney is ParseMoney for literals known to be valid.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic("core: invalid money literal " + s)
	}
	return m
}

// Units builds Money from a whole number of major units.
func Units(n int64) Money {
	return Money{Cents: n * 100}
}

func (m Money) Add(n Money) Money { return Money{Cents: m.Cents + n.Cents} }
func (m Money) Sub(n Money) Money { return Money{Cents: m.Cents - n.Cents} }
func (m Money) IsNegative() bool  { return m.Cents < 0 }
func (m Money) IsZero() bool      { return m.Cents == 0 }

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with two fraction digits and no currency.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
