package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents. Totals are summed as integers so they never drift.
type Money int64

// MaxMoney is the largest amount accepted anywhere, the range of a decimal(12,2)
// column. Line totals up to MaxMoney times a few thousand still fit an int64.
const MaxMoney Money = 999_999_999_999

var (
	ErrInvalidMoney = errors.New("invalid monetary amount")

	maxMoneyDecimal = decimal.New(int64(MaxMoney), -2)
)

// ParseMoney reads a decimal amount such as "3", "3.5", "3.50" or "1e2".
// Fractions of a cent and amounts beyond MaxMoney are rejected.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidMoney
	}
	if !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("%w: at most 2 decimal places", ErrInvalidMoney)
	}
	if d.Abs().GreaterThan(maxMoneyDecimal) {
		return 0, fmt.Errorf("%w: exceeds %s", ErrInvalidMoney, maxMoneyDecimal.StringFixed(2))
	}
	return Money(d.Shift(2).IntPart()), nil
}

// Cents builds a Money from a whole number of cents.
func Cents(c int64) Money { return Money(c) }

// Times multiplies a unit price by a quantity.
func (m Money) Times(qty int) Money { return m * Money(qty) }

// String formats as a plain decimal with two places, e.g. "11.00".
func (m Money) String() string {
	return decimal.New(int64(m), -2).StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
