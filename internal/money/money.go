// Package money provides an exact decimal amount type backed by integer
// cents. Amounts parse from decimal strings, serialize as fixed 2-decimal
// strings, and store as BIGINT cents so that SQL aggregation never touches
// floating point.
package money

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a value cannot be parsed as a positive
// decimal amount.
var ErrInvalidAmount = errors.New("amount must be a positive decimal")

// maxCents guards the cents conversion against int64 overflow.
var maxCents = decimal.New(math.MaxInt64, 0)

// Money is a monetary amount in integer cents.
type Money struct {
	cents int64
}

// FromCents builds a Money from raw cents. Used for aggregation results,
// which may legitimately be zero.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Parse converts a decimal string into Money. Values with more than two
// decimal places are rounded half-up. Non-numeric, negative, and zero
// amounts fail with ErrInvalidAmount.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return FromDecimal(d)
}

// FromDecimal converts an arbitrary-precision decimal into Money under the
// same rounding and positivity rules as Parse.
func FromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Round(2).Shift(2)
	if cents.Cmp(maxCents) > 0 {
		return Money{}, ErrInvalidAmount
	}
	v := cents.IntPart()
	if v <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: v}, nil
}

// Cents returns the raw cent value.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the integer-exact sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{cents: m.cents + o.cents}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// String renders the canonical 2-decimal form, e.g. 1234 cents -> "12.34".
func (m Money) String() string {
	return decimal.New(m.cents, -2).StringFixed(2)
}

// MarshalJSON serializes the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string ("12.34") or a bare JSON
// number (12.34).
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer, storing the amount as cents.
func (m Money) Value() (driver.Value, error) {
	return m.cents, nil
}

// Scan implements sql.Scanner for cent values read back from the database.
func (m *Money) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		m.cents = 0
	case int64:
		m.cents = v
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("money: cannot scan %q: %w", v, err)
		}
		m.cents = d.IntPart()
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("money: cannot scan %q: %w", v, err)
		}
		m.cents = d.IntPart()
	default:
		return fmt.Errorf("money: cannot scan %T", value)
	}
	return nil
}
