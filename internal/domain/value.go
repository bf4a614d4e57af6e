package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is a location field as delivered by the API: either a string or a number.
// Numbers are displayed in their shortest decimal form, so 1e2 reads as 100
// and -12.250 as -12.25.
type Value struct {
	text    string
	num     decimal.Decimal
	numeric bool
}

// StringValue wraps a string field.
func StringValue(s string) Value {
	return Value{text: s}
}

// NumberValue wraps a numeric field. It panics if s is not a valid number,
// which makes it suitable for literals in tests and fixtures only.
func NumberValue(s string) Value {
	return numberValue(decimal.RequireFromString(s))
}

func numberValue(d decimal.Decimal) Value {
	return Value{text: d.String(), num: d, numeric: true}
}

// IsNumber reports whether the value arrived as a JSON number.
func (v Value) IsNumber() bool { return v.numeric }

// String returns the display text of the value.
func (v Value) String() string { return v.text }

// UnmarshalJSON accepts a JSON string or number. Other kinds are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("parse number %s: %w", data, err)
		}
		*v = numberValue(d)
		return nil
	default:
		return fmt.Errorf("unsupported value %s: want string or number", data)
	}
}

// MarshalJSON emits numbers as numbers and strings as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

// Compare orders two values: -1 if a sorts before b, 1 if after, 0 if neither.
func Compare(a, b Value) int {
	switch {
	case a.numeric && b.numeric:
		return a.num.Cmp(b.num)
	case !a.numeric && !b.numeric:
		return strings.Compare(a.text, b.text)
	}

	an, aok := a.asNumber()
	bn, bok := b.asNumber()
	if !aok || !bok {
		return 0
	}
	return an.Cmp(bn)
}

// asNumber coerces the value to a number the way a loose comparison would:
// surrounding space is ignored and an empty string counts as zero.
func (v Value) asNumber() (decimal.Decimal, bool) {
	if v.numeric {
		return v.num, true
	}
	s := strings.TrimSpace(v.text)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
