// Package wire holds loosely typed JSON scalars as the backend sends them.
// Values are kept raw; conversion to typed values happens in each entity's
// Normalize function and never fails.
package wire

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is a JSON scalar (number, string, bool or null) kept as raw text.
type Value json.RawMessage

func (v *Value) UnmarshalJSON(data []byte) error {
	*v = append((*v)[:0], data...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// IsNull reports a missing or explicit null value.
func (v Value) IsNull() bool {
	t := bytes.TrimSpace(v)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Text returns the value as text: strings unquoted, numbers verbatim, null as "".
func (v Value) Text() string {
	if v.IsNull() {
		return ""
	}
	t := bytes.TrimSpace(v)
	if t[0] == '"' {
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return ""
		}
		return s
	}
	return string(t)
}

// Int parses the value like a lenient integer field: fractional values
// truncate toward zero and anything unparsable or out of int range is 0.
func (v Value) Int() int {
	s := strings.TrimSpace(v.Text())
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0
	}
	return int(f)
}

// Float parses the value, 0 on failure.
func (v Value) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Text()), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Decimal parses a currency value, zero on failure.
func (v Value) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(v.Text()))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// String builds a JSON string value.
func String(s string) Value {
	b, _ := json.Marshal(s)
	return Value(b)
}

// Int builds a JSON number value.
func Int(i int) Value {
	return Value(strconv.Itoa(i))
}

// Money builds the two-decimal string form the backend uses for decimals.
func Money(d decimal.Decimal) Value {
	return String(d.StringFixed(2))
}

// Float builds a JSON number value.
func Float(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// Null is the JSON null value.
func Null() Value {
	return Value("null")
}

// ID converts an identifier to its wire form: numeric ids stay numbers, the
// empty sentinel becomes null.
func ID(id string) Value {
	if id == "" {
		return Null()
	}
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return Value(id)
	}
	return String(id)
}
