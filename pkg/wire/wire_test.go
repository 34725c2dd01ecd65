package wire

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) Value {
	t.Helper()
	var holder struct {
		V Value `json:"v"`
	}
	if err := json.Unmarshal([]byte(`{"v":`+s+`}`), &holder); err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return holder.V
}

func TestIntLenientParsing(t *testing.T) {
	cases := map[string]int{
		`5`:       5,
		`"12"`:    12,
		`"7.9"`:   7,
		`-3.5`:    -3,
		`"abc"`:   0,
		`null`:    0,
		`""`:      0,
		`true`:    0,
		`"1e400"`: 0,

		`"99999999999999999999"`:  0,
		`1e300`:                   0,
		`-1e300`:                  0,
		`"-99999999999999999999"`: 0,
	}
	for in, want := range cases {
		if got := decode(t, in).Int(); got != want {
			t.Errorf("Int(%s) = %d, want %d", in, got, want)
		}
	}
}

func TestDecimalAndText(t *testing.T) {
	if got := decode(t, `"10.50"`).Decimal().StringFixed(2); got != "10.50" {
		t.Fatalf("decimal: %s", got)
	}
	if !decode(t, `"n/a"`).Decimal().IsZero() {
		t.Fatal("unparsable decimal should be zero")
	}
	if got := decode(t, `42`).Text(); got != "42" {
		t.Fatalf("text of number: %q", got)
	}
	if !decode(t, `null`).IsNull() || decode(t, `0`).IsNull() {
		t.Fatal("IsNull")
	}
	var missing Value
	if !missing.IsNull() || missing.Text() != "" {
		t.Fatal("zero Value should read as null")
	}
}

func TestIDEncoding(t *testing.T) {
	cases := map[string]string{"": "null", "12": "12", "abc-1": `"abc-1"`}
	for in, want := range cases {
		b, _ := json.Marshal(ID(in))
		if string(b) != want {
			t.Errorf("ID(%q) = %s, want %s", in, b, want)
		}
	}
}
