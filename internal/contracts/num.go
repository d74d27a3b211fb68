package contracts

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/wonny/carteira/internal/brnumber"
)

// Num is an optional float64.
// ⭐ Absence is a valid outcome: every consumer propagates it instead of guessing a value.
type Num struct {
	Value float64
	Valid bool
}

// Some wraps a present value
func Some(v float64) Num {
	return Num{Value: v, Valid: true}
}

// None is the absent value
var None = Num{}

// Get returns the value and whether it is present
func (n Num) Get() (float64, bool) {
	return n.Value, n.Valid
}

// Present reports whether the value is present and non-zero.
// Wallet fields use it: a zero there means "not reported".
func (n Num) Present() bool {
	return n.Valid && n.Value != 0
}

// Or returns n when valid, otherwise fallback
func (n Num) Or(fallback Num) Num {
	if n.Valid {
		return n
	}
	return fallback
}

// Ptr returns a pointer to the value, nil when absent
func (n Num) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func (n Num) String() string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON encodes an absent value as null
func (n Num) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number or null
func (n *Num) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = None
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Some(v)
	return nil
}

// ParseNum converts Brazilian-formatted text into a Num
func ParseNum(s string) Num {
	v, ok := brnumber.Parse(s)
	if !ok {
		return None
	}
	return Some(v)
}

// FlexNum is a Num decoded from wallet JSON, where numbers may arrive as JSON
// numbers or as locale-formatted strings ("1.234,56"). Strings go through
// NumberParser; anything unparseable decodes to absent instead of failing.
type FlexNum struct {
	Num
}

// UnmarshalJSON never returns an error for malformed values
func (f *FlexNum) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		f.Num = None
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			f.Num = None
			return nil
		}
		f.Num = ParseNum(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		f.Num = None
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			f.Num = None
			return nil
		}
		f.Num = Some(v)
	}
	return nil
}

// MarshalJSON encodes like Num
func (f FlexNum) MarshalJSON() ([]byte, error) {
	return f.Num.MarshalJSON()
}
