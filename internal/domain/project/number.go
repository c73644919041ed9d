package project

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a numeric manifest value kept exactly as written. Hand-edited
// manifests carry ranks and progress as integers, fractions or numeric
// strings.
type Number struct {
	raw json.RawMessage
}

// NumberOf returns the Number encoding v.
func NumberOf(v float64) Number {
	return Number{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// IsZero reports whether the value was absent.
func (n Number) IsZero() bool {
	return len(n.raw) == 0
}

// Float64 returns the numeric value of n. Numeric strings count.
func (n Number) Float64() (float64, bool) {
	if n.IsZero() {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(n.raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(n.raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// NonZero reports whether n holds something other than an absent value,
// null, false, zero or the empty string. The string "0" is non-zero.
func (n Number) NonZero() bool {
	if n.IsZero() {
		return false
	}
	var v any
	if err := json.Unmarshal(n.raw, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

func (n Number) String() string {
	return string(n.raw)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.IsZero() {
		return []byte("null"), nil
	}
	return n.raw, nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}
