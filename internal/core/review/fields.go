package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The provider is loose with types: ids arrive as numbers or strings,
// counters sometimes as strings, flags as bools or 0/1, and any field may be null.
// The types below accept every shape seen in the wild and reject containers.

var null = []byte("null")

func isNull(b []byte) bool { return len(b) == 0 || bytes.Equal(b, null) }

// Text is a string that also accepts numbers and booleans
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case isNull(b):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case b[0] == 't' || b[0] == 'f':
		*t = Text(b)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	default:
		return fmt.Errorf("text: unexpected %s", kind(b))
	}
	return nil
}

// Count is an integer counter that also accepts numeric strings, junk strings read as 0
type Count int64

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(b []byte) error {
	n, ok, err := number(b)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	if !ok {
		*c = 0
		return nil
	}
	if f, err := n.Float64(); err == nil && !math.IsNaN(f) {
		*c = Count(int64(f))
		return nil
	}
	*c = 0
	return nil
}

// Flag is a boolean that also accepts 0/1 and "true"/"false" style strings
type Flag bool

// UnmarshalJSON implements json.Unmarshaler
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case isNull(b):
		*f = false
	case b[0] == 't' || b[0] == 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = Flag(v)
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		*f = Flag(err == nil && v)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		v, err := n.Float64()
		*f = Flag(err == nil && v != 0)
	default:
		return fmt.Errorf("flag: unexpected %s", kind(b))
	}
	return nil
}

// Score keeps the raw rating so Rating can tell 4 from "4", 4.5 or "great"
type Score struct {
	n     json.Number
	valid bool
}

// UnmarshalJSON implements json.Unmarshaler
// only a JSON number token counts as a score; quoted digits are treated like any other string
func (s *Score) UnmarshalJSON(b []byte) error {
	n, ok, err := number(b)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if t := bytes.TrimSpace(b); len(t) > 0 && t[0] == '"' {
		ok = false
	}
	*s = Score{n: n, valid: ok}
	return nil
}

// Rating returns the score as a star rating in [1,5]
// anything that is not a positive integer number means 5, larger values are capped at 5
func (s Score) Rating() int {
	if !s.valid {
		return 5
	}
	v, err := s.n.Int64()
	if err != nil || v < 1 {
		return 5
	}
	return int(min(v, 5))
}

// number reads a JSON number or a numeric string
// ok is false for null, empty or non numeric strings; containers are an error
func number(b []byte) (json.Number, bool, error) {
	b = bytes.TrimSpace(b)
	switch {
	case isNull(b):
		return "", false, nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return "", false, nil
		}
		return json.Number(s), true, nil
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", false, err
		}
		return n, true, nil
	case b[0] == 't' || b[0] == 'f':
		return "", false, nil
	default:
		return "", false, fmt.Errorf("unexpected %s", kind(b))
	}
}

func kind(b []byte) string {
	switch b[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "value"
	}
}
