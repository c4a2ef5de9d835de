// Package scalar converts raw source cells into typed catalog values.
//
// Most catalog fields are tri-state: a real value, "N/A" when the source marks
// the field as not applicable, or "Unspecified" when the source omitted it or
// it could not be parsed. The two sentinels are not interchangeable.
package scalar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel labels, rendered verbatim by the explorer UI.
const (
	LabelNA          = "N/A"
	LabelUnspecified = "Unspecified"
)

// State says which arm of the tri-state a Value holds.
type State uint8

const (
	// StateUnspecified is the zero value: nothing is known about the field.
	StateUnspecified State = iota
	StateNA
	StatePresent
)

func (s State) String() string {
	switch s {
	case StateNA:
		return LabelNA
	case StatePresent:
		return "Present"
	}
	return LabelUnspecified
}

// Value is a tri-state catalog field holding either a T, N/A, or Unspecified.
// The zero Value is Unspecified.
type Value[T any] struct {
	v     T
	state State
}

// Of returns a present Value.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, state: StatePresent}
}

// NA returns a Value explicitly marked as not applicable.
func NA[T any]() Value[T] {
	return Value[T]{state: StateNA}
}

// Unspecified returns a Value for which nothing is known.
func Unspecified[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the held value and whether one is present.
func (x Value[T]) Get() (T, bool) {
	return x.v, x.state == StatePresent
}

func (x Value[T]) State() State { return x.state }

func (x Value[T]) IsNA() bool { return x.state == StateNA }

func (x Value[T]) IsUnspecified() bool { return x.state == StateUnspecified }

// String renders the value the way it appears inside identity keys: the value
// itself, or the sentinel label.
func (x Value[T]) String() string {
	switch x.state {
	case StateNA:
		return LabelNA
	case StateUnspecified:
		return LabelUnspecified
	}
	return formatAny(x.v)
}

// MarshalJSON writes the value, or the sentinel label as a JSON string.
func (x Value[T]) MarshalJSON() ([]byte, error) {
	switch x.state {
	case StateNA:
		return json.Marshal(LabelNA)
	case StateUnspecified:
		return json.Marshal(LabelUnspecified)
	}
	return marshalNoEscape(x.v)
}

// UnmarshalJSON reads a value written by MarshalJSON. A JSON string equal to a
// sentinel label always decodes to that sentinel.
func (x *Value[T]) UnmarshalJSON(b []byte) error {
	var label string
	if err := json.Unmarshal(b, &label); err == nil {
		switch label {
		case LabelNA:
			*x = NA[T]()
			return nil
		case LabelUnspecified:
			*x = Unspecified[T]()
			return nil
		}
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("scalar: cannot decode %s: %w", b, err)
	}
	*x = Of(v)

	return nil
}

func formatAny(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return FormatNumber(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// FormatNumber renders n the way a JavaScript template literal would: integers
// without a fractional part, exponent notation only for very large or very
// small magnitudes.
func FormatNumber(n float64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		// Go writes e-07 and e+21; JavaScript writes e-7 and e+21.
		if i := strings.IndexByte(s, 'e'); i >= 0 && i+3 < len(s) && s[i+2] == '0' {
			s = s[:i+2] + s[i+3:]
		}
		return s
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
