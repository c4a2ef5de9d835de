package scalar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Kind names the type a ParseError was trying to produce.
type Kind string

const (
	KindNumber     Kind = "number"
	KindBoolean    Kind = "boolean"
	KindPercentage Kind = "percentage"
)

// ParseError reports a cell that could not be converted under a strict policy.
type ParseError struct {
	Kind  Kind
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid %s value: %s", e.Kind, strconv.Quote(e.Value))
}

var (
	percentagePattern = regexp.MustCompile(`^(\d+|\d*\.\d+)%$`)
	extensionPattern  = regexp.MustCompile(`\.([^.]*)(?:$|\.gz$)`)
)

// StringOrNull returns null for an empty (or all-whitespace) cell.
func StringOrNull(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// StringOrAbsent passes the N/A sentinel through, maps an empty cell to
// Unspecified, and otherwise applies mapper (if any) to the trimmed cell.
func StringOrAbsent(s string, mapper func(string) string) Value[string] {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return Unspecified[string]()
	case LabelNA:
		return NA[string]()
	}
	if mapper != nil {
		s = mapper(s)
	}
	return Of(s)
}

// Number parses a mandatory numeric cell. Empty and malformed cells are errors.
func Number(s string) (float64, error) {
	n, err := NumberOrNull(s)
	if err != nil {
		return 0, err
	}
	if !n.Valid {
		return 0, &ParseError{Kind: KindNumber, Value: s}
	}
	return n.Float64, nil
}

// NumberOrNull returns null for an empty cell and fails on anything that is
// present but not numeric.
func NumberOrNull(s string) (null.Float, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return null.Float{}, nil
	}
	n, ok := parseNumber(t)
	if !ok {
		return null.Float{}, &ParseError{Kind: KindNumber, Value: s}
	}
	return null.FloatFrom(n), nil
}

// NumberOrNA accepts a number or the N/A sentinel. The cell may never be
// silently missing, so empty is an error too.
func NumberOrNA(s string) (Value[float64], error) {
	t := strings.TrimSpace(s)
	if t == LabelNA {
		return NA[float64](), nil
	}
	n, ok := parseNumber(t)
	if t == "" || !ok {
		return Value[float64]{}, &ParseError{Kind: KindNumber, Value: s}
	}
	return Of(n), nil
}

// BooleanOrNA accepts exactly "True", "False", or the N/A sentinel.
func BooleanOrNA(s string) (Value[bool], error) {
	switch strings.TrimSpace(s) {
	case LabelNA:
		return NA[bool](), nil
	case "True":
		return Of(true), nil
	case "False":
		return Of(false), nil
	}
	return Value[bool]{}, &ParseError{Kind: KindBoolean, Value: s}
}

// PercentageOrNull parses "12.5%" into 0.125. Empty is null; anything else that
// doesn't look like a percentage is an error.
func PercentageOrNull(s string) (null.Float, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return null.Float{}, nil
	}
	match := percentagePattern.FindStringSubmatch(t)
	if match == nil {
		return null.Float{}, &ParseError{Kind: KindPercentage, Value: s}
	}
	n, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return null.Float{}, &ParseError{Kind: KindPercentage, Value: s}
	}
	return null.FloatFrom(n / 100), nil
}

// NumberOrStringOrNull keeps a cell that isn't numeric as text rather than
// failing. Quality values are sometimes reported as e.g. "inf".
func NumberOrStringOrNull(s string) NumberOrText {
	t := strings.TrimSpace(s)
	if t == "" {
		return NumberOrText{}
	}
	if n, ok := parseNumber(t); ok {
		return NumberOrText{Number: null.FloatFrom(n)}
	}
	return NumberOrText{Text: t}
}

// StringArray splits a comma-joined cell, dropping empty items. An empty cell
// is an empty list.
func StringArray(s string) []string {
	items := []string{}
	for _, sourceItem := range strings.Split(s, ",") {
		if item := strings.TrimSpace(sourceItem); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// FileNameFromPath returns everything after the last slash.
func FileNameFromPath(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// TypeFromFilename returns the lower-cased extension of name, looking past a
// trailing .gz, or N/A when there is none.
func TypeFromFilename(name string) string {
	match := extensionPattern.FindStringSubmatch(name)
	if match == nil || match[1] == "" {
		return LabelNA
	}
	return strings.ToLower(match[1])
}

// parseNumber converts an already-trimmed cell. Decimal, exponent, and
// 0x/0o/0b integer forms are accepted; NaN and infinities are not, since they
// have no JSON representation.
func parseNumber(t string) (float64, bool) {
	if t == "" {
		return 0, false
	}

	lower := strings.ToLower(strings.TrimLeft(t, "+-"))
	if strings.HasPrefix(lower, "inf") || strings.HasPrefix(lower, "nan") {
		return 0, false
	}

	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		// Prefixed integers are only valid unsigned.
		if lower != strings.ToLower(t) {
			return 0, false
		}
		n, err := strconv.ParseUint(t, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}

	if strings.Contains(t, "_") {
		return 0, false
	}

	n, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
