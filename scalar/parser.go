package scalar

import (
	"io"
	"log"
	"strconv"
	"strings"
)

// Parser converts cells under the permissive policy: a malformed cell is
// logged and becomes Unspecified instead of failing the build. A Parser is not
// safe for concurrent use; give each catalog its own.
type Parser struct {
	log      *log.Logger
	context  string
	warnings int
}

// NewParser returns a Parser that writes warnings to logger. A nil logger
// discards them (they are still counted).
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Parser{log: logger}
}

// SetContext sets a prefix (e.g. file and row) added to subsequent warnings.
func (p *Parser) SetContext(context string) {
	p.context = context
}

// Warnings returns how many cells have been substituted so far.
func (p *Parser) Warnings() int {
	return p.warnings
}

// NumberOrAbsent maps empty to Unspecified, passes N/A through, and parses
// everything else as a number, falling back to Unspecified with a warning.
func (p *Parser) NumberOrAbsent(s string) Value[float64] {
	t := strings.TrimSpace(s)
	switch t {
	case "":
		return Unspecified[float64]()
	case LabelNA:
		return NA[float64]()
	}
	n, ok := parseNumber(t)
	if !ok {
		p.warn(KindNumber, t)
		return Unspecified[float64]()
	}
	return Of(n)
}

// BooleanOrAbsent is like NumberOrAbsent for true/false in any letter case.
func (p *Parser) BooleanOrAbsent(s string) Value[bool] {
	t := strings.TrimSpace(s)
	switch t {
	case "":
		return Unspecified[bool]()
	case LabelNA:
		return NA[bool]()
	}
	switch strings.ToLower(t) {
	case "true":
		return Of(true)
	case "false":
		return Of(false)
	}
	p.warn(KindBoolean, t)
	return Unspecified[bool]()
}

func (p *Parser) warn(kind Kind, value string) {
	p.warnings++
	if p.context != "" {
		p.log.Printf("WARN: %s: Invalid %s value: %s", p.context, kind, strconv.Quote(value))
		return
	}
	p.log.Printf("WARN: Invalid %s value: %s", kind, strconv.Quote(value))
}
