// Package coerce turns form text into numbers. In lenient mode unparseable
// text silently becomes the caller's default; strict mode reports it.
package coerce

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Mode selects how unparseable input is handled
type Mode int

const (
	Lenient Mode = iota
	Strict
)

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseError is returned in strict mode for text that is not a number
type ParseError struct {
	Text string
	Kind string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%q is not a valid %s", e.Text, e.Kind)
}

// Parser parses numbers with a default for missing input
type Parser struct {
	Mode Mode
}

// Float parses text as a float. Empty text yields def in both modes.
// Lenient mode parses the longest numeric prefix ("12abc" is 12).
func (p Parser) Float(text string, def float64) (float64, error) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	if s == "" {
		return def, nil
	}

	if p.Mode == Strict {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return def, &ParseError{Text: text, Kind: "number"}
		}
		return v, nil
	}

	m := floatPrefix.FindString(s)
	if m == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || v == 0 {
		// zero is falsy and falls back like any other miss
		return def, nil
	}
	return v, nil
}

// Int parses text as an integer. Lenient mode truncates at the first
// non-digit ("2.7" is 2).
func (p Parser) Int(text string, def int64) (int64, error) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	if s == "" {
		return def, nil
	}

	if p.Mode == Strict {
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return def, &ParseError{Text: text, Kind: "integer"}
		}
		return v, nil
	}

	m := intPrefix.FindString(s)
	if m == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil || v == 0 {
		return def, nil
	}
	return v, nil
}

var lenient = Parser{Mode: Lenient}

// Float parses leniently, returning def on failure
func Float(text string, def float64) float64 {
	v, _ := lenient.Float(text, def)
	return v
}

// Int parses leniently, returning def on failure
func Int(text string, def int64) int64 {
	v, _ := lenient.Int(text, def)
	return v
}
