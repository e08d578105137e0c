package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MaxSentinel marks an unbounded upper range limit
const MaxSentinel = "MAX"

// RangeBound is the upper limit of a tier: either a value carried verbatim
// or the MAX sentinel
type RangeBound struct {
	value Numeric
}

// MaxBound returns the unbounded upper limit
func MaxBound() RangeBound {
	return RangeBound{value: NumericText(MaxSentinel)}
}

// BoundOf carries n through unchanged; a missing or falsy value becomes MAX
func BoundOf(n Numeric) RangeBound {
	if !n.Truthy() {
		return MaxBound()
	}
	return RangeBound{value: n}
}

// IsMax reports whether the bound is unbounded
func (b RangeBound) IsMax() bool {
	return !b.value.Truthy() || b.value.String() == MaxSentinel
}

// String returns the display text of the bound
func (b RangeBound) String() string {
	if b.IsMax() {
		return MaxSentinel
	}
	return b.value.String()
}

// Float parses a bounded limit; ok is false for MAX or non-numeric text
func (b RangeBound) Float() (float64, bool) {
	if b.IsMax() {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(b.value.String()), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (b RangeBound) MarshalJSON() ([]byte, error) {
	if b.IsMax() {
		return json.Marshal(MaxSentinel)
	}
	return b.value.MarshalJSON()
}

func (b *RangeBound) UnmarshalJSON(data []byte) error {
	return b.value.UnmarshalJSON(data)
}
