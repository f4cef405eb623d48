package types

import (
	"github.com/moznion/go-optional"
)

// Series is a numeric sequence aligned index-for-index with a bar sequence.
// Entries before an indicator's warm-up window are explicitly absent rather
// than NaN, so a comparison against an undefined value can never fire a
// trade by accident.
type Series struct {
	values []optional.Option[float64]
}

// NewSeries creates a series of length n with every entry undefined.
func NewSeries(n int) Series {
	return Series{
		values: make([]optional.Option[float64], n),
	}
}

// SeriesFromValues creates a fully defined series from a slice of floats.
func SeriesFromValues(values []float64) Series {
	s := NewSeries(len(values))
	for i, v := range values {
		s.Set(i, v)
	}

	return s
}

// ConstantSeries creates a series of length n with every entry set to v.
func ConstantSeries(n int, v float64) Series {
	s := NewSeries(n)
	for i := range n {
		s.Set(i, v)
	}

	return s
}

// Len returns the length of the series.
func (s Series) Len() int {
	return len(s.values)
}

// Set defines the value at index i.
func (s Series) Set(i int, v float64) {
	s.values[i] = optional.Some(v)
}

// At returns the optional value at index i. Out-of-range indices are
// undefined rather than a panic.
func (s Series) At(i int) optional.Option[float64] {
	if i < 0 || i >= len(s.values) {
		return optional.None[float64]()
	}

	return s.values[i]
}

// Value returns the value at index i and whether it is defined.
func (s Series) Value(i int) (float64, bool) {
	v := s.At(i)
	if v.IsNone() {
		return 0, false
	}

	return v.Unwrap(), true
}

// Defined reports whether the value at index i is defined.
func (s Series) Defined(i int) bool {
	return s.At(i).IsSome()
}

// CrossedAbove reports whether series a crossed above series b at bar t:
// a was at or below b on the previous bar and is strictly above it now.
// Returns false when t has no previous bar or any operand is undefined.
func CrossedAbove(a, b Series, t int) bool {
	aPrev, okAPrev := a.Value(t - 1)
	bPrev, okBPrev := b.Value(t - 1)
	aCur, okACur := a.Value(t)
	bCur, okBCur := b.Value(t)

	if !okAPrev || !okBPrev || !okACur || !okBCur {
		return false
	}

	return aPrev <= bPrev && aCur > bCur
}

// CrossedBelow reports whether series a crossed below series b at bar t:
// a was at or above b on the previous bar and is strictly below it now.
// Returns false when t has no previous bar or any operand is undefined.
func CrossedBelow(a, b Series, t int) bool {
	aPrev, okAPrev := a.Value(t - 1)
	bPrev, okBPrev := b.Value(t - 1)
	aCur, okACur := a.Value(t)
	bCur, okBCur := b.Value(t)

	if !okAPrev || !okBPrev || !okACur || !okBCur {
		return false
	}

	return aPrev >= bPrev && aCur < bCur
}
