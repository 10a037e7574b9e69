package mapper

import (
	"fmt"
	"strings"
)

// Keys of a Structural result.
const (
	KeyMap1 = "map1"
	KeyMap2 = "map2"
	KeyMax  = "max"
)

// Style selects which built-in result a mapping produces.
type Style int

const (
	// StyleStructural produces Structural mappings.
	StyleStructural Style = iota
	// StyleTyped produces Result values.
	StyleTyped
)

// String returns the profile name of the style.
func (s Style) String() string {
	switch s {
	case StyleStructural:
		return "structural"
	case StyleTyped:
		return "typed"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// IsValid returns true if the style is a recognized value.
func (s Style) IsValid() bool {
	return s == StyleStructural || s == StyleTyped
}

// ParseStyle parses a style name. The empty string means StyleStructural.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "structural":
		return StyleStructural, nil
	case "typed":
		return StyleTyped, nil
	default:
		return StyleStructural, fmt.Errorf("unknown result style %q", s)
	}
}

// Result is the typed target record.
type Result[A, B any, N Number] struct {
	Map1 A `json:"map1" yaml:"map1"`
	Map2 B `json:"map2" yaml:"map2"`
	Max  N `json:"max" yaml:"max"`
}

// NewResult builds a Result from its three positional values.
func NewResult[A, B any, N Number](map1 A, map2 B, max N) Result[A, B, N] {
	return Result[A, B, N]{Map1: map1, Map2: map2, Max: max}
}

// String returns a debug representation.
func (r Result[A, B, N]) String() string {
	return fmt.Sprintf("Result{map1=%v, map2=%v, max=%v}", r.Map1, r.Map2, r.Max)
}

// Structural is the anonymous target record: a mapping with exactly the keys
// KeyMap1, KeyMap2 and KeyMax.
type Structural map[string]any

// Strategy constructs a target record from the pass-through values and the
// clamped numeric value, in that order.
type Strategy[A, B any, N Number, T any] func(map1 A, map2 B, max N) T

// Typed returns the strategy that builds Result values.
func Typed[A, B any, N Number]() Strategy[A, B, N, Result[A, B, N]] {
	return NewResult[A, B, N]
}

// StructuralStrategy returns the strategy that builds Structural mappings.
func StructuralStrategy[A, B any, N Number]() Strategy[A, B, N, Structural] {
	return func(map1 A, map2 B, max N) Structural {
		return Structural{
			KeyMap1: map1,
			KeyMap2: map2,
			KeyMax:  max,
		}
	}
}

// Construct adapts a three-argument constructor into a Strategy.
func Construct[A, B any, N Number, T any](ctor func(A, B, N) T) Strategy[A, B, N, T] {
	if ctor == nil {
		panic("constructor cannot be nil")
	}

	return ctor
}
