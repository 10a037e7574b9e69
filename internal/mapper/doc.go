// Package mapper turns ordered sequences of source records into ordered
// sequences of result records.
//
// Every source record exposes two pass-through values and one numeric value.
// The mapper copies the pass-through values verbatim and clamps the numeric
// value to a floor of zero:
//
//	map1 = o.El1()
//	map2 = o.El2()
//	max  = Clamp(o.I())
//
// # Output strategies
//
// The per-element computation is shared; only the construction of the target
// record varies. A Strategy receives the three values in order:
//
//   - Typed builds a Result via NewResult
//   - StructuralStrategy builds a Structural mapping with keys
//     "map1", "map2" and "max"
//   - any func(A, B, N) T supplied by the caller builds its own type
//
// Both built-in results encode to the same JSON document.
//
// # NaN handling
//
// Clamp propagates NaN, the same way an IEEE-754 max does. ClampChecked and
// the Checked/Parallel mappers can reject NaN instead, see NaNPolicy.
package mapper
