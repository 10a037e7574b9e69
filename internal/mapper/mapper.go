package mapper

import (
	"fmt"
)

// Original is the read contract of a source record.
type Original[A, B any, N Number] interface {
	// El1 returns the first pass-through value.
	El1() A
	// El2 returns the second pass-through value.
	El2() B
	// I returns the numeric value to clamp.
	I() N
}

// Map transforms a single source record.
func Map[S Original[A, B, N], A, B any, N Number, T any](o S, build Strategy[A, B, N, T]) T {
	return build(o.El1(), o.El2(), Clamp(o.I()))
}

// MapArray transforms objs element by element, keeping length and order.
// A nil or empty input yields an empty, non-nil slice.
func MapArray[S Original[A, B, N], A, B any, N Number, T any](objs []S, build Strategy[A, B, N, T]) []T {
	out := make([]T, len(objs))
	for i, o := range objs {
		out[i] = Map(o, build)
	}

	return out
}

// MapChecked transforms a single source record, applying policy to the
// numeric value.
func MapChecked[S Original[A, B, N], A, B any, N Number, T any](
	o S, build Strategy[A, B, N, T], policy NaNPolicy,
) (T, error) {
	map1, map2 := o.El1(), o.El2()

	clamped, err := ClampChecked(o.I(), policy)
	if err != nil {
		var zero T
		return zero, err
	}

	return build(map1, map2, clamped), nil
}

// MapArrayChecked is MapArray with a NaN policy. It stops at the first
// rejected element and returns no partial output.
func MapArrayChecked[S Original[A, B, N], A, B any, N Number, T any](
	objs []S, build Strategy[A, B, N, T], policy NaNPolicy,
) ([]T, error) {
	out := make([]T, len(objs))
	if err := mapInto(out, objs, 0, build, policy); err != nil {
		return nil, err
	}

	return out, nil
}

// mapInto maps objs into out, which must have the same length. offset is
// added to element indexes in errors.
func mapInto[S Original[A, B, N], A, B any, N Number, T any](
	out []T, objs []S, offset int, build Strategy[A, B, N, T], policy NaNPolicy,
) error {
	if policy == NaNPropagate {
		for i, o := range objs {
			out[i] = Map(o, build)
		}

		return nil
	}

	for i, o := range objs {
		v, err := MapChecked(o, build, policy)
		if err != nil {
			return fmt.Errorf("element %d: %w", offset+i, err)
		}

		out[i] = v
	}

	return nil
}
