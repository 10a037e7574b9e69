package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

var (
	ErrIsNotAConstructor         = errors.New("provided function is not a recognizable constructor")
	ErrConstructorIsNotAFunction = errors.New("provided constructor is not a function")
	ErrDoublePointer             = errors.New("constructor function does not support double pointers")
	ErrNumericParam              = errors.New("third constructor parameter must be numeric")
	ErrArgument                  = errors.New("argument cannot be converted")
)

// Constructor describes a host function that builds a typed result from two
// pass-through values and a clamped numeric value.
type Constructor struct {
	Map1, Map2, Max reflect.Type
	Dst             reflect.Type
	PackageAlias    string
	Name            string
	HasErr          bool

	fn reflect.Value
}

// ParseConstructor inspects the provided function and returns a Constructor
// if it is a valid constructor function.
//
// Supports interfaces:
//   - func(map1 A, map2 B, max N) (dst T)
//   - func(map1 A, map2 B, max N) (dst T, error)
//
// N must be an integer or floating-point kind.
func ParseConstructor(fn any) (Constructor, error) {
	if fn == nil {
		return Constructor{}, ErrConstructorIsNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Constructor{}, ErrConstructorIsNotAFunction
	}

	if fnType.NumIn() != 3 || fnType.IsVariadic() || fnType.NumOut() == 0 {
		return Constructor{}, ErrIsNotAConstructor
	}

	for i := range fnType.NumIn() {
		if isDoublePointer(fnType.In(i)) {
			return Constructor{}, ErrDoublePointer
		}
	}

	if !isNumeric(fnType.In(2)) {
		return Constructor{}, ErrNumericParam
	}

	dst := fnType.Out(0)
	if isDoublePointer(dst) {
		return Constructor{}, ErrDoublePointer
	}

	alias, name := funcName(fnVal)

	ctor := Constructor{
		Map1:         fnType.In(0),
		Map2:         fnType.In(1),
		Max:          fnType.In(2),
		Dst:          dst,
		Name:         name,
		PackageAlias: alias,
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return Constructor{}, ErrIsNotAConstructor

	case 1:
		return ctor, nil

	case 2:
		if !isError(fnType.Out(1)) {
			return Constructor{}, ErrIsNotAConstructor
		}

		ctor.HasErr = true

		return ctor, nil
	}
}

// Call invokes the constructor, converting each value to the matching
// parameter type. A nil value becomes the parameter's zero value.
func (c Constructor) Call(map1, map2 any, max float64) (any, error) {
	if !c.fn.IsValid() {
		return nil, ErrIsNotAConstructor
	}

	a, err := convert(map1, c.Map1)
	if err != nil {
		return nil, fmt.Errorf("%s map1: %w", c.Name, err)
	}

	b, err := convert(map2, c.Map2)
	if err != nil {
		return nil, fmt.Errorf("%s map2: %w", c.Name, err)
	}

	n, err := convertNumber(max, c.Max)
	if err != nil {
		return nil, fmt.Errorf("%s max: %w", c.Name, err)
	}

	out := c.fn.Call([]reflect.Value{a, b, n})

	if c.HasErr && !isNil(out[1]) {
		return nil, fmt.Errorf("%s failed: %w", c.Name, out[1].Interface().(error))
	}

	return out[0].Interface(), nil
}

func convert(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	if n, ok := v.(json.Number); ok && isNumeric(t) {
		return convertJSONNumber(n, t)
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	if isNumeric(rv.Type()) && isNumeric(t) {
		return convertNumeric(rv, t)
	}

	if rv.Kind() == reflect.String && t.Kind() == reflect.String {
		return rv.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrArgument, rv.Type(), t)
}

func convertNumber(v float64, t reflect.Type) (reflect.Value, error) {
	return convertNumeric(reflect.ValueOf(v), t)
}

func convertJSONNumber(n json.Number, t reflect.Type) (reflect.Value, error) {
	if i, err := n.Int64(); err == nil {
		return convertNumeric(reflect.ValueOf(i), t)
	}

	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return convertNumeric(reflect.ValueOf(u), t)
	}

	f, err := n.Float64()
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %q to %s", ErrArgument, n, t)
	}

	return convertNumeric(reflect.ValueOf(f), t)
}

// convertNumeric converts between numeric kinds and fails instead of
// truncating, wrapping or overflowing.
func convertNumeric(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !fits(rv, t) {
		return reflect.Value{}, fmt.Errorf("%w: %v (%s) to %s", ErrArgument, rv.Interface(), rv.Type(), t)
	}

	return rv.Convert(t), nil
}

func fits(rv reflect.Value, t reflect.Type) bool {
	dst := reflect.Zero(t)

	switch {
	case isFloat(t):
		if isFloat(rv.Type()) {
			return !dst.OverflowFloat(rv.Float())
		}

		return true

	case isSigned(t):
		switch {
		case isFloat(rv.Type()):
			f := rv.Float()
			if !isWhole(f) || f < math.MinInt64 || f >= -math.MinInt64 {
				return false
			}

			return !dst.OverflowInt(int64(f))
		case isSigned(rv.Type()):
			return !dst.OverflowInt(rv.Int())
		default:
			u := rv.Uint()
			return u <= math.MaxInt64 && !dst.OverflowInt(int64(u))
		}

	default:
		switch {
		case isFloat(rv.Type()):
			f := rv.Float()
			if !isWhole(f) || f < 0 || f >= 2*(-math.MinInt64) {
				return false
			}

			return !dst.OverflowUint(uint64(f))
		case isSigned(rv.Type()):
			i := rv.Int()
			return i >= 0 && !dst.OverflowUint(uint64(i))
		default:
			return !dst.OverflowUint(rv.Uint())
		}
	}
}

func isWhole(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

func funcName(fnVal reflect.Value) (alias, name string) {
	fnPC := runtime.FuncForPC(fnVal.Pointer())
	if fnPC == nil {
		return "", ""
	}

	_, file := path.Split(fnPC.Name())

	pkg, fn, ok := strings.Cut(file, ".")
	if !ok {
		return "", file
	}

	return pkg, fn
}

func isNumeric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isFloat(t reflect.Type) bool {
	return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
}

func isSigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

func isDoublePointer(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Ptr
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	terr := reflect.TypeOf((*error)(nil)).Elem()

	return t.Implements(terr)
}
