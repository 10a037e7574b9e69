package mapper

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrNaN is returned when a NaN numeric value is rejected.
var ErrNaN = errors.New("numeric value is NaN")

// Number is any integer or floating-point type a source record may expose.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NaNPolicy decides what clamping does with a NaN numeric value.
type NaNPolicy int

const (
	// NaNPropagate passes NaN through unchanged.
	NaNPropagate NaNPolicy = iota
	// NaNReject fails the element with ErrNaN.
	NaNReject
)

// String returns the profile name of the policy.
func (p NaNPolicy) String() string {
	switch p {
	case NaNPropagate:
		return "propagate"
	case NaNReject:
		return "reject"
	default:
		return fmt.Sprintf("NaNPolicy(%d)", int(p))
	}
}

// IsValid returns true if the policy is a recognized value.
func (p NaNPolicy) IsValid() bool {
	return p == NaNPropagate || p == NaNReject
}

// ParseNaNPolicy parses a policy name. The empty string means NaNPropagate.
func ParseNaNPolicy(s string) (NaNPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "propagate":
		return NaNPropagate, nil
	case "reject":
		return NaNReject, nil
	default:
		return NaNPropagate, fmt.Errorf("unknown NaN policy %q", s)
	}
}

// Clamp returns the greater of v and zero.
//
// Negative zero clamps to positive zero. NaN is returned unchanged.
func Clamp[N Number](v N) N {
	if v <= 0 {
		return 0
	}

	return v
}

// ClampChecked clamps v according to policy.
func ClampChecked[N Number](v N, policy NaNPolicy) (N, error) {
	if policy == NaNReject && IsNaN(v) {
		return v, ErrNaN
	}

	return Clamp(v), nil
}

// IsNaN reports whether v is a floating-point NaN. Integers never are.
func IsNaN[N Number](v N) bool {
	return math.IsNaN(float64(v))
}
