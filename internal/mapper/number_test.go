package mapper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5))
	assert.Equal(t, 0, Clamp(0))
	assert.Equal(t, 0, Clamp(-3))
	assert.Equal(t, int8(0), Clamp(int8(math.MinInt8)))
	assert.Equal(t, uint16(7), Clamp(uint16(7)))
	assert.InDelta(t, 0.25, Clamp(0.25), 0)
	assert.InDelta(t, 0.0, Clamp(-0.25), 0)
	assert.Equal(t, math.MaxInt64, Clamp(math.MaxInt64))
	assert.Equal(t, math.Inf(1), Clamp(math.Inf(1)))
	assert.Equal(t, 0.0, Clamp(math.Inf(-1)))
}

func TestClamp_NegativeZero(t *testing.T) {
	got := Clamp(math.Copysign(0, -1))

	assert.False(t, math.Signbit(got), "negative zero must clamp to positive zero")
}

func TestClamp_NaN(t *testing.T) {
	assert.True(t, math.IsNaN(Clamp(math.NaN())))
	assert.True(t, math.IsNaN(float64(Clamp(float32(math.NaN())))))
}

func TestClampChecked(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		policy  NaNPolicy
		want    float64
		wantErr error
	}{
		{name: "positive", value: 2, policy: NaNReject, want: 2},
		{name: "negative", value: -2, policy: NaNReject, want: 0},
		{name: "nan rejected", value: math.NaN(), policy: NaNReject, wantErr: ErrNaN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClampChecked(tt.value, tt.policy)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0)
		})
	}

	got, err := ClampChecked(math.NaN(), NaNPropagate)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))

	n, err := ClampChecked(-4, NaNReject)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestParseNaNPolicy(t *testing.T) {
	p, err := ParseNaNPolicy("")
	require.NoError(t, err)
	assert.Equal(t, NaNPropagate, p)

	p, err = ParseNaNPolicy(" Reject ")
	require.NoError(t, err)
	assert.Equal(t, NaNReject, p)
	assert.Equal(t, "reject", p.String())

	_, err = ParseNaNPolicy("drop")
	require.Error(t, err)

	assert.False(t, NaNPolicy(9).IsValid())
	assert.Equal(t, "NaNPolicy(9)", NaNPolicy(9).String())
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("typed")
	require.NoError(t, err)
	assert.Equal(t, StyleTyped, s)

	s, err = ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleStructural, s)
	assert.Equal(t, "structural", s.String())

	_, err = ParseStyle("json")
	require.Error(t, err)
}
