package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTenth(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"zero", 0, 0},
		{"just below half", 4.449999, 4.4},
		{"half rounds up", 4.45, 4.5},
		{"round-up", 3.75, 3.8},
		{"round-down", 2.74, 2.7},
		{"exact", 4.5, 4.5},
		{"repeating", 11.0 / 3.0, 3.7},
		{"negative half rounds up", -4.45, -4.4},
		{"negative below half", -4.46, -4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundTenth(tt.value), 1e-9)
		})
	}
}

func TestMean(t *testing.T) {
	assert.Nil(t, Mean(0, 0))
	assert.Nil(t, Mean(10, 0))

	tests := []struct {
		sum, n int64
		want   float64
	}{
		{11, 3, 3.7},
		{89, 20, 4.5}, // 4.45 exactly
		{9, 2, 4.5},
		{13, 3, 4.3},
		{5, 1, 5},
		{-89, 20, -4.4}, // -4.45 ties toward positive infinity
		{-91, 20, -4.5},
		{89, -20, -4.4},
		{1, 20, 0.1}, // 0.05
		{-1, 20, 0},
	}
	for _, tt := range tests {
		got := Mean(tt.sum, tt.n)
		require.NotNil(t, got)
		assert.InDelta(t, tt.want, *got, 1e-9, "Mean(%d, %d)", tt.sum, tt.n)
	}
}

func FuzzMeanWithinRange(f *testing.F) {
	f.Add(int64(11), int64(3))
	f.Add(int64(0), int64(1))
	f.Fuzz(func(t *testing.T, sum, n int64) {
		if n <= 0 || n > 1_000_000 || sum < 0 || sum > 5*n {
			return
		}
		got := Mean(sum, n)
		if got == nil {
			t.Fatalf("Mean(%d, %d) = nil", sum, n)
		}
		if *got < 0 || *got > 5 {
			t.Fatalf("Mean(%d, %d) = %v, outside [0,5]", sum, n, *got)
		}
	})
}
