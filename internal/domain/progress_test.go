package domain

import (
	"math"
	"testing"
)

func TestComputeStrokeOffset(t *testing.T) {
	c := RingCircumference(DefaultRingRadius)

	tests := []struct {
		name      string
		remaining int
		initial   int
		want      float64
	}{
		{"full ring", 120, 120, 0},
		{"empty ring", 0, 120, c},
		{"half", 60, 120, c / 2},
		{"quarter left", 30, 120, c * 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStrokeOffset(tt.remaining, tt.initial, c)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeStrokeOffset(%d, %d) = %f, want %f", tt.remaining, tt.initial, got, tt.want)
			}
		})
	}
}

func TestRingCircumference(t *testing.T) {
	got := RingCircumference(16)
	if math.Abs(got-2*math.Pi*16) > 1e-9 {
		t.Errorf("RingCircumference(16) = %f", got)
	}
}

func TestProgressFraction(t *testing.T) {
	c := 100.0
	tests := []struct {
		offset float64
		want   float64
	}{
		{0, 1},
		{100, 0},
		{25, 0.75},
		{-10, 1},
		{150, 0},
	}
	for _, tt := range tests {
		if got := ProgressFraction(tt.offset, c); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ProgressFraction(%f) = %f, want %f", tt.offset, got, tt.want)
		}
	}
	if got := ProgressFraction(10, 0); got != 0 {
		t.Errorf("ProgressFraction with zero circumference = %f, want 0", got)
	}
}
