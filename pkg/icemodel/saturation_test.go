package icemodel

import (
	"errors"
	"math"
	"testing"
)

func TestSaturationPressureKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		vp       Parameterization
		temp     float64
		expected float64
	}{
		{"Murphy-Koop at 150K", MurphyKoop, 150, 6.1061006510e-08},
		{"Murphy-Koop at 140K", MurphyKoop, 140, 3.3728248710e-09},
		{"Mauersberger-Krankowsky at 150K", MauersbergerKrankowsky, 150, 3.0666673307e-08},
		{"Marti-Mauersberger at 150K", MartiMauersberger, 150, 6.0331980375e-08},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SaturationPressure(tt.vp, tt.temp)
			if err != nil {
				t.Fatalf("SaturationPressure returned error: %v", err)
			}
			if math.Abs(got-tt.expected)/tt.expected > 1e-9 {
				t.Errorf("SaturationPressure(%v, %g) = %g, want %g", tt.vp, tt.temp, got, tt.expected)
			}
		})
	}
}

func TestSaturationPressureMonotonic(t *testing.T) {
	// Each parameterization must increase monotonically in temperature
	// over the full 50-1000 K table domain.
	for _, vp := range []Parameterization{MurphyKoop, MauersbergerKrankowsky, MartiMauersberger} {
		t.Run(vp.String(), func(t *testing.T) {
			prev := saturationPressure(vp, 50)
			for temp := 51.0; temp <= 1000; temp++ {
				cur := saturationPressure(vp, temp)
				if cur <= prev {
					t.Fatalf("saturation pressure not increasing at T=%g: %g <= %g", temp, cur, prev)
				}
				prev = cur
			}
		})
	}
}

func TestSaturationPressureInvalidSelector(t *testing.T) {
	for _, vp := range []Parameterization{0, 4, -1} {
		if _, err := SaturationPressure(vp, 150); !errors.Is(err, ErrBadParameterization) {
			t.Errorf("SaturationPressure(%d) error = %v, want ErrBadParameterization", vp, err)
		}
	}
}

func TestParameterizationValid(t *testing.T) {
	tests := []struct {
		vp       Parameterization
		expected bool
	}{
		{MurphyKoop, true},
		{MauersbergerKrankowsky, true},
		{MartiMauersberger, true},
		{0, false},
		{4, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := tt.vp.Valid(); got != tt.expected {
			t.Errorf("Parameterization(%d).Valid() = %v, want %v", tt.vp, got, tt.expected)
		}
	}
}
