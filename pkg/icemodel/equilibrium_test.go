package icemodel

import (
	"math"
	"testing"
)

func approxEqual(got, want, relTol float64) bool {
	if want == 0 {
		return got == 0
	}
	return math.Abs(got-want)/math.Abs(want) <= relTol
}

func TestSolveLevelSupersaturated(t *testing.T) {
	// T=145 K, P=0.005 mb, h2o=10 ppmv under Murphy-Koop; expected
	// values computed independently from the published correlation.
	profile := Profile{
		Z:   []float64{85},
		T:   []float64{145},
		P:   []float64{0.005},
		H2O: []float64{10},
	}
	res := newResult(1)
	solveLevel(res, profile, MurphyKoop, 0)

	if !res.Evaluated[0] {
		t.Fatal("level not marked evaluated")
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"p_ice", res.PIce[0], 1.5072945336e-08},
		{"h2o_sat", res.H2OSat[0], 3.0145890672},
		{"s_ice", res.SIce[0], 3.317202},
		{"h2o_ice", res.H2OIce[0], 6.985411},
		{"v_ice", res.VIce[0], 5.607554e-02},
		{"m_ice", res.MIce[0], 5.215026e+01},
	}
	for _, tt := range tests {
		if !approxEqual(tt.got, tt.want, 1e-6) {
			t.Errorf("%s = %g, want %g", tt.name, tt.got, tt.want)
		}
	}

	// Volume and mass densities describe the same condensate, so their
	// ratio is fixed by the ice density.
	if !approxEqual(res.VIce[0], res.MIce[0]/(1e3*IceDensity), 1e-12) {
		t.Errorf("v_ice/m_ice inconsistent with ice density: %g vs %g", res.VIce[0], res.MIce[0])
	}
}

func TestSolveLevelSubsaturated(t *testing.T) {
	// A warm level holds all its water as vapor: saturation quantities
	// are computed but every ice quantity stays zero.
	profile := Profile{
		Z:   []float64{85},
		T:   []float64{200},
		P:   []float64{0.5},
		H2O: []float64{5},
	}
	res := newResult(1)
	solveLevel(res, profile, MurphyKoop, 0)

	if !res.Evaluated[0] {
		t.Fatal("level not marked evaluated")
	}
	if res.SIce[0] >= 1 {
		t.Fatalf("test level unexpectedly supersaturated: s_ice = %g", res.SIce[0])
	}
	if res.VIce[0] != 0 || res.MIce[0] != 0 || res.H2OIce[0] != 0 {
		t.Errorf("subsaturated level produced ice: v=%g m=%g h2o=%g",
			res.VIce[0], res.MIce[0], res.H2OIce[0])
	}
	if res.H2OSat[0] <= 0 {
		t.Errorf("h2o_sat = %g, want > 0", res.H2OSat[0])
	}
}

func TestComputeSkipsBadLevels(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		pres float64
	}{
		{"zero temperature", 0, 0.01},
		{"negative temperature", -5, 0.01},
		{"zero pressure", 150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(Profile{
				Z:   []float64{84, 85, 86},
				T:   []float64{145, tt.temp, 145},
				P:   []float64{0.006, tt.pres, 0.004},
				H2O: []float64{10, 10, 10},
			}, MurphyKoop)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}

			// The anomalous level is skipped in its entirety...
			if res.Evaluated[1] {
				t.Error("anomalous level marked evaluated")
			}
			if res.PIce[1] != 0 || res.H2OSat[1] != 0 || res.TIce[1] != 0 || res.MIce[1] != 0 {
				t.Error("anomalous level has nonzero outputs")
			}

			// ...without disturbing its neighbors.
			for _, i := range []int{0, 2} {
				if !res.Evaluated[i] {
					t.Errorf("level %d not evaluated", i)
				}
				if res.MIce[i] <= 0 {
					t.Errorf("level %d m_ice = %g, want > 0", i, res.MIce[i])
				}
			}
		})
	}
}
