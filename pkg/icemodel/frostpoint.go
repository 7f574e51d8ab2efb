package icemodel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// The frost-point lookup table spans 50-947 K in 3 K steps. The range is
// deliberately far wider than mesospheric temperatures so that realistic
// partial pressures never clip against the table edges; this extrapolates
// the correlations outside their calibrated range, which is a documented
// approximation of the model rather than a defect.
const (
	tableLen   = 300
	tableTMin  = 50.0 // K
	tableTStep = 3.0  // K
)

// satTable is a dense saturation-pressure-vs-temperature table for one
// parameterization. It is built once per Compute call and read-only
// afterwards.
type satTable struct {
	t    []float64
	p    []float64
	pMin float64
	pMax float64
}

func newSatTable(vp Parameterization) *satTable {
	st := &satTable{
		t: make([]float64, tableLen),
		p: make([]float64, tableLen),
	}
	for k := range st.t {
		st.t[k] = tableTMin + tableTStep*float64(k)
		st.p[k] = saturationPressure(vp, st.t[k])
	}
	st.pMin = floats.Min(st.p)
	st.pMax = floats.Max(st.p)
	return st
}

// frostPoint returns the temperature (K) at which pH2O (mb) would be
// exactly saturating, found by interpolating the table linearly in
// (1/T, log10 P) space, the natural linearization of a
// Clausius-Clapeyron-type curve. It returns 0 when pH2O falls outside the
// tabulated pressure range or a bracketing bound is missing; the frost
// point is then reported as unavailable, not as an error.
func (st *satTable) frostPoint(pH2O float64) float64 {
	var p1, t1, p2, t2 float64

	// Tightest table entry strictly below pH2O.
	for k := len(st.p) - 1; k >= 0; k-- {
		if st.p[k] < pH2O {
			p1, t1 = st.p[k], st.t[k]
			break
		}
	}

	// Tightest table entry at or above pH2O.
	for k := range st.p {
		if st.p[k] >= pH2O {
			p2, t2 = st.p[k], st.t[k]
			break
		}
	}

	if pH2O < st.pMin || pH2O > st.pMax || p1 <= 0 || p2 <= 0 {
		return 0
	}
	if p1 == p2 {
		// Degenerate bracket; both bounds name the same table entry.
		return t1
	}

	frac := (math.Log10(p2) - math.Log10(pH2O)) / (math.Log10(p2) - math.Log10(p1))
	return 1 / (1/t2 - frac*(1/t2-1/t1))
}
