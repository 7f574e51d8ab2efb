// Package icemodel computes bulk thermodynamic-equilibrium properties of
// atmospheric water ice from vertical profiles of altitude, temperature,
// pressure, and water-vapor mixing ratio. At each level it partitions water
// between the gas and ice phases (assuming any supersaturation condenses
// instantly), recovers the frost-point temperature by inverting the
// saturation-vapor-pressure curve, and summarizes the detected ice layer
// with peak/top/bottom altitudes and a column-integrated ice water content.
// The model targets polar mesospheric clouds, so the layer scan is
// restricted to the 80-95 km band.
package icemodel

import (
	"errors"
	"fmt"
)

// Physical constants used by the equilibrium solver.
const (
	MolarMassH2O = 18.0  // molecular weight of water, g/mol
	IceDensity   = 0.93  // density of water ice, g/cm³
	GasConstant  = 8.314 // universal gas constant, J/(mol·K)
)

// ErrBadParameterization is returned when the saturation-vapor-pressure
// selector is not one of the three supported parameterizations.
var ErrBadParameterization = errors.New("icemodel: invalid saturation vapor pressure parameterization")

// Profile is a caller-supplied vertical profile. All four slices must have
// the same length and share level indices. Altitudes must be ordered but
// need not be uniformly spaced.
type Profile struct {
	Z   []float64 // altitude, km
	T   []float64 // temperature, K
	P   []float64 // pressure, mb
	H2O []float64 // water vapor mixing ratio, ppmv
}

func (p Profile) validate() error {
	nz := len(p.Z)
	if len(p.T) != nz || len(p.P) != nz || len(p.H2O) != nz {
		return fmt.Errorf("icemodel: profile slice lengths differ: z=%d t=%d p=%d h2o=%d",
			nz, len(p.T), len(p.P), len(p.H2O))
	}
	return nil
}

// Layer summarizes a detected ice layer. All fields are zero when no layer
// was found, which is a normal outcome rather than an error.
type Layer struct {
	ZTop float64 `json:"z_top"` // layer top altitude, km
	ZMax float64 `json:"z_max"` // altitude of peak ice mass density, km
	ZBot float64 `json:"z_bot"` // layer bottom altitude, km
	IWC  float64 `json:"iwc"`   // column ice abundance, µg/m² (= g/km³)
}

// Result holds the per-level derived quantities and the layer summary for
// one profile. The slices have the profile's length. Evaluated[i] reports
// whether level i was computed at all; levels with non-positive temperature
// or pressure are skipped and left at their zero values.
type Result struct {
	TIce      []float64 `json:"t_ice"`    // frost point temperature, K; 0 when outside the lookup table
	PIce      []float64 `json:"p_ice"`    // saturation vapor pressure over ice, mb
	SIce      []float64 `json:"s_ice"`    // saturation ratio with respect to ice
	H2OSat    []float64 `json:"h2o_sat"`  // saturation mixing ratio, ppmv
	VIce      []float64 `json:"v_ice"`    // ice volume density, µm³/cm³
	MIce      []float64 `json:"m_ice"`    // ice mass density, ng/m³
	H2OIce    []float64 `json:"h2o_ice"`  // gas-phase-equivalent H2O in ice, ppmv
	Evaluated []bool    `json:"evaluated"`
	Layer     Layer     `json:"layer"`
}

func newResult(nz int) *Result {
	return &Result{
		TIce:      make([]float64, nz),
		PIce:      make([]float64, nz),
		SIce:      make([]float64, nz),
		H2OSat:    make([]float64, nz),
		VIce:      make([]float64, nz),
		MIce:      make([]float64, nz),
		H2OIce:    make([]float64, nz),
		Evaluated: make([]bool, nz),
	}
}

type options struct {
	fixedDZ    float64
	useFixedDZ bool
}

// Option adjusts how Compute runs.
type Option func(*options)

// WithFixedDZ makes the layer column integration use a constant level
// spacing (km) instead of the per-level centered difference. A non-positive
// dz falls back to the spacing between the profile's first two levels.
func WithFixedDZ(dz float64) Option {
	return func(o *options) {
		o.fixedDZ = dz
		o.useFixedDZ = true
	}
}

// Compute runs the full equilibrium model over a profile. It returns
// ErrBadParameterization or a length-mismatch error before any computation;
// per-level anomalies (non-positive temperature or pressure, frost point
// outside the tabulated range) never fail the call and only leave the
// affected level at its zero defaults.
//
// Compute is pure: it keeps no state between calls and is safe to invoke
// concurrently from multiple goroutines.
func Compute(profile Profile, vp Parameterization, opts ...Option) (*Result, error) {
	if !vp.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadParameterization, vp)
	}
	if err := profile.validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	res := newResult(len(profile.Z))
	table := newSatTable(vp)

	for i := range profile.Z {
		// Levels with missing or non-physical ambient state stay at
		// their zero defaults and are excluded from the layer scan.
		if profile.T[i] <= 0 || profile.P[i] <= 0 {
			continue
		}
		solveLevel(res, profile, vp, i)

		// h2o partial pressure, mb (ppmv -> volume fraction is 1e-6)
		pH2O := profile.P[i] * profile.H2O[i] * 1e-6
		res.TIce[i] = table.frostPoint(pH2O)
	}

	res.Layer = summarizeLayer(profile.Z, res.MIce, o)
	return res, nil
}
