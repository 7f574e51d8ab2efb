package icemodel

import "math"

// Parameterization selects the saturation-vapor-pressure-over-ice
// correlation. The numeric values are part of the external interface
// (they appear in configs and API requests).
type Parameterization int

const (
	// MurphyKoop is Murphy & Koop [2005], very close to Marti &
	// Mauersberger over the range of interest.
	MurphyKoop Parameterization = 1
	// MauersbergerKrankowsky is Mauersberger & Krankowsky [2003],
	// using their expression for T < 169 K.
	MauersbergerKrankowsky Parameterization = 2
	// MartiMauersberger is Marti & Mauersberger [1993].
	MartiMauersberger Parameterization = 3
)

// Valid reports whether vp is a supported parameterization.
func (vp Parameterization) Valid() bool {
	return vp == MurphyKoop || vp == MauersbergerKrankowsky || vp == MartiMauersberger
}

func (vp Parameterization) String() string {
	switch vp {
	case MurphyKoop:
		return "Murphy-Koop-2005"
	case MauersbergerKrankowsky:
		return "Mauersberger-Krankowsky-2003"
	case MartiMauersberger:
		return "Marti-Mauersberger-1993"
	default:
		return "invalid"
	}
}

// SaturationPressure returns the saturation vapor pressure over ice (mb)
// at temperature t (K) for the selected parameterization. It returns
// ErrBadParameterization for an unsupported selector.
func SaturationPressure(vp Parameterization, t float64) (float64, error) {
	if !vp.Valid() {
		return 0, ErrBadParameterization
	}
	return saturationPressure(vp, t), nil
}

// saturationPressure evaluates the correlation for a selector already known
// to be valid. The underlying correlations yield Pascals; the 0.01 factor
// converts to millibars and must not be folded into the other coefficients.
func saturationPressure(vp Parameterization, t float64) float64 {
	switch vp {
	case MurphyKoop:
		return 0.01 * math.Exp(9.550426-5723.265/t+3.53068*math.Log(t)-0.00728332*t)
	case MauersbergerKrankowsky:
		return 0.01 * math.Pow(10, 14.88-3059.0/t)
	default: // MartiMauersberger
		return 0.01 * math.Exp(28.868-6132.935/t)
	}
}
