package icemodel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// The layer scan is restricted to the altitude band where polar mesospheric
// clouds occur. Column integration only counts levels within a short window
// below the peak so that a weak secondary maximum far from the dominant
// peak does not inflate the column.
const (
	layerBandBot = 80.0 // km, exclusive
	layerBandTop = 95.0 // km, exclusive
	iwcWindow    = 2.0  // km below the peak
)

// summarizeLayer scans the ice mass-density profile for a contiguous layer
// inside the 80-95 km band and returns its peak, extent, and column
// abundance. An all-zero Layer means no ice was found in the band.
func summarizeLayer(z, mIce []float64, o options) Layer {
	var k []int
	for i := range z {
		if z[i] > layerBandBot && z[i] < layerBandTop && mIce[i] > 0 {
			k = append(k, i)
		}
	}
	if len(k) == 0 {
		return Layer{}
	}

	// Peak mass density; ties go to the lowest index.
	peak := k[0]
	for _, i := range k[1:] {
		if mIce[i] > mIce[peak] {
			peak = i
		}
	}

	zk := make([]float64, len(k))
	for j, i := range k {
		zk[j] = z[i]
	}

	lay := Layer{
		ZMax: z[peak],
		ZTop: floats.Max(zk),
		ZBot: floats.Min(zk),
	}

	for _, i := range k {
		if z[i] <= lay.ZMax-iwcWindow {
			continue
		}
		dz := levelSpacing(z, i, o)
		lay.IWC += mIce[i] * dz // µg/m² = g/km³
	}
	return lay
}

// levelSpacing returns the altitude spacing (km) attributed to level i for
// column integration: the caller's fixed spacing when one was requested,
// otherwise the local centered difference, degrading to a one-sided
// difference at the profile ends.
func levelSpacing(z []float64, i int, o options) float64 {
	if o.useFixedDZ {
		if o.fixedDZ > 0 {
			return o.fixedDZ
		}
		if len(z) > 1 {
			return math.Abs(z[1] - z[0])
		}
		return 0
	}
	switch {
	case len(z) < 2:
		return 0
	case i == 0:
		return math.Abs(z[1] - z[0])
	case i == len(z)-1:
		return math.Abs(z[i] - z[i-1])
	default:
		return math.Abs(z[i+1]-z[i-1]) / 2
	}
}
