package icemodel

// solveLevel computes the equilibrium gas/ice partitioning for one level.
// The caller has already checked that T[i] and P[i] are positive. The
// calculation is level-local: no state is carried between levels.
func solveLevel(res *Result, profile Profile, vp Parameterization, i int) {
	t := profile.T[i]
	p := profile.P[i]
	h2o := profile.H2O[i]

	pIce := saturationPressure(vp, t)
	h2oSat := 1e6 * pIce / p // saturation mixing ratio, ppmv

	res.PIce[i] = pIce
	res.H2OSat[i] = h2oSat
	res.SIce[i] = h2o / h2oSat
	res.Evaluated[i] = true

	// Excess vapor beyond saturation, ppmv. If the level is supersaturated
	// the full excess is assumed to condense instantly (bulk equilibrium,
	// no growth kinetics).
	qXS := h2o - h2oSat
	if qXS <= 0 {
		return
	}

	// Excess moles of H2O per m³ of air. The 1e2 converts mb to Pa and
	// the 1e-6 converts ppmv to a volume fraction.
	nXS := p * 1e2 * qXS * 1e-6 / (GasConstant * t)

	res.VIce[i] = 1e6 * nXS * MolarMassH2O / IceDensity // µm³/cm³
	res.MIce[i] = 1e9 * nXS * MolarMassH2O              // ng/m³
	res.H2OIce[i] = qXS
}
