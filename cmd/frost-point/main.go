// Command frost-point computes the saturation state and frost point for a
// single atmospheric point.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nlcsci/pmcice/pkg/icemodel"
)

func main() {
	var (
		temp     float64
		pressure float64
		h2o      float64
		vpo      int
	)
	flag.Float64Var(&temp, "temp", 145, "ambient temperature (K)")
	flag.Float64Var(&pressure, "pressure", 0.005, "ambient pressure (mb)")
	flag.Float64Var(&h2o, "h2o", 5, "water vapor mixing ratio (ppmv)")
	flag.IntVar(&vpo, "vpo", 1, "saturation vapor pressure parameterization: 1=Murphy-Koop, 2=Mauersberger-Krankowsky, 3=Marti-Mauersberger")
	flag.Parse()

	res, err := icemodel.Compute(icemodel.Profile{
		Z:   []float64{0},
		T:   []float64{temp},
		P:   []float64{pressure},
		H2O: []float64{h2o},
	}, icemodel.Parameterization(vpo))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !res.Evaluated[0] {
		fmt.Fprintln(os.Stderr, "Error: temperature and pressure must be positive")
		os.Exit(1)
	}

	fmt.Printf("Saturation over ice (%s)\n", icemodel.Parameterization(vpo))
	fmt.Printf("  T:            %.2f K\n", temp)
	fmt.Printf("  P:            %g mb\n", pressure)
	fmt.Printf("  H2O:          %g ppmv\n", h2o)
	fmt.Printf("  p_ice:        %.4g mb\n", res.PIce[0])
	fmt.Printf("  h2o_sat:      %.4g ppmv\n", res.H2OSat[0])
	fmt.Printf("  s_ice:        %.4f\n", res.SIce[0])
	if res.TIce[0] > 0 {
		fmt.Printf("  frost point:  %.2f K\n", res.TIce[0])
	} else {
		fmt.Printf("  frost point:  outside tabulated range\n")
	}
	if res.MIce[0] > 0 {
		fmt.Printf("  m_ice:        %.4g ng/m3\n", res.MIce[0])
		fmt.Printf("  v_ice:        %.4g um3/cm3\n", res.VIce[0])
		fmt.Printf("  h2o_ice:      %.4g ppmv\n", res.H2OIce[0])
	}
}
