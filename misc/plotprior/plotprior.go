// Plotprior creates a density plot of a fitted beta prior from its
// JSON cache file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/llin-model/netprior/dist"
	"github.com/llin-model/netprior/priors"
)

func main() {
	in := flag.String("in", priors.RetenFile, "prior cache file")
	out := flag.String("out", "prior.png", "output plot file")
	n := flag.Int("n", 200, "number of grid points")
	flag.Parse()

	b, err := os.ReadFile(*in)
	if err != nil {
		panic(err)
	}
	prior := priors.Beta{}
	if err := json.Unmarshal(b, &prior); err != nil {
		panic(err)
	}
	fmt.Printf("Beta(alpha=%g, beta=%g), 95%% interval [%g, %g]\n",
		prior.Alpha, prior.Beta,
		dist.QuantileBeta(0.025, prior.Alpha, prior.Beta),
		dist.QuantileBeta(0.975, prior.Alpha, prior.Beta))

	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "density"

	lnB := dist.LnBeta(prior.Alpha, prior.Beta)
	pts := make(plotter.XYs, *n)
	for i := range pts {
		x := (float64(i) + 0.5) / float64(*n)
		pts[i].X = x
		pts[i].Y = math.Exp((prior.Alpha-1)*math.Log(x) +
			(prior.Beta-1)*math.Log(1-x) - lnB)
	}

	if err := plotutil.AddLinePoints(p, "density", pts); err != nil {
		panic(err)
	}
	if err := p.Save(4*vg.Inch, 4*vg.Inch, *out); err != nil {
		panic(err)
	}
}
