package mcmc

import (
	"math"

	"github.com/llin-model/netprior/dist"
)

// FlatPrior returns an improper flat prior.
func FlatPrior() func(float64) float64 {
	return func(float64) float64 {
		return 0
	}
}

// NormalPrior returns the log-density of a Normal(mu, tau) prior in
// the precision parameterization.
func NormalPrior(mu, tau float64) func(float64) float64 {
	if tau <= 0 {
		panic("precision of normal prior must be > 0")
	}
	return func(x float64) float64 {
		return dist.NormalLogPDF(x, mu, tau)
	}
}

// UniformPrior returns the log-density of a uniform prior on
// [min, max].
func UniformPrior(min, max float64) func(float64) float64 {
	if min >= max {
		panic("min of uniform prior must be < max")
	}
	d := -math.Log(max - min)
	return func(x float64) float64 {
		if x < min || x > max {
			return math.Inf(-1)
		}
		return d
	}
}

// BetaPrior returns the log-density of a Beta(alpha, beta) prior on
// (0, 1).
func BetaPrior(alpha, beta float64) func(float64) float64 {
	if alpha <= 0 || beta <= 0 {
		panic("shape parameters of beta prior must be > 0")
	}
	lnB := dist.LnBeta(alpha, beta)
	return func(x float64) float64 {
		if x <= 0 || x >= 1 {
			return math.Inf(-1)
		}
		return (alpha-1)*math.Log(x) + (beta-1)*math.Log(1-x) - lnB
	}
}

// InverseGammaPrior returns the log-density of an
// InverseGamma(shape, scale) prior on positive values.
func InverseGammaPrior(shape, scale float64) func(float64) float64 {
	if shape <= 0 || scale <= 0 {
		panic("shape and scale of inverse gamma prior must be > 0")
	}
	g, _ := math.Lgamma(shape)
	return func(x float64) float64 {
		if x <= 0 {
			return math.Inf(-1)
		}
		return shape*math.Log(scale) - g - (shape+1)*math.Log(x) - scale/x
	}
}
