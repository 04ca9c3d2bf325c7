package mcmc

import (
	"math"
	"math/rand"
)

// AdaptiveParameter is a parameter with a proposal variance tuned
// during sampling using the Robbins-Monro algorithm.
type AdaptiveParameter struct {
	*BasicFloatParameter
	t    int
	loct int

	mean     float64
	variance float64
	delta    bool

	// batch accumulators
	bmean float64
	bm2   float64

	// convergence check
	vals      chan float64
	cmean     float64
	cm2       float64
	converged bool

	*AdaptiveSettings
}

// AdaptiveSettings are settings for adaptive MCMC.
type AdaptiveSettings struct {
	// WSize is the window size for the convergence check.
	WSize int
	// K specifies how often the proposal moments are updated.
	K int
	// Skip is the number of iterations to skip before starting
	// adaptation.
	Skip int
	// MaxAdapt is the iteration after which adaptation stops.
	MaxAdapt int
	// MaxUpdate is the maximum number of updates per parameter.
	MaxUpdate int
	// Epsilon is the stopping criterion for adaptation.
	Epsilon float64
	// C is a Robbins-Monro algorithm parameter.
	C float64
	// Nu is a Robbins-Monro algorithm parameter.
	Nu float64
	// Lambda is the proposal multiplier.
	Lambda float64
	// SD is the initial proposal standard deviation.
	SD float64
}

func square(x float64) float64 {
	return x * x
}

// NewAdaptiveSettings creates settings for adaptive MCMC.
func NewAdaptiveSettings() *AdaptiveSettings {
	return &AdaptiveSettings{
		WSize:     10,
		K:         20,
		Skip:      500,
		MaxAdapt:  2000,
		MaxUpdate: 200,
		Epsilon:   5e-1,
		C:         1,
		Nu:        3,
		Lambda:    2.4,
		SD:        1e-2,
	}
}

// ParameterGenerator generates an adaptive MCMC parameter.
func (as *AdaptiveSettings) ParameterGenerator(par *float64, name string) FloatParameter {
	return NewAdaptiveParameter(par, name, as)
}

// NewAdaptiveParameter creates a new adaptive MCMC parameter.
func NewAdaptiveParameter(par *float64, name string, as *AdaptiveSettings) *AdaptiveParameter {
	if as.SD <= 0 {
		panic("SD should be > 0")
	}
	if as.K < 2 {
		panic("K should be >= 2")
	}
	a := &AdaptiveParameter{
		BasicFloatParameter: NewBasicFloatParameter(par, name),
		AdaptiveSettings:    as,
	}
	a.mean = math.NaN()
	a.vals = make(chan float64, a.WSize)
	a.variance = square(a.SD)
	a.proposalFunc = a.adaptiveProposal()
	return a
}

// Accept updates the proposal moments when a value is accepted during
// the adaptation window.
func (a *AdaptiveParameter) Accept(iter int) {
	if iter >= a.Skip && iter < a.MaxAdapt {
		a.updateMu()
	}
}

// robbinsMonro computes the Robbins-Monro step size.
func (a *AdaptiveParameter) robbinsMonro() float64 {
	delta := a.bmean - a.mean
	if (delta > 0 && !a.delta) || (delta < 0 && a.delta) {
		a.loct++
	}
	a.delta = delta > 0
	beta := 1 / math.Max(1, 1+a.Nu)
	return a.C / math.Pow(float64(a.loct+1), beta)
}

// checkConvergence stops adaptation once the windowed mean stabilizes
// or the update budget is exhausted.
func (a *AdaptiveParameter) checkConvergence() {
	if len(a.vals) == a.WSize {
		oldVal := <-a.vals
		delta := oldVal - a.cmean
		a.cmean -= delta / float64(len(a.vals))
		a.cm2 -= delta * (oldVal - a.cmean)
	}

	a.vals <- *a.float64
	delta := *a.float64 - a.cmean
	a.cmean += delta / float64(len(a.vals))
	a.cm2 += delta * (*a.float64 - a.cmean)

	if len(a.vals) == a.WSize {
		variance := a.cm2 / float64(len(a.vals)-1)
		sd := math.Sqrt(variance)
		if sd/a.cmean < a.Epsilon || a.t/a.K > a.MaxUpdate {
			a.converged = true
			log.Infof("%s adaptation finished", a.Name())
		}
	}
}

// updateMu updates the proposal mean and variance.
func (a *AdaptiveParameter) updateMu() {
	if a.converged {
		return
	}
	if math.IsNaN(a.mean) {
		a.mean = *a.float64
	}
	// incremental batch mean and variance, index in batch 0 .. K-1
	bi := a.t % a.K

	if a.t > 0 && bi == 0 {
		gamma := a.robbinsMonro()
		bvariance := a.bm2 / float64(a.K-1)

		a.mean += gamma * (a.bmean - a.mean)
		a.variance += gamma * (bvariance - a.variance)

		a.checkConvergence()

		a.bmean = 0
		a.bm2 = 0
	}

	delta := *a.float64 - a.bmean
	a.bmean += delta / float64(bi+1)
	a.bm2 += delta * (*a.float64 - a.bmean)

	a.t++
}

// adaptiveProposal proposes a new point using the adapted variance.
func (a *AdaptiveParameter) adaptiveProposal() func(float64) float64 {
	return func(x float64) float64 {
		return x + rand.NormFloat64()*math.Sqrt(a.variance)*a.Lambda
	}
}
