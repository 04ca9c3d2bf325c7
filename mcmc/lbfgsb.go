package mcmc

import (
	"math"

	lbfgsb "github.com/idavydov/go-lbfgsb"
)

// MAP searches for the posterior mode with L-BFGS-B. It is used to
// start chains close to the high-density region.
type MAP struct {
	BaseSampler
	dH   float64
	grad []float64
}

// NewMAP creates a new MAP optimizer.
func NewMAP() *MAP {
	return &MAP{
		BaseSampler: BaseSampler{
			repPeriod: 10,
		},
		dH: 1e-6,
	}
}

// Logger reports an optimization iteration.
func (m *MAP) Logger(info *lbfgsb.OptimizationIterationInformation) {
	m.i = info.Iteration
	m.parameters.SetValues(info.X)
	m.l = -info.F
	m.PrintLine()
}

// EvaluateFunction returns the negative log-posterior at a point.
func (m *MAP) EvaluateFunction(x []float64) float64 {
	if !m.parameters.ValuesInRange(x) {
		return math.Inf(+1)
	}
	m.parameters.SetValues(x)

	l := m.Likelihood() + m.parameters.PriorSum()
	m.calls++
	if l > m.maxL {
		m.maxL = l
		m.maxLPar = m.parameters.Values(m.maxLPar)
	}
	return -l
}

// EvaluateGradient computes the gradient of the negative log-posterior
// using central differences on a model copy.
func (m *MAP) EvaluateGradient(x []float64) (grad []float64) {
	if m.grad == nil {
		m.grad = make([]float64, len(x))
	}
	grad = m.grad
	for i := range x {
		no1 := m.Optimizable.Copy()
		par1 := no1.GetFloatParameters()
		par1.SetValues(x)
		par1[i].Set(x[i] - m.dH)
		l1 := -(no1.Likelihood() + par1.PriorSum())
		m.calls++

		no2 := no1.Copy()
		par2 := no2.GetFloatParameters()
		par2[i].Set(x[i] + m.dH)
		l2 := -(no2.Likelihood() + par2.PriorSum())
		m.calls++

		grad[i] = (l2 - l1) / 2 / m.dH
	}
	return
}

// Run searches for the posterior mode; iterations is ignored, L-BFGS-B
// runs to its own convergence criteria.
func (m *MAP) Run(iterations int) {
	m.maxL = math.Inf(-1)
	m.PrintHeader()

	bounds := make([][2]float64, len(m.parameters))
	for i, par := range m.parameters {
		bounds[i][0] = par.GetMin() + 1e-5
		bounds[i][1] = par.GetMax() - 1e-5
	}

	opt := new(lbfgsb.Lbfgsb)
	opt.SetApproximationSize(10)
	opt.SetFTolerance(1e-9)
	opt.SetGTolerance(1e-9)
	opt.SetBounds(bounds)
	opt.SetLogger(m.Logger)

	min, exitStatus := opt.Minimize(m, m.parameters.Values(nil))
	log.Infof("Exit status: %v", exitStatus)

	m.parameters.SetValues(min.X)
	m.l = -min.F
	log.Infof("Posterior mode lnP=%f", m.l)
	m.PrintFinal()
}
