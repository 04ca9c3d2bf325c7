package mcmc

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// Trace stores posterior draws of all model parameters.
type Trace struct {
	names []string
	index map[string]int
	draws [][]float64
}

// NewTrace creates an empty trace for the given parameter names.
func NewTrace(names []string) *Trace {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return &Trace{
		names: names,
		index: index,
	}
}

// record appends the current parameter values to the trace.
func (t *Trace) record(p FloatParameters) {
	t.draws = append(t.draws, p.Values(nil))
}

// Len returns the number of recorded draws.
func (t *Trace) Len() int {
	return len(t.draws)
}

// Names returns the parameter names.
func (t *Trace) Names() []string {
	return t.names
}

func (t *Trace) column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("mcmc: no parameter %q in trace", name)
	}
	return i, nil
}

// Mean returns the posterior mean of a parameter.
func (t *Trace) Mean(name string) (float64, error) {
	i, err := t.column(name)
	if err != nil {
		return 0, err
	}
	if len(t.draws) == 0 {
		return 0, fmt.Errorf("mcmc: empty trace")
	}
	s := 0.0
	for _, d := range t.draws {
		s += d[i]
	}
	return s / float64(len(t.draws)), nil
}

// Variance returns the unbiased posterior variance of a parameter.
func (t *Trace) Variance(name string) (float64, error) {
	i, err := t.column(name)
	if err != nil {
		return 0, err
	}
	if len(t.draws) < 2 {
		return 0, fmt.Errorf("mcmc: not enough draws for variance")
	}
	mean, _ := t.Mean(name)
	s := 0.0
	for _, d := range t.draws {
		s += (d[i] - mean) * (d[i] - mean)
	}
	return s / float64(len(t.draws)-1), nil
}

// SD returns the posterior standard deviation of a parameter.
func (t *Trace) SD(name string) (float64, error) {
	v, err := t.Variance(name)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Covariance returns the sample covariance matrix of all parameters in
// trace order.
func (t *Trace) Covariance() (*mat64.Dense, error) {
	n := len(t.draws)
	np := len(t.names)
	if n < 2 {
		return nil, fmt.Errorf("mcmc: not enough draws for covariance")
	}

	means := make([]float64, np)
	for _, d := range t.draws {
		for j, v := range d {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}

	x := mat64.NewDense(n, np, nil)
	for i, d := range t.draws {
		for j, v := range d {
			x.Set(i, j, v-means[j])
		}
	}

	var c mat64.Dense
	c.Mul(x.T(), x)
	c.Scale(1/float64(n-1), &c)
	return &c, nil
}

// Correlation returns the posterior correlation of two parameters.
func (t *Trace) Correlation(a, b string) (float64, error) {
	i, err := t.column(a)
	if err != nil {
		return 0, err
	}
	j, err := t.column(b)
	if err != nil {
		return 0, err
	}
	c, err := t.Covariance()
	if err != nil {
		return 0, err
	}
	vi := c.At(i, i)
	vj := c.At(j, j)
	if vi <= 0 || vj <= 0 {
		return 0, fmt.Errorf("mcmc: zero variance for %q or %q", a, b)
	}
	return c.At(i, j) / math.Sqrt(vi*vj), nil
}
