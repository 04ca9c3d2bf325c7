package mcmc

import (
	"math"
	"testing"
)

func testTrace() *Trace {
	t := NewTrace([]string{"a", "b"})
	t.draws = [][]float64{
		{1, 2},
		{2, 4},
		{3, 6},
	}
	return t
}

func TestTraceSummary(tst *testing.T) {
	t := testTrace()
	if t.Len() != 3 {
		tst.Error("Incorrect trace length:", t.Len())
	}

	mean, err := t.Mean("a")
	if err != nil || math.Abs(mean-2) > 1e-12 {
		tst.Error("Incorrect mean:", mean, err)
	}
	v, err := t.Variance("a")
	if err != nil || math.Abs(v-1) > 1e-12 {
		tst.Error("Incorrect variance:", v, err)
	}
	sd, err := t.SD("b")
	if err != nil || math.Abs(sd-2) > 1e-12 {
		tst.Error("Incorrect standard deviation:", sd, err)
	}

	if _, err := t.Mean("nope"); err == nil {
		tst.Error("Expected error for unknown parameter")
	}
}

func TestTraceCovariance(tst *testing.T) {
	t := testTrace()
	c, err := t.Covariance()
	if err != nil {
		tst.Error("Error: ", err)
	}
	// var(a)=1, var(b)=4, cov(a,b)=2
	if math.Abs(c.At(0, 0)-1) > 1e-12 || math.Abs(c.At(1, 1)-4) > 1e-12 || math.Abs(c.At(0, 1)-2) > 1e-12 {
		tst.Error("Incorrect covariance matrix:", c)
	}

	r, err := t.Correlation("a", "b")
	if err != nil || math.Abs(r-1) > 1e-12 {
		tst.Error("Incorrect correlation:", r, err)
	}
}

func TestTraceEmpty(tst *testing.T) {
	t := NewTrace([]string{"a"})
	if _, err := t.Mean("a"); err == nil {
		tst.Error("Expected error for empty trace")
	}
	if _, err := t.Covariance(); err == nil {
		tst.Error("Expected error for empty trace covariance")
	}
}
