package mcmc

import (
	"math"
	"testing"
)

func TestNormalPriorDensity(tst *testing.T) {
	f := NormalPrior(0, 1)
	expected := -0.5 * math.Log(2*math.Pi)
	if math.Abs(f(0)-expected) > 1e-12 {
		tst.Error("Incorrect normal log-density:", f(0))
	}
	// precision 4 at one standard deviation
	f = NormalPrior(1, 4)
	expected = 0.5*math.Log(4/(2*math.Pi)) - 0.5
	if math.Abs(f(1.5)-expected) > 1e-12 {
		tst.Error("Incorrect normal log-density:", f(1.5))
	}
}

func TestUniformPriorDensity(tst *testing.T) {
	f := UniformPrior(0, 4)
	if math.Abs(f(1)+math.Log(4)) > 1e-12 {
		tst.Error("Incorrect uniform log-density:", f(1))
	}
	if !math.IsInf(f(5), -1) {
		tst.Error("Expected -Inf outside the support:", f(5))
	}
}

func TestBetaPriorDensity(tst *testing.T) {
	// Beta(1, 1) is uniform on (0, 1)
	f := BetaPrior(1, 1)
	if math.Abs(f(0.3)) > 1e-12 {
		tst.Error("Incorrect beta log-density:", f(0.3))
	}
	f = BetaPrior(1, 2)
	if math.Abs(f(0.25)-math.Log(1.5)) > 1e-12 {
		tst.Error("Incorrect beta log-density:", f(0.25))
	}
	if !math.IsInf(f(0), -1) || !math.IsInf(f(1), -1) {
		tst.Error("Expected -Inf on the support boundary")
	}
}

func TestInverseGammaPriorDensity(tst *testing.T) {
	// InverseGamma(1, 1) at x=1: -2*log(1) - 1 = -1
	f := InverseGammaPrior(1, 1)
	if math.Abs(f(1)+1) > 1e-12 {
		tst.Error("Incorrect inverse gamma log-density:", f(1))
	}
	if !math.IsInf(f(0), -1) || !math.IsInf(f(-1), -1) {
		tst.Error("Expected -Inf for non-positive values")
	}
}
