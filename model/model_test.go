package model

import (
	"math"
	"testing"

	"github.com/llin-model/netprior/data"
	"github.com/llin-model/netprior/dist"
	"github.com/llin-model/netprior/mcmc"
)

func TestRetentionLikelihood(tst *testing.T) {
	m := NewRetention([]data.RetentionRecord{
		{Name: "StudyA", Year: 2000, RetentionRate: 0.8, FollowUpTime: 1},
	})
	if len(m.GetFloatParameters()) != 2 {
		tst.Error("Incorrect number of parameters:", len(m.GetFloatParameters()))
	}

	m.pi = 0.2
	m.sigma = 0.1
	// expected retention is exactly the observed rate
	expected := 0.5 * math.Log(100/(2*math.Pi))
	if math.Abs(m.Likelihood()-expected) > 1e-12 {
		tst.Error("Incorrect likelihood:", m.Likelihood())
	}

	// moving pi away from the data lowers the likelihood
	m.pi = 0.5
	if m.Likelihood() >= expected {
		tst.Error("Likelihood did not decrease:", m.Likelihood())
	}
}

func TestRetentionPriorSupport(tst *testing.T) {
	m := NewRetention(nil)
	pars := m.GetFloatParameters()
	pi := pars[0]
	pi.Set(1.5)
	if !math.IsInf(pi.Prior(), -1) {
		tst.Error("Expected -Inf prior outside (0, 1):", pi.Prior())
	}
	pi.Set(0.5)
	if math.IsInf(pi.Prior(), 0) {
		tst.Error("Expected finite prior inside (0, 1):", pi.Prior())
	}
}

func TestRetentionCopy(tst *testing.T) {
	m := NewRetention([]data.RetentionRecord{
		{RetentionRate: 0.8, FollowUpTime: 1},
	})
	m.pi = 0.25
	c := m.Copy().(*Retention)
	if c.pi != 0.25 || c.sigma != m.sigma {
		tst.Error("Copy lost parameter values:", c.pi, c.sigma)
	}
	c.GetFloatParameters()[0].Set(0.75)
	if m.pi != 0.25 {
		tst.Error("Copy shares state with the original")
	}
}

func TestAdminLikelihood(tst *testing.T) {
	m := NewAdmin([]data.AdminObs{
		{Key: data.Key{Country: "X", Year: 2005}, Obs: 1000, Truth: 1000, LogVar: 0.1},
	})
	if len(m.GetFloatParameters()) != 2 {
		tst.Error("Incorrect number of parameters:", len(m.GetFloatParameters()))
	}

	m.sigma = 0.1
	m.eps = 0
	tau := 1 / (0.1 + 0.01)
	expected := dist.NormalLogPDF(math.Log(1000), math.Log(1000), tau)
	if math.Abs(m.Likelihood()-expected) > 1e-12 {
		tst.Error("Incorrect likelihood:", m.Likelihood())
	}

	m.eps = 0.5
	if m.Likelihood() >= expected {
		tst.Error("Likelihood did not decrease:", m.Likelihood())
	}
}

func TestAdminAdaptive(tst *testing.T) {
	m := NewAdmin(nil)
	m.SetAdaptive(mcmc.NewAdaptiveSettings())
	pars := m.GetFloatParameters()
	if len(pars) != 2 {
		tst.Error("Incorrect number of parameters:", len(pars))
	}
	if _, ok := pars[0].(*mcmc.AdaptiveParameter); !ok {
		tst.Error("Expected adaptive parameters after SetAdaptive")
	}
}

func TestCoverageLikelihood(tst *testing.T) {
	m := NewCoverage([]data.CoverageObs{
		{
			Key:       data.Key{Country: "X", Year: 2005},
			Stock:     0.5,
			StockSE:   0.01,
			Uncovered: 0.4,
			SE:        0.05,
		},
	})
	pars := m.GetFloatParameters()
	if len(pars) != 3 {
		tst.Error("Incorrect number of parameters:", len(pars))
	}
	if pars[2].Name() != "stock_X_2005" {
		tst.Error("Incorrect latent parameter name:", pars[2].Name())
	}
	if m.stocks[0] != 0.5 {
		tst.Error("Latent stock does not start at the survey estimate:", m.stocks[0])
	}

	mu := 1./11 + (1-1./11)*math.Exp(-5*0.5)
	expected := dist.NormalLogPDF(0.4, mu, 1/(0.05*0.05))
	if math.Abs(m.Likelihood()-expected) > 1e-12 {
		tst.Error("Incorrect likelihood:", m.Likelihood())
	}
}

func TestCoverageEtaUnbounded(tst *testing.T) {
	m := NewCoverage(nil)
	eta := m.GetFloatParameters()[0]
	if !math.IsInf(eta.GetMin(), -1) {
		tst.Error("Decay rate should have no lower bound:", eta.GetMin())
	}
	eta.Set(-1)
	if math.IsInf(eta.Prior(), 0) {
		tst.Error("Expected finite prior for a negative decay rate:", eta.Prior())
	}
}

func TestCoverageCopy(tst *testing.T) {
	m := NewCoverage([]data.CoverageObs{
		{Key: data.Key{Country: "X", Year: 2005}, Stock: 0.5, StockSE: 0.01, Uncovered: 0.4, SE: 0.05},
	})
	m.eta = 4
	m.stocks[0] = 0.6
	c := m.Copy().(*Coverage)
	if c.eta != 4 || c.stocks[0] != 0.6 {
		tst.Error("Copy lost parameter values:", c.eta, c.stocks[0])
	}
	c.stocks[0] = 0.7
	if m.stocks[0] != 0.6 {
		tst.Error("Copy shares latent stocks with the original")
	}
}
