package model

import (
	"math"

	"github.com/llin-model/netprior/data"
	"github.com/llin-model/netprior/dist"
	"github.com/llin-model/netprior/mcmc"
)

// Coverage models the fraction of households without a net as a
// function of nets per capita. A fraction zeta of households never
// obtains nets; among the rest the zero fraction decays exponentially
// with the per-capita stock at rate eta. The true stock of every
// country-year is a latent parameter constrained by its survey
// estimate.
type Coverage struct {
	*BaseModel
	observations []data.CoverageObs

	eta    float64
	zeta   float64
	stocks []float64
}

// NewCoverage creates a new coverage model for a set of joined
// observations.
func NewCoverage(observations []data.CoverageObs) (m *Coverage) {
	m = &Coverage{
		BaseModel:    &BaseModel{},
		observations: observations,
		stocks:       make([]float64, len(observations)),
	}
	m.BaseModel.Model = m
	m.setupParameters()
	m.SetDefaults()
	log.Debugf("Coverage model with %d observations", len(observations))
	return
}

// Copy makes a copy of the model preserving the parameter values.
func (m *Coverage) Copy() mcmc.Optimizable {
	newM := &Coverage{
		BaseModel:    &BaseModel{as: m.as},
		observations: m.observations,
		eta:          m.eta,
		zeta:         m.zeta,
		stocks:       make([]float64, len(m.stocks)),
	}
	copy(newM.stocks, m.stocks)
	newM.BaseModel.Model = newM
	newM.setupParameters()
	return newM
}

func (m *Coverage) addParameters(fpg mcmc.FloatParameterGenerator) {
	eta := fpg(&m.eta, "eta")
	eta.SetPriorFunc(mcmc.NormalPrior(5, 3))
	eta.SetProposalFunc(mcmc.NormalProposal(0.05))

	zeta := fpg(&m.zeta, "zeta")
	zeta.SetPriorFunc(mcmc.BetaPrior(1, 10))
	zeta.SetProposalFunc(mcmc.UniformProposal(0.05))
	zeta.SetMin(0)
	zeta.SetMax(1)

	m.parameters.Append(eta)
	m.parameters.Append(zeta)

	for i, o := range m.observations {
		tau := 1 / (o.StockSE * o.StockSE)
		stock := fpg(&m.stocks[i], "stock_"+o.Key.String())
		stock.SetPriorFunc(mcmc.NormalPrior(o.Stock, tau))
		stock.SetProposalFunc(mcmc.NormalProposal(o.StockSE / 2))
		stock.SetMin(0)
		m.parameters.Append(stock)
	}
}

// SetDefaults sets the default parameter values. Latent stocks start at
// their survey estimates.
func (m *Coverage) SetDefaults() {
	m.eta = 5
	m.zeta = 1. / 11
	for i, o := range m.observations {
		m.stocks[i] = o.Stock
	}
}

// GetParameters returns the decay rate and the zero-inflation fraction.
func (m *Coverage) GetParameters() (eta, zeta float64) {
	return m.eta, m.zeta
}

// Likelihood returns the log-likelihood of the observed zero-coverage
// fractions.
func (m *Coverage) Likelihood() (lnL float64) {
	for i, o := range m.observations {
		mu := m.zeta + (1-m.zeta)*math.Exp(-m.eta*m.stocks[i])
		tau := 1 / (o.SE * o.SE)
		lnL += dist.NormalLogPDF(o.Uncovered, mu, tau)
	}
	return
}
