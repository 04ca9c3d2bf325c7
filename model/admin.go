package model

import (
	"math"

	"github.com/llin-model/netprior/data"
	"github.com/llin-model/netprior/dist"
	"github.com/llin-model/netprior/mcmc"
)

// Admin models the mismatch between administrative LLIN counts and
// household-survey flow estimates on the log scale. eps is the
// systematic bias of the administrative counts and sigma the residual
// error on top of the survey sampling variance.
type Admin struct {
	*BaseModel
	observations []data.AdminObs

	sigma float64
	eps   float64
}

// NewAdmin creates a new administrative error model for a set of joined
// observations.
func NewAdmin(observations []data.AdminObs) (m *Admin) {
	m = &Admin{
		BaseModel:    &BaseModel{},
		observations: observations,
	}
	m.BaseModel.Model = m
	m.setupParameters()
	m.SetDefaults()
	log.Debugf("Admin error model with %d observations", len(observations))
	return
}

// Copy makes a copy of the model preserving the parameter values.
func (m *Admin) Copy() mcmc.Optimizable {
	newM := &Admin{
		BaseModel:    &BaseModel{as: m.as},
		observations: m.observations,
		sigma:        m.sigma,
		eps:          m.eps,
	}
	newM.BaseModel.Model = newM
	newM.setupParameters()
	return newM
}

func (m *Admin) addParameters(fpg mcmc.FloatParameterGenerator) {
	sigma := fpg(&m.sigma, "sigma")
	sigma.SetPriorFunc(mcmc.InverseGammaPrior(11, 1))
	sigma.SetProposalFunc(mcmc.NormalProposal(0.01))
	sigma.SetMin(0)

	eps := fpg(&m.eps, "eps")
	eps.SetPriorFunc(mcmc.NormalPrior(0, 1))
	eps.SetProposalFunc(mcmc.NormalProposal(0.02))

	m.parameters.Append(sigma)
	m.parameters.Append(eps)
}

// SetDefaults sets the default parameter values.
func (m *Admin) SetDefaults() {
	m.sigma = 0.1
	m.eps = 0
}

// GetParameters returns the residual error and the systematic bias.
func (m *Admin) GetParameters() (sigma, eps float64) {
	return m.sigma, m.eps
}

// Likelihood returns the log-likelihood of the administrative counts
// given the survey estimates.
func (m *Admin) Likelihood() (lnL float64) {
	s2 := m.sigma * m.sigma
	for _, o := range m.observations {
		tau := 1 / (o.LogVar + s2)
		lnL += dist.NormalLogPDF(math.Log(o.Obs), math.Log(o.Truth)+m.eps, tau)
	}
	return
}
