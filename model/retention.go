package model

import (
	"math"

	"github.com/llin-model/netprior/data"
	"github.com/llin-model/netprior/dist"
	"github.com/llin-model/netprior/mcmc"
)

// Retention models net-retention study results. A constant annual
// discard rate pi implies the expected retention (1-pi)^T after T years
// of follow-up; observed rates scatter around that curve with residual
// standard deviation sigma.
type Retention struct {
	*BaseModel
	studies []data.RetentionRecord

	pi    float64
	sigma float64
}

// NewRetention creates a new retention model for a set of studies.
func NewRetention(studies []data.RetentionRecord) (m *Retention) {
	m = &Retention{
		BaseModel: &BaseModel{},
		studies:   studies,
	}
	m.BaseModel.Model = m
	m.setupParameters()
	m.SetDefaults()
	log.Debugf("Retention model with %d studies", len(studies))
	return
}

// Copy makes a copy of the model preserving the parameter values.
func (m *Retention) Copy() mcmc.Optimizable {
	newM := &Retention{
		BaseModel: &BaseModel{as: m.as},
		studies:   m.studies,
		pi:        m.pi,
		sigma:     m.sigma,
	}
	newM.BaseModel.Model = newM
	newM.setupParameters()
	return newM
}

func (m *Retention) addParameters(fpg mcmc.FloatParameterGenerator) {
	pi := fpg(&m.pi, "pi")
	pi.SetPriorFunc(mcmc.BetaPrior(1, 2))
	pi.SetProposalFunc(mcmc.NormalProposal(0.02))
	pi.SetMin(0)
	pi.SetMax(1)

	sigma := fpg(&m.sigma, "sigma")
	sigma.SetPriorFunc(mcmc.InverseGammaPrior(11, 1))
	sigma.SetProposalFunc(mcmc.NormalProposal(0.01))
	sigma.SetMin(0)

	m.parameters.Append(pi)
	m.parameters.Append(sigma)
}

// SetDefaults sets the default parameter values.
func (m *Retention) SetDefaults() {
	m.pi = 1. / 3
	m.sigma = 0.1
}

// GetParameters returns the discard rate and the residual standard
// deviation.
func (m *Retention) GetParameters() (pi, sigma float64) {
	return m.pi, m.sigma
}

// Likelihood returns the log-likelihood of the retention studies.
func (m *Retention) Likelihood() (lnL float64) {
	tau := 1 / (m.sigma * m.sigma)
	for _, s := range m.studies {
		expected := math.Pow(1-m.pi, s.FollowUpTime)
		lnL += dist.NormalLogPDF(s.RetentionRate, expected, tau)
	}
	return
}
