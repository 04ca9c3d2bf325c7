// Package model provides the probabilistic models behind the empirical
// priors of the net stock-and-flow system.
package model

import (
	"github.com/op/go-logging"

	"github.com/llin-model/netprior/mcmc"
)

var log = logging.MustGetLogger("model")

// Model is an interface for a model. It allows adding parameters.
type Model interface {
	// addParameters adds all the parameters of the Model.
	addParameters(mcmc.FloatParameterGenerator)
}

// BaseModel keeps the parameter collection and adaptive settings shared
// by all the models.
type BaseModel struct {
	// Model is the model implementation.
	Model

	parameters mcmc.FloatParameters
	as         *mcmc.AdaptiveSettings
}

// GetFloatParameters returns all the sampling parameters.
func (m *BaseModel) GetFloatParameters() mcmc.FloatParameters {
	return m.parameters
}

// SetAdaptive enables adaptive mode (for adaptive MCMC).
func (m *BaseModel) SetAdaptive(as *mcmc.AdaptiveSettings) {
	m.as = as
	m.setupParameters()
}

// setupParameters first deletes all the parameters and then adds
// them. This is useful after setting adaptive MCMC mode or other
// changes in the parameters.
func (m *BaseModel) setupParameters() {
	m.parameters = nil
	var fpg mcmc.FloatParameterGenerator
	if m.as != nil {
		fpg = m.as.ParameterGenerator
	} else {
		fpg = mcmc.BasicFloatParameterGenerator
	}
	m.Model.addParameters(fpg)
}
