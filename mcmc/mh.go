package mcmc

import (
	"math"
	"math/rand"
)

// MH is a random-scan Metropolis-Hastings sampler.
type MH struct {
	BaseSampler
	// AccPeriod is the number of iterations between acceptance-rate
	// reports.
	AccPeriod int
	trace     *Trace
	burn      int
	thin      int
}

// NewMH creates a new MH sampler.
func NewMH() *MH {
	return &MH{
		BaseSampler: BaseSampler{
			repPeriod: 10,
		},
		AccPeriod: 10,
	}
}

// Sample runs burn-in followed by samples*thin iterations, recording
// every thin-th post-burn-in draw. It returns the posterior trace.
func (m *MH) Sample(burn, samples, thin int) *Trace {
	if thin < 1 {
		thin = 1
	}
	m.burn = burn
	m.thin = thin
	m.trace = NewTrace(m.parameters.Names(nil))
	m.Run(burn + samples*thin)
	return m.trace
}

// Run starts sampling.
func (m *MH) Run(iterations int) {
	m.l = m.Likelihood()
	m.calls++
	m.maxL = math.Inf(-1)
	m.PrintHeader()
	accepted := 0
Iter:
	for m.i = 0; m.i < iterations; m.i++ {
		if m.i > 0 && m.i%m.AccPeriod == 0 {
			log.Infof("Acceptance rate %.2f%%", 100*float64(accepted)/float64(m.AccPeriod))
			accepted = 0
		}
		if m.i%m.repPeriod == 0 {
			log.Debugf("%d: L=%f", m.i, m.l)
			m.PrintLine()
		}

		p := rand.Intn(len(m.parameters))
		par := m.parameters[p]
		par.Propose()
		newL := m.Likelihood()
		m.calls++

		a := math.Exp(par.Prior() - par.OldPrior() + newL - m.l)
		if a > 1 || rand.Float64() < a {
			m.l = newL
			par.Accept(m.i)
			accepted++
			if m.l > m.maxL {
				m.maxL = m.l
				m.maxLPar = m.parameters.Values(m.maxLPar)
			}
		} else {
			par.Reject()
		}

		if m.trace != nil && m.i >= m.burn && (m.i-m.burn)%m.thin == 0 {
			m.trace.record(m.parameters)
		}

		m.SaveCheckpoint(false)

		select {
		case s := <-m.sig:
			log.Warningf("Received signal %v, exiting.", s)
			m.interrupted = true
			break Iter
		default:
		}
	}
	log.Info("Finished sampling")
	// an interrupted chain must stay resumable
	m.SaveCheckpoint(!m.interrupted)
	m.PrintFinal()
}
