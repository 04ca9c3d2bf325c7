// Package priors estimates empirical prior distributions for the net
// stock-and-flow model. Every estimator fits a small Bayesian model to
// the input tables by MCMC, summarizes the posterior by moment
// matching, and caches the result as JSON.
package priors

import (
	"fmt"
	"math"
	"os"
	"syscall"

	"github.com/op/go-logging"
	bolt "go.etcd.io/bbolt"

	"github.com/llin-model/netprior/checkpoint"
	"github.com/llin-model/netprior/data"
	"github.com/llin-model/netprior/dist"
	"github.com/llin-model/netprior/mcmc"
	"github.com/llin-model/netprior/model"
)

var log = logging.MustGetLogger("priors")

// Default chain dimensions.
const (
	DefaultBurn    = 20000
	DefaultSamples = 10000
	DefaultThin    = 20
)

// Cache file names.
const (
	RetenFile = "emp_prior_reten.json"
	AdminFile = "emp_prior_admin.json"
	CovFile   = "emp_prior_cov.json"
)

// Beta is a beta distribution fitted to a posterior.
type Beta struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Normal is a normal distribution fitted to a posterior. Tau is the
// precision.
type Normal struct {
	Mu  float64 `json:"mu"`
	Tau float64 `json:"tau"`
}

// AdminPrior summarizes the administrative error and bias posterior.
type AdminPrior struct {
	Sigma Normal `json:"sigma"`
	Eps   Normal `json:"eps"`
}

// CoveragePrior summarizes the coverage and zero-inflation posterior.
type CoveragePrior struct {
	Eta  Normal `json:"eta"`
	Zeta Normal `json:"zeta"`
}

// NormalFromMoments matches a normal distribution to a posterior mean
// and variance.
func NormalFromMoments(mean, variance float64) (Normal, error) {
	if variance <= 0 || math.IsNaN(mean) || math.IsNaN(variance) {
		return Normal{}, fmt.Errorf("%w: mean=%v, variance=%v",
			ErrDegeneratePosterior, mean, variance)
	}
	return Normal{Mu: mean, Tau: 1 / variance}, nil
}

// Fitter estimates the empirical priors. Fitted priors are cached in
// Path; the estimators only sample when the cache is missing or
// recomputation is requested.
type Fitter struct {
	// Path is the directory for the JSON cache files.
	Path string
	// Data holds the input tables.
	Data *data.Set

	// Chain dimensions.
	Burn    int
	Samples int
	Thin    int

	// Quiet disables the trajectory output.
	Quiet bool
	// Adaptive enables adaptive MCMC with the given settings.
	Adaptive *mcmc.AdaptiveSettings
	// MAPStart starts chains from the posterior mode.
	MAPStart bool
	// Randomize starts chains from a random point.
	Randomize bool

	// DB is an optional checkpoint store.
	DB *bolt.DB
	// CheckpointSeconds is the minimum time between checkpoints.
	CheckpointSeconds float64

	// SamplerRuns counts the chains actually run.
	SamplerRuns int
}

// NewFitter creates a Fitter with the default chain dimensions.
func NewFitter(d *data.Set, path string) *Fitter {
	return &Fitter{
		Path:              path,
		Data:              d,
		Burn:              DefaultBurn,
		Samples:           DefaultSamples,
		Thin:              DefaultThin,
		CheckpointSeconds: 30,
	}
}

// sampleModel is a model the fitter can run a chain on.
type sampleModel interface {
	mcmc.Optimizable
	SetAdaptive(*mcmc.AdaptiveSettings)
}

// sample runs one MCMC chain and returns the posterior trace. The key
// identifies the chain in the checkpoint store.
func (f *Fitter) sample(m sampleModel, key string) (*mcmc.Trace, error) {
	if f.Adaptive != nil {
		m.SetAdaptive(f.Adaptive)
	}
	if f.Randomize {
		log.Info("Using random starting point")
		pars := m.GetFloatParameters()
		pars.Randomize()
	}
	if f.MAPStart {
		log.Info("Starting from the posterior mode")
		mode := mcmc.NewMAP()
		mode.Quiet = f.Quiet
		mode.SetOptimizable(m)
		mode.Run(0)
	}

	mh := mcmc.NewMH()
	mh.Quiet = f.Quiet
	mh.SetOptimizable(m)
	mh.SetReportPeriod(1000)
	mh.AccPeriod = 1000

	if f.DB != nil {
		cio := checkpoint.NewCheckpointIO(f.DB, []byte(key), f.CheckpointSeconds)
		cp, err := cio.Load()
		if err != nil {
			return nil, fmt.Errorf("loading checkpoint: %w", err)
		}
		if cp != nil && !cp.Final {
			log.Infof("Restarting chain %s from iteration %d", key, cp.Iter)
			pars := m.GetFloatParameters()
			pars.SetFromMap(cp.Parameters)
		}
		cio.SetNow()
		mh.SetCheckpointIO(cio)
	}

	mh.WatchSignals(os.Interrupt, syscall.SIGTERM)

	f.SamplerRuns++
	trace := mh.Sample(f.Burn, f.Samples, f.Thin)
	if mh.Interrupted() {
		return nil, ErrInterrupted
	}
	return trace, nil
}

// normalFromTrace matches a normal distribution to the posterior of one
// parameter.
func (f *Fitter) normalFromTrace(trace *mcmc.Trace, name string) (Normal, error) {
	mean, err := trace.Mean(name)
	if err != nil {
		return Normal{}, err
	}
	variance, err := trace.Variance(name)
	if err != nil {
		return Normal{}, err
	}
	n, err := NormalFromMoments(mean, variance)
	if err != nil {
		return Normal{}, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// DiscardRate estimates the prior of the annual net discard rate from
// retention studies. The posterior of the rate is summarized as a beta
// distribution by moment matching. A cached result is returned unless
// recompute is set.
func (f *Fitter) DiscardRate(recompute bool) (*Beta, error) {
	prior := &Beta{}
	if !recompute {
		ok, err := f.loadCache(RetenFile, prior)
		if err != nil {
			return nil, err
		}
		if ok {
			return prior, nil
		}
	}

	if len(f.Data.Retention) == 0 {
		return nil, fmt.Errorf("discard rate: %w", ErrInsufficientData)
	}

	log.Infof("Fitting discard rate to %d retention studies", len(f.Data.Retention))
	m := model.NewRetention(f.Data.Retention)
	trace, err := f.sample(m, "reten")
	if err != nil {
		return nil, err
	}

	mean, err := trace.Mean("pi")
	if err != nil {
		return nil, err
	}
	variance, err := trace.Variance("pi")
	if err != nil {
		return nil, err
	}
	alpha, beta, err := dist.BetaFromMoments(mean, variance)
	if err != nil {
		return nil, fmt.Errorf("discard rate (mean=%v, variance=%v): %w",
			mean, variance, ErrDegeneratePosterior)
	}
	prior.Alpha, prior.Beta = alpha, beta

	log.Infof("Discard rate ~ Beta(%f, %f), 95%% interval [%f, %f]",
		alpha, beta,
		dist.QuantileBeta(0.025, alpha, beta),
		dist.QuantileBeta(0.975, alpha, beta))

	if err := f.storeCache(RetenFile, prior); err != nil {
		return nil, err
	}
	return prior, nil
}

// AdminErrBias estimates the priors of the administrative reporting
// error and bias. The discard rate prior is needed to project survey
// flows back to the distribution year and is computed first if not
// cached.
func (f *Fitter) AdminErrBias(recompute bool) (*AdminPrior, error) {
	prior := &AdminPrior{}
	if !recompute {
		ok, err := f.loadCache(AdminFile, prior)
		if err != nil {
			return nil, err
		}
		if ok {
			return prior, nil
		}
	}

	reten, err := f.DiscardRate(false)
	if err != nil {
		return nil, err
	}
	muPi, _ := dist.BetaMoments(reten.Alpha, reten.Beta)

	obs := data.JoinAdmin(f.Data.AdminLLIN, f.Data.HHLLINFlow, muPi)
	if len(obs) == 0 {
		return nil, fmt.Errorf("admin error: %w", ErrInsufficientData)
	}

	log.Infof("Fitting admin error to %d observations", len(obs))
	m := model.NewAdmin(obs)
	trace, err := f.sample(m, "admin")
	if err != nil {
		return nil, err
	}

	if prior.Sigma, err = f.normalFromTrace(trace, "sigma"); err != nil {
		return nil, err
	}
	if prior.Eps, err = f.normalFromTrace(trace, "eps"); err != nil {
		return nil, err
	}

	if r, err := trace.Correlation("sigma", "eps"); err == nil {
		log.Infof("Posterior correlation of sigma and eps: %f", r)
	}
	log.Infof("Admin error sigma ~ Normal(%f, tau=%f), bias eps ~ Normal(%f, tau=%f)",
		prior.Sigma.Mu, prior.Sigma.Tau, prior.Eps.Mu, prior.Eps.Tau)

	if err := f.storeCache(AdminFile, prior); err != nil {
		return nil, err
	}
	return prior, nil
}

// CovZeroInfl estimates the priors of the coverage decay rate and the
// zero-inflation fraction from household stock and coverage surveys.
func (f *Fitter) CovZeroInfl(recompute bool) (*CoveragePrior, error) {
	prior := &CoveragePrior{}
	if !recompute {
		ok, err := f.loadCache(CovFile, prior)
		if err != nil {
			return nil, err
		}
		if ok {
			return prior, nil
		}
	}

	obs := data.JoinCoverage(f.Data.HHLLINStock, f.Data.LLINCoverage, f.Data.Population)
	if len(obs) == 0 {
		return nil, fmt.Errorf("coverage: %w", ErrInsufficientData)
	}

	log.Infof("Fitting coverage model to %d observations", len(obs))
	m := model.NewCoverage(obs)
	trace, err := f.sample(m, "cov")
	if err != nil {
		return nil, err
	}

	if prior.Eta, err = f.normalFromTrace(trace, "eta"); err != nil {
		return nil, err
	}
	if prior.Zeta, err = f.normalFromTrace(trace, "zeta"); err != nil {
		return nil, err
	}

	z := dist.QuantileNormal(0.975)
	log.Infof("Coverage eta ~ Normal(%f, tau=%f), 95%% interval [%f, %f]",
		prior.Eta.Mu, prior.Eta.Tau,
		prior.Eta.Mu-z/math.Sqrt(prior.Eta.Tau),
		prior.Eta.Mu+z/math.Sqrt(prior.Eta.Tau))
	log.Infof("Zero inflation zeta ~ Normal(%f, tau=%f)",
		prior.Zeta.Mu, prior.Zeta.Tau)

	if err := f.storeCache(CovFile, prior); err != nil {
		return nil, err
	}
	return prior, nil
}
