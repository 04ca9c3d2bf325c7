package main

import "github.com/llin-model/netprior/priors"

// RunSummary stores the results of a netprior run.
type RunSummary struct {
	// Version stores netprior version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seed is the seed used for random number generation initialization.
	Seed int64 `json:"seed"`
	// TotalTime is the computations time in seconds.
	TotalTime float64 `json:"time"`
	// SamplerRuns is the number of MCMC chains run.
	SamplerRuns int `json:"samplerRuns"`

	// DiscardRate is the fitted discard-rate prior.
	DiscardRate *priors.Beta `json:"discardRate,omitempty"`
	// Admin is the fitted administrative error and bias prior.
	Admin *priors.AdminPrior `json:"admin,omitempty"`
	// Coverage is the fitted coverage and zero-inflation prior.
	Coverage *priors.CoveragePrior `json:"coverage,omitempty"`
}
