package priors

import "errors"

// Errors returned by the prior estimators.
var (
	// ErrInsufficientData means there are no observations to fit a
	// model to.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDegeneratePosterior means the posterior moments cannot be
	// matched by the target distribution family.
	ErrDegeneratePosterior = errors.New("degenerate posterior")
	// ErrInterrupted means sampling was stopped by a signal. No
	// partial results are persisted.
	ErrInterrupted = errors.New("sampling interrupted")
)
