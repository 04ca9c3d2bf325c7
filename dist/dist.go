// Package dist implements distribution functions for the empirical
// prior models.
package dist

import (
	"errors"
	"math"

	"github.com/gonum/mathext"
)

// ErrDegenerate is returned by moment matching when the moments are
// incompatible with the target distribution family.
var ErrDegenerate = errors.New("dist: degenerate moments")

// LnBeta returns log of Beta function.
func LnBeta(p, q float64) float64 {
	lgp, _ := math.Lgamma(p)
	lgq, _ := math.Lgamma(q)
	lgpq, _ := math.Lgamma(p + q)
	return lgp + lgq - lgpq
}

// NormalLogPDF returns the log-density at x of a normal distribution
// with mean mu and precision tau.
func NormalLogPDF(x, mu, tau float64) float64 {
	if tau <= 0 {
		return math.Inf(-1)
	}
	d := x - mu
	return 0.5*math.Log(tau/(2*math.Pi)) - 0.5*tau*d*d
}

/*

CDFBeta returns the distribution function of the standard form of the
beta distribution, that is, the incomplete beta ratio I_x(p,q).

*/
func CDFBeta(x, p, q float64) float64 {
	return mathext.RegIncBeta(p, q, x)
}

// QuantileBeta calculates the quantile of the beta distribution.
func QuantileBeta(prob, p, q float64) float64 {
	return mathext.InvRegIncBeta(p, q, prob)
}

// QuantileNormal returns the quantile of the standard normal
// distribution.
func QuantileNormal(prob float64) float64 {
	return mathext.NormalQuantile(prob)
}

// BetaMoments returns mean and variance of a Beta(alpha, beta)
// distribution.
func BetaMoments(alpha, beta float64) (mean, variance float64) {
	s := alpha + beta
	mean = alpha / s
	variance = alpha * beta / (s * s * (s + 1))
	return
}

// BetaFromMoments converts a mean and a variance into Beta shape
// parameters using the method of moments. A variance of zero or a
// variance too large for the given mean cannot come from a Beta
// distribution; both return ErrDegenerate.
func BetaFromMoments(mean, variance float64) (alpha, beta float64, err error) {
	if mean <= 0 || mean >= 1 {
		return 0, 0, ErrDegenerate
	}
	if variance <= 0 || variance >= mean*(1-mean) {
		return 0, 0, ErrDegenerate
	}
	c := mean*(1-mean)/variance - 1
	return mean * c, (1 - mean) * c, nil
}
