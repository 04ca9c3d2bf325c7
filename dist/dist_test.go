package dist

import (
	"math"
	"testing"
)

func TestLnBeta(tst *testing.T) {
	// B(1,2) = 1/2, B(2,3) = 1/12
	if math.Abs(LnBeta(1, 2)-math.Log(0.5)) > 1e-12 {
		tst.Error("Incorrect LnBeta(1, 2):", LnBeta(1, 2))
	}
	if math.Abs(LnBeta(2, 3)-math.Log(1.0/12)) > 1e-12 {
		tst.Error("Incorrect LnBeta(2, 3):", LnBeta(2, 3))
	}
}

func TestNormalLogPDF(tst *testing.T) {
	expected := -0.5 * math.Log(2*math.Pi)
	if math.Abs(NormalLogPDF(0, 0, 1)-expected) > 1e-12 {
		tst.Error("Incorrect standard normal log-density:", NormalLogPDF(0, 0, 1))
	}
	expected = 0.5 * math.Log(4/(2*math.Pi))
	if math.Abs(NormalLogPDF(1, 1, 4)-expected) > 1e-12 {
		tst.Error("Incorrect normal log-density at the mean:", NormalLogPDF(1, 1, 4))
	}
	if !math.IsInf(NormalLogPDF(1, 0, 0), -1) {
		tst.Error("Zero precision should give -Inf log-density")
	}
}

func TestBetaMomentsRoundTrip(tst *testing.T) {
	alpha, beta := 2.0, 3.0
	mean, variance := BetaMoments(alpha, beta)
	if math.Abs(mean-0.4) > 1e-12 || math.Abs(variance-0.04) > 1e-12 {
		tst.Error("Incorrect Beta(2, 3) moments:", mean, variance)
	}
	a, b, err := BetaFromMoments(mean, variance)
	if err != nil {
		tst.Error("Error: ", err)
	}
	if math.Abs(a-alpha) > 1e-9 || math.Abs(b-beta) > 1e-9 {
		tst.Error("Moment matching is not idempotent:", a, b)
	}
}

func TestBetaFromMomentsDegenerate(tst *testing.T) {
	if _, _, err := BetaFromMoments(0.5, 0); err == nil {
		tst.Error("Zero variance should be an error")
	}
	// variance >= mean*(1-mean) is impossible for a Beta distribution
	if _, _, err := BetaFromMoments(0.5, 0.3); err == nil {
		tst.Error("Too large variance should be an error")
	}
	if _, _, err := BetaFromMoments(1.5, 0.01); err == nil {
		tst.Error("Mean outside (0, 1) should be an error")
	}
}

func TestQuantileBeta(tst *testing.T) {
	for _, prob := range []float64{0.025, 0.5, 0.975} {
		x := QuantileBeta(prob, 2, 3)
		if math.Abs(CDFBeta(x, 2, 3)-prob) > 1e-8 {
			tst.Error("Quantile/CDF mismatch for prob", prob)
		}
	}
	if math.Abs(QuantileBeta(0.5, 1, 1)-0.5) > 1e-8 {
		tst.Error("Incorrect median for Beta(1, 1)")
	}
}

func TestQuantileNormal(tst *testing.T) {
	if math.Abs(QuantileNormal(0.975)-1.959964) > 1e-5 {
		tst.Error("Incorrect 97.5% normal quantile:", QuantileNormal(0.975))
	}
	if math.Abs(QuantileNormal(0.5)) > 1e-12 {
		tst.Error("Incorrect normal median:", QuantileNormal(0.5))
	}
}
