package data

import (
	"fmt"
	"math"
	"sort"
)

// Key identifies a country-year observation.
type Key struct {
	Country string
	Year    int
}

func (k Key) String() string {
	return fmt.Sprintf("%s_%d", k.Country, k.Year)
}

// keyLess orders keys by country and then year.
func keyLess(a, b Key) bool {
	if a.Country != b.Country {
		return a.Country < b.Country
	}
	return a.Year < b.Year
}

// AdminObs pairs an administrative LLIN count with a household-survey
// estimate of the true number distributed that year.
type AdminObs struct {
	Key Key
	// Obs is the administrative count.
	Obs float64
	// Truth is the survey flow estimate projected back to the
	// distribution year.
	Truth float64
	// SE is the survey standard error.
	SE float64
	// LogVar is the sampling variance of log(Truth).
	LogVar float64
}

// JoinAdmin intersects administrative counts with household flow
// estimates by country-year. The survey estimate is corrected for nets
// discarded between the middle of the distribution year and the survey
// date using the posterior mean discard rate muPi. Country-years with
// non-positive counts are skipped with a warning.
func JoinAdmin(admin []AdminRecord, flow []HHFlowRecord, muPi float64) []AdminObs {
	flows := make(map[Key]HHFlowRecord, len(flow))
	for _, f := range flow {
		flows[Key{f.Country, f.Year}] = f
	}

	obs := make([]AdminObs, 0, len(admin))
	for _, a := range admin {
		key := Key{a.Country, a.Year}
		f, ok := flows[key]
		if !ok {
			continue
		}
		if a.ProgramLLINs <= 0 || f.TotalLLINs <= 0 {
			log.Warningf("Skipping %v: non-positive LLIN count", key)
			continue
		}
		// middle of the distribution year to the survey date
		time := f.MeanSurveyDate - (float64(a.Year) + 0.5)
		truth := f.TotalLLINs / math.Pow(1-muPi, time)
		obs = append(obs, AdminObs{
			Key:    key,
			Obs:    a.ProgramLLINs,
			Truth:  truth,
			SE:     f.TotalSE,
			LogVar: 1.1 * f.TotalSE * f.TotalSE / (truth * truth),
		})
	}

	sort.Slice(obs, func(i, j int) bool { return keyLess(obs[i].Key, obs[j].Key) })
	log.Infof("Joined %d admin observations (%d admin, %d flow records)",
		len(obs), len(admin), len(flow))
	return obs
}

// CoverageObs pairs a per-capita LLIN stock estimate with the observed
// fraction of households owning no nets.
type CoverageObs struct {
	Key Key
	// Stock is nets per capita from the household survey.
	Stock float64
	// StockSE is the standard error of Stock.
	StockSE float64
	// Uncovered is the observed fraction of households with zero nets.
	Uncovered float64
	// SE is the standard error of Uncovered.
	SE float64
}

// JoinCoverage intersects household stock estimates with zero-coverage
// survey results and population sizes by country and survey year. Stock
// counts are converted to nets per capita. Country-years with missing
// population or non-positive values are skipped with a warning.
func JoinCoverage(stock []HHStockRecord, coverage []CoverageRecord, pop []PopulationRecord) []CoverageObs {
	pops := make(map[Key]float64, len(pop))
	for _, p := range pop {
		pops[Key{p.Country, p.Year}] = p.Pop * 1000
	}
	covs := make(map[Key]CoverageRecord, len(coverage))
	for _, c := range coverage {
		covs[Key{c.Country, c.SurveyYear}] = c
	}

	obs := make([]CoverageObs, 0, len(stock))
	for _, s := range stock {
		key := Key{s.Country, s.SurveyYear}
		c, ok := covs[key]
		if !ok {
			continue
		}
		p, ok := pops[key]
		if !ok {
			log.Warningf("Skipping %v: no population record", key)
			continue
		}
		if p <= 0 || s.LLINsTotal <= 0 || s.LLINsSE <= 0 || c.ZeroLLINsSE <= 0 {
			log.Warningf("Skipping %v: non-positive stock or error", key)
			continue
		}
		obs = append(obs, CoverageObs{
			Key:       key,
			Stock:     s.LLINsTotal / p,
			StockSE:   s.LLINsSE / p,
			Uncovered: c.PerZeroLLINs,
			SE:        c.ZeroLLINsSE,
		})
	}

	sort.Slice(obs, func(i, j int) bool { return keyLess(obs[i].Key, obs[j].Key) })
	log.Infof("Joined %d coverage observations (%d stock, %d coverage records)",
		len(obs), len(stock), len(coverage))
	return obs
}
