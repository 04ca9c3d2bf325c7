package data

import (
	"math"
	"testing"
)

func TestJoinAdmin(tst *testing.T) {
	admin := []AdminRecord{
		{Country: "X", Year: 2005, ProgramLLINs: 1000},
		{Country: "Y", Year: 2006, ProgramLLINs: 500},
	}
	flow := []HHFlowRecord{
		{Country: "X", Year: 2005, MeanSurveyDate: 2006.5, TotalLLINs: 1200, TotalSE: 50},
	}

	obs := JoinAdmin(admin, flow, 0.2)
	if len(obs) != 1 {
		tst.Fatal("Incorrect number of joined observations:", len(obs))
	}
	o := obs[0]
	if o.Key.Country != "X" || o.Key.Year != 2005 || o.Obs != 1000 {
		tst.Error("Incorrect joined observation:", o)
	}
	// one year from mid-2005 to the survey date
	truth := 1200 / math.Pow(0.8, 1)
	if math.Abs(o.Truth-truth) > 1e-9 {
		tst.Error("Incorrect projected truth:", o.Truth)
	}
	logVar := 1.1 * 50 * 50 / (truth * truth)
	if math.Abs(o.LogVar-logVar) > 1e-12 {
		tst.Error("Incorrect log variance:", o.LogVar)
	}
}

func TestJoinAdminSkipsNonPositive(tst *testing.T) {
	admin := []AdminRecord{
		{Country: "X", Year: 2005, ProgramLLINs: 0},
	}
	flow := []HHFlowRecord{
		{Country: "X", Year: 2005, MeanSurveyDate: 2005.5, TotalLLINs: 1200, TotalSE: 50},
	}
	if obs := JoinAdmin(admin, flow, 0.2); len(obs) != 0 {
		tst.Error("Expected zero-count observation to be skipped:", obs)
	}
}

func TestJoinAdminOrder(tst *testing.T) {
	admin := []AdminRecord{
		{Country: "Y", Year: 2005, ProgramLLINs: 100},
		{Country: "X", Year: 2006, ProgramLLINs: 100},
		{Country: "X", Year: 2005, ProgramLLINs: 100},
	}
	flow := []HHFlowRecord{
		{Country: "X", Year: 2005, MeanSurveyDate: 2005.5, TotalLLINs: 100, TotalSE: 10},
		{Country: "X", Year: 2006, MeanSurveyDate: 2006.5, TotalLLINs: 100, TotalSE: 10},
		{Country: "Y", Year: 2005, MeanSurveyDate: 2005.5, TotalLLINs: 100, TotalSE: 10},
	}
	obs := JoinAdmin(admin, flow, 0.2)
	if len(obs) != 3 {
		tst.Fatal("Incorrect number of joined observations:", len(obs))
	}
	keys := []Key{{"X", 2005}, {"X", 2006}, {"Y", 2005}}
	for i, k := range keys {
		if obs[i].Key != k {
			tst.Error("Incorrect key order:", obs)
		}
	}
}

func TestJoinCoverage(tst *testing.T) {
	stock := []HHStockRecord{
		{Country: "X", SurveyYear: 2005, LLINsTotal: 5000, LLINsSE: 100},
		{Country: "Z", SurveyYear: 2005, LLINsTotal: 3000, LLINsSE: 100},
	}
	coverage := []CoverageRecord{
		{Country: "X", SurveyYear: 2005, PerZeroLLINs: 0.4, ZeroLLINsSE: 0.05},
	}
	pop := []PopulationRecord{
		{Country: "X", Year: 2005, Pop: 10},
	}

	obs := JoinCoverage(stock, coverage, pop)
	if len(obs) != 1 {
		tst.Fatal("Incorrect number of joined observations:", len(obs))
	}
	o := obs[0]
	// population is in thousands
	if math.Abs(o.Stock-0.5) > 1e-12 || math.Abs(o.StockSE-0.01) > 1e-12 {
		tst.Error("Incorrect per-capita stock:", o)
	}
	if o.Uncovered != 0.4 || o.SE != 0.05 {
		tst.Error("Incorrect coverage values:", o)
	}
}

func TestJoinCoverageMissingPopulation(tst *testing.T) {
	stock := []HHStockRecord{
		{Country: "X", SurveyYear: 2005, LLINsTotal: 5000, LLINsSE: 100},
	}
	coverage := []CoverageRecord{
		{Country: "X", SurveyYear: 2005, PerZeroLLINs: 0.4, ZeroLLINsSE: 0.05},
	}
	if obs := JoinCoverage(stock, coverage, nil); len(obs) != 0 {
		tst.Error("Expected observation without population to be skipped:", obs)
	}
}
