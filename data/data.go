// Package data loads the cleaned survey and administrative tables used
// to fit the empirical priors.
package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("data")

// Table file names expected in the data directory.
const (
	retentionFile  = "retention.csv"
	adminFile      = "admin_llin.csv"
	flowFile       = "hh_llin_flow.csv"
	populationFile = "population.csv"
	stockFile      = "hh_llin_stock.csv"
	coverageFile   = "llin_coverage.csv"
)

// RetentionRecord is a single net-retention study result.
type RetentionRecord struct {
	Name          string
	Year          int
	RetentionRate float64
	FollowUpTime  float64
}

// AdminRecord is an administrative LLIN distribution count for a
// country-year.
type AdminRecord struct {
	Country      string
	Year         int
	ProgramLLINs float64
}

// HHFlowRecord is a household-survey LLIN flow estimate for a
// country-year.
type HHFlowRecord struct {
	Country        string
	Year           int
	MeanSurveyDate float64
	TotalLLINs     float64
	TotalSE        float64
}

// PopulationRecord stores a country-year population in thousands.
type PopulationRecord struct {
	Country string
	Year    int
	Pop     float64
}

// HHStockRecord is a household-survey LLIN stock estimate for a
// country and survey year.
type HHStockRecord struct {
	Country    string
	SurveyYear int
	LLINsTotal float64
	LLINsSE    float64
}

// CoverageRecord stores the fraction of households with zero LLINs for
// a country and survey year.
type CoverageRecord struct {
	Country      string
	SurveyYear   int
	PerZeroLLINs float64
	ZeroLLINsSE  float64
}

// Set holds all the input tables.
type Set struct {
	Retention    []RetentionRecord
	AdminLLIN    []AdminRecord
	HHLLINFlow   []HHFlowRecord
	Population   []PopulationRecord
	HHLLINStock  []HHStockRecord
	LLINCoverage []CoverageRecord
}

// Load reads all the input tables from a directory.
func Load(dir string) (*Set, error) {
	s := &Set{}
	var err error
	if s.Retention, err = LoadRetention(filepath.Join(dir, retentionFile)); err != nil {
		return nil, err
	}
	if s.AdminLLIN, err = LoadAdminLLIN(filepath.Join(dir, adminFile)); err != nil {
		return nil, err
	}
	if s.HHLLINFlow, err = LoadHHLLINFlow(filepath.Join(dir, flowFile)); err != nil {
		return nil, err
	}
	if s.Population, err = LoadPopulation(filepath.Join(dir, populationFile)); err != nil {
		return nil, err
	}
	if s.HHLLINStock, err = LoadHHLLINStock(filepath.Join(dir, stockFile)); err != nil {
		return nil, err
	}
	if s.LLINCoverage, err = LoadLLINCoverage(filepath.Join(dir, coverageFile)); err != nil {
		return nil, err
	}
	return s, nil
}

// table is a parsed CSV file with header-indexed columns.
type table struct {
	name string
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty table", filepath.Base(path))
	}

	t := &table{
		name: filepath.Base(path),
		cols: make(map[string]int, len(records[0])),
		rows: records[1:],
	}
	for i, name := range records[0] {
		t.cols[strings.TrimSpace(name)] = i
	}
	return t, nil
}

func (t *table) rowError(row int, err error) error {
	// +2 for the header line and one-based numbering
	return fmt.Errorf("%s row %d: %w", t.name, row+2, err)
}

func (t *table) str(row []string, col string) (string, error) {
	i, ok := t.cols[col]
	if !ok {
		return "", fmt.Errorf("no column %q", col)
	}
	if i >= len(row) {
		return "", fmt.Errorf("short row, no column %q", col)
	}
	return strings.TrimSpace(row[i]), nil
}

func (t *table) float(row []string, col string) (float64, error) {
	s, err := t.str(row, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return v, nil
}

func (t *table) year(row []string, col string) (int, error) {
	s, err := t.str(row, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return v, nil
}

// LoadRetention reads net-retention study results.
func LoadRetention(path string) ([]RetentionRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	recs := make([]RetentionRecord, 0, len(t.rows))
	for i, row := range t.rows {
		var r RetentionRecord
		if r.Name, err = t.str(row, "Name"); err == nil {
			if r.Year, err = t.year(row, "Year"); err == nil {
				if r.RetentionRate, err = t.float(row, "Retention_Rate"); err == nil {
					r.FollowUpTime, err = t.float(row, "Follow_up_Time")
				}
			}
		}
		if err != nil {
			return nil, t.rowError(i, err)
		}
		recs = append(recs, r)
	}
	log.Infof("Read %d retention studies from %s", len(recs), t.name)
	return recs, nil
}

// LoadAdminLLIN reads administrative LLIN distribution counts.
func LoadAdminLLIN(path string) ([]AdminRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	recs := make([]AdminRecord, 0, len(t.rows))
	for i, row := range t.rows {
		var r AdminRecord
		if r.Country, err = t.str(row, "Country"); err == nil {
			if r.Year, err = t.year(row, "Year"); err == nil {
				r.ProgramLLINs, err = t.float(row, "Program_LLINs")
			}
		}
		if err != nil {
			return nil, t.rowError(i, err)
		}
		recs = append(recs, r)
	}
	log.Infof("Read %d admin records from %s", len(recs), t.name)
	return recs, nil
}

// LoadHHLLINFlow reads household-survey LLIN flow estimates.
func LoadHHLLINFlow(path string) ([]HHFlowRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	recs := make([]HHFlowRecord, 0, len(t.rows))
	for i, row := range t.rows {
		var r HHFlowRecord
		if r.Country, err = t.str(row, "Country"); err == nil {
			if r.Year, err = t.year(row, "Year"); err == nil {
				if r.MeanSurveyDate, err = t.float(row, "mean_survey_date"); err == nil {
					if r.TotalLLINs, err = t.float(row, "Total_LLINs"); err == nil {
						r.TotalSE, err = t.float(row, "Total_st")
					}
				}
			}
		}
		if err != nil {
			return nil, t.rowError(i, err)
		}
		recs = append(recs, r)
	}
	log.Infof("Read %d household flow records from %s", len(recs), t.name)
	return recs, nil
}

// LoadPopulation reads country-year population sizes.
func LoadPopulation(path string) ([]PopulationRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	recs := make([]PopulationRecord, 0, len(t.rows))
	for i, row := range t.rows {
		var r PopulationRecord
		if r.Country, err = t.str(row, "Country"); err == nil {
			if r.Year, err = t.year(row, "Year"); err == nil {
				r.Pop, err = t.float(row, "Pop")
			}
		}
		if err != nil {
			return nil, t.rowError(i, err)
		}
		recs = append(recs, r)
	}
	log.Infof("Read %d population records from %s", len(recs), t.name)
	return recs, nil
}

// LoadHHLLINStock reads household-survey LLIN stock estimates.
func LoadHHLLINStock(path string) ([]HHStockRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	recs := make([]HHStockRecord, 0, len(t.rows))
	for i, row := range t.rows {
		var r HHStockRecord
		if r.Country, err = t.str(row, "Country"); err == nil {
			if r.SurveyYear, err = t.year(row, "Survey_Year2"); err == nil {
				if r.LLINsTotal, err = t.float(row, "SvyIndex_LLINstotal"); err == nil {
					r.LLINsSE, err = t.float(row, "SvyIndex_st")
				}
			}
		}
		if err != nil {
			return nil, t.rowError(i, err)
		}
		recs = append(recs, r)
	}
	log.Infof("Read %d household stock records from %s", len(recs), t.name)
	return recs, nil
}

// LoadLLINCoverage reads zero-coverage survey results.
func LoadLLINCoverage(path string) ([]CoverageRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	recs := make([]CoverageRecord, 0, len(t.rows))
	for i, row := range t.rows {
		var r CoverageRecord
		if r.Country, err = t.str(row, "Country"); err == nil {
			if r.SurveyYear, err = t.year(row, "Survey_Year2"); err == nil {
				if r.PerZeroLLINs, err = t.float(row, "Per_0LLINs"); err == nil {
					r.ZeroLLINsSE, err = t.float(row, "LLINs0_SE")
				}
			}
		}
		if err != nil {
			return nil, t.rowError(i, err)
		}
		recs = append(recs, r)
	}
	log.Infof("Read %d coverage records from %s", len(recs), t.name)
	return recs, nil
}
