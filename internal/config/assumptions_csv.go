package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/domain"
	"github.com/fia-glwb/block-projector/internal/tables"
)

// LoadMortalityCSV reads a mortality table with header
// age,gender,annual_q. Unknown rows fail the whole load (spec §7 LoadError).
func LoadMortalityCSV(path string) (tables.MortalityTable, error) {
	t := tables.MortalityTable{Male: map[int]decimal.Decimal{}, Female: map[int]decimal.Decimal{}}
	err := withCSVRows(path, []string{"age", "gender", "annual_q"}, func(row int, rec map[string]string) error {
		age, err := strconv.Atoi(rec["age"])
		if err != nil {
			return fmt.Errorf("age: %w", err)
		}
		q, err := decimal.NewFromString(rec["annual_q"])
		if err != nil {
			return fmt.Errorf("annual_q: %w", err)
		}
		switch rec["gender"] {
		case "Male":
			t.Male[age] = q
		case "Female":
			t.Female[age] = q
		default:
			return fmt.Errorf("gender: unknown value %q", rec["gender"])
		}
		return nil
	})
	if err != nil {
		return tables.MortalityTable{}, &domain.LoadError{Source: path, Err: err}
	}
	return t, nil
}

// LoadSurrenderChargeCSV reads a schedule with header policy_year,rate.
// Rows are 1-indexed and must be contiguous from year 1.
func LoadSurrenderChargeCSV(path string) (tables.SurrenderChargeSchedule, error) {
	rates := map[int]decimal.Decimal{}
	maxYear := 0
	err := withCSVRows(path, []string{"policy_year", "rate"}, func(row int, rec map[string]string) error {
		year, err := strconv.Atoi(rec["policy_year"])
		if err != nil {
			return fmt.Errorf("policy_year: %w", err)
		}
		rate, err := decimal.NewFromString(rec["rate"])
		if err != nil {
			return fmt.Errorf("rate: %w", err)
		}
		rates[year] = rate
		if year > maxYear {
			maxYear = year
		}
		return nil
	})
	if err != nil {
		return tables.SurrenderChargeSchedule{}, &domain.LoadError{Source: path, Err: err}
	}
	out := make([]decimal.Decimal, maxYear)
	for y := 1; y <= maxYear; y++ {
		out[y-1] = rates[y]
	}
	return tables.SurrenderChargeSchedule{RatesByYear: out}, nil
}

// LoadRmdCSV reads a table with header age,rate.
func LoadRmdCSV(path string) (tables.RmdTable, error) {
	rates := map[int]decimal.Decimal{}
	minAge, maxAge := 0, 0
	first := true
	err := withCSVRows(path, []string{"age", "rate"}, func(row int, rec map[string]string) error {
		age, err := strconv.Atoi(rec["age"])
		if err != nil {
			return fmt.Errorf("age: %w", err)
		}
		rate, err := decimal.NewFromString(rec["rate"])
		if err != nil {
			return fmt.Errorf("rate: %w", err)
		}
		rates[age] = rate
		if first {
			minAge, maxAge = age, age
			first = false
		}
		if age < minAge {
			minAge = age
		}
		if age > maxAge {
			maxAge = age
		}
		return nil
	})
	if err != nil {
		return tables.RmdTable{}, &domain.LoadError{Source: path, Err: err}
	}
	return tables.RmdTable{RateByAge: rates, MinAge: minAge, MaxAge: maxAge}, nil
}

// LoadPayoutFactorsCSV reads age-banded payout factors with header
// min_age,max_age,rate, plus a trailing fallback row where max_age is empty.
func LoadPayoutFactorsCSV(path string) (tables.PayoutFactors, error) {
	var bands []tables.PayoutBand
	fallback := decimal.Zero
	err := withCSVRows(path, []string{"min_age", "max_age", "rate"}, func(row int, rec map[string]string) error {
		minAge, err := strconv.Atoi(rec["min_age"])
		if err != nil {
			return fmt.Errorf("min_age: %w", err)
		}
		rate, err := decimal.NewFromString(rec["rate"])
		if err != nil {
			return fmt.Errorf("rate: %w", err)
		}
		if rec["max_age"] == "" {
			fallback = rate
			return nil
		}
		maxAge, err := strconv.Atoi(rec["max_age"])
		if err != nil {
			return fmt.Errorf("max_age: %w", err)
		}
		bands = append(bands, tables.PayoutBand{Min: minAge, Max: maxAge, Rate: rate})
		return nil
	})
	if err != nil {
		return tables.PayoutFactors{}, &domain.LoadError{Source: path, Err: err}
	}
	return tables.PayoutFactors{Bands: bands, Fallback: fallback}, nil
}

// LoadUtilizationCSV reads a header policy_year,utilization table. The
// last contiguous row's value is what callers extrapolate beyond.
func LoadUtilizationCSV(path string) (tables.FreeWithdrawalUtilization, error) {
	byYear := map[int]decimal.Decimal{}
	maxYear := 0
	err := withCSVRows(path, []string{"policy_year", "utilization"}, func(row int, rec map[string]string) error {
		year, err := strconv.Atoi(rec["policy_year"])
		if err != nil {
			return fmt.Errorf("policy_year: %w", err)
		}
		u, err := decimal.NewFromString(rec["utilization"])
		if err != nil {
			return fmt.Errorf("utilization: %w", err)
		}
		byYear[year] = u
		if year > maxYear {
			maxYear = year
		}
		return nil
	})
	if err != nil {
		return tables.FreeWithdrawalUtilization{}, &domain.LoadError{Source: path, Err: err}
	}
	out := make([]decimal.Decimal, maxYear)
	for y := 1; y <= maxYear; y++ {
		out[y-1] = byYear[y]
	}
	return tables.FreeWithdrawalUtilization{ByYear: out}, nil
}

// withCSVRows is the shared CSV-with-header iteration helper every
// assumption-table loader above builds on.
func withCSVRows(path string, required []string, fn func(row int, rec map[string]string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	cols, err := indexHeader(header, required)
	if err != nil {
		return err
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		rec := make(map[string]string, len(cols))
		for name, idx := range cols {
			rec[name] = record[idx]
		}
		if err := fn(row, rec); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
	}
	return nil
}
