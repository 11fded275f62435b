// Package config holds the external-collaborator loaders the core engine
// consumes: a Policy CSV reader, assumption-table CSV readers, and a
// ProjectionConfig YAML reader (spec §6). None of this package is on the
// engine's hot path; it only runs once per invocation.
package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/domain"
)

// policyCSVHeader lists the required columns in the order spec §6 gives
// them, which is also the order WritePolicyCSV emits. ReadPolicyCSV finds
// each column by name, so input files may order them freely. Two optional
// columns, current_av and current_benefit_base, may be present.
var policyCSVHeader = []string{
	"policy_id", "qual_status", "issue_age", "gender", "initial_benefit_base",
	"initial_pols", "initial_premium", "benefit_base_bucket", "percentage",
	"crediting_strategy", "sc_period", "val_rate", "mgir", "bonus",
	"rollup_type", "duration_months", "income_activated", "glwb_start_year",
}

// LoadPolicyCSV reads a block of Policy records from a CSV file with the
// header documented in spec §6.
func LoadPolicyCSV(path string) ([]domain.Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return ReadPolicyCSV(path, f)
}

// ReadPolicyCSV reads policies from an already-open reader; source is used
// only for error messages.
func ReadPolicyCSV(source string, r io.Reader) ([]domain.Policy, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &domain.LoadError{Source: source, Err: fmt.Errorf("reading header: %w", err)}
	}
	cols, err := indexHeader(header, policyCSVHeader)
	if err != nil {
		return nil, &domain.LoadError{Source: source, Err: err}
	}
	hasCurrentAV := indexOf(header, "current_av") >= 0
	hasCurrentBB := indexOf(header, "current_benefit_base") >= 0

	var policies []domain.Policy
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &domain.LoadError{Source: source, Row: row, Err: err}
		}

		p, err := parsePolicyRow(record, cols, header)
		if err != nil {
			return nil, &domain.LoadError{Source: source, Row: row, Err: err}
		}
		if hasCurrentAV {
			if v := record[indexOf(header, "current_av")]; v != "" {
				d, err := decimal.NewFromString(v)
				if err != nil {
					return nil, &domain.LoadError{Source: source, Row: row, Err: fmt.Errorf("current_av: %w", err)}
				}
				p.CurrentAV = &d
			}
		}
		if hasCurrentBB {
			if v := record[indexOf(header, "current_benefit_base")]; v != "" {
				d, err := decimal.NewFromString(v)
				if err != nil {
					return nil, &domain.LoadError{Source: source, Row: row, Err: fmt.Errorf("current_benefit_base: %w", err)}
				}
				p.CurrentBenefitBase = &d
			}
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func parsePolicyRow(record []string, cols map[string]int, header []string) (domain.Policy, error) {
	get := func(name string) string { return strings.TrimSpace(record[cols[name]]) }

	id, err := strconv.ParseUint(get("policy_id"), 10, 32)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("policy_id: %w", err)
	}

	issueAge, err := strconv.Atoi(get("issue_age"))
	if err != nil {
		return domain.Policy{}, fmt.Errorf("issue_age: %w", err)
	}
	scPeriod, err := strconv.Atoi(get("sc_period"))
	if err != nil {
		return domain.Policy{}, fmt.Errorf("sc_period: %w", err)
	}
	durationMonths, err := strconv.Atoi(get("duration_months"))
	if err != nil {
		return domain.Policy{}, fmt.Errorf("duration_months: %w", err)
	}
	glwbStartYear, err := strconv.Atoi(get("glwb_start_year"))
	if err != nil {
		return domain.Policy{}, fmt.Errorf("glwb_start_year: %w", err)
	}

	incomeActivated, err := strconv.ParseBool(get("income_activated"))
	if err != nil {
		return domain.Policy{}, fmt.Errorf("income_activated: %w", err)
	}

	qualStatus, err := parseQualStatus(get("qual_status"))
	if err != nil {
		return domain.Policy{}, err
	}
	gender, err := parseGender(get("gender"))
	if err != nil {
		return domain.Policy{}, err
	}
	crediting, err := parseCreditingStrategy(get("crediting_strategy"))
	if err != nil {
		return domain.Policy{}, err
	}
	rollup, err := parseRollupType(get("rollup_type"))
	if err != nil {
		return domain.Policy{}, err
	}
	bucket, err := parseBucket(get("benefit_base_bucket"))
	if err != nil {
		return domain.Policy{}, err
	}

	parseDec := func(name string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(get(name))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w", name, err)
		}
		return d, nil
	}

	initialBenefitBase, err := parseDec("initial_benefit_base")
	if err != nil {
		return domain.Policy{}, err
	}
	initialPols, err := parseDec("initial_pols")
	if err != nil {
		return domain.Policy{}, err
	}
	initialPremium, err := parseDec("initial_premium")
	if err != nil {
		return domain.Policy{}, err
	}
	valRate, err := parseDec("val_rate")
	if err != nil {
		return domain.Policy{}, err
	}
	mgir, err := parseDec("mgir")
	if err != nil {
		return domain.Policy{}, err
	}
	bonus, err := parseDec("bonus")
	if err != nil {
		return domain.Policy{}, err
	}

	return domain.Policy{
		ID:                 uint32(id),
		QualStatus:         qualStatus,
		Gender:             gender,
		IssueAge:           issueAge,
		InitialPremium:     initialPremium,
		InitialBenefitBase: initialBenefitBase,
		InitialPols:        initialPols,
		BenefitBaseBucket:  bucket,
		CreditingStrategy:  crediting,
		SCPeriod:           scPeriod,
		ValRate:            valRate,
		MGIR:               mgir,
		Bonus:              bonus,
		RollupType:         rollup,
		DurationMonths:     durationMonths,
		IncomeActivated:    incomeActivated,
		GLWBStartYear:      glwbStartYear,
	}, nil
}

func parseQualStatus(s string) (domain.QualStatus, error) {
	switch s {
	case "Q":
		return domain.Qualified, nil
	case "N":
		return domain.NonQualified, nil
	default:
		return "", fmt.Errorf("qual_status: unknown value %q", s)
	}
}

func parseGender(s string) (domain.Gender, error) {
	g := domain.Gender(s)
	if !g.IsValid() {
		return "", fmt.Errorf("gender: unknown value %q", s)
	}
	return g, nil
}

func parseCreditingStrategy(s string) (domain.CreditingStrategy, error) {
	c := domain.CreditingStrategy(s)
	if !c.IsValid() {
		return "", fmt.Errorf("crediting_strategy: unknown value %q", s)
	}
	return c, nil
}

func parseRollupType(s string) (domain.RollupType, error) {
	r := domain.RollupType(s)
	if !r.IsValid() {
		return "", fmt.Errorf("rollup_type: unknown value %q", s)
	}
	return r, nil
}

func parseBucket(s string) (domain.BenefitBaseBucket, error) {
	b := domain.BenefitBaseBucket(s)
	if !b.IsValid() {
		return "", fmt.Errorf("benefit_base_bucket: unknown value %q", s)
	}
	return b, nil
}

// WritePolicyCSV re-emits a policy block with the same header and column
// order LoadPolicyCSV expects, so loading then re-emitting preserves every
// field Policy carries (spec §8 "Round-trips"). The percentage column is
// not carried on Policy and is written empty, and decimal fields are
// written in canonical form (e.g. "0.00" becomes "0"), so the output is
// not byte-identical to the input file.
func WritePolicyCSV(w io.Writer, policies []domain.Policy) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := append(append([]string{}, policyCSVHeader...), "current_av", "current_benefit_base")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range policies {
		currentAV := ""
		if p.CurrentAV != nil {
			currentAV = p.CurrentAV.String()
		}
		currentBB := ""
		if p.CurrentBenefitBase != nil {
			currentBB = p.CurrentBenefitBase.String()
		}
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			string(p.QualStatus),
			strconv.Itoa(p.IssueAge),
			string(p.Gender),
			p.InitialBenefitBase.String(),
			p.InitialPols.String(),
			p.InitialPremium.String(),
			string(p.BenefitBaseBucket),
			"", // percentage: informational only, not modeled
			string(p.CreditingStrategy),
			strconv.Itoa(p.SCPeriod),
			p.ValRate.String(),
			p.MGIR.String(),
			p.Bonus.String(),
			string(p.RollupType),
			strconv.Itoa(p.DurationMonths),
			strconv.FormatBool(p.IncomeActivated),
			strconv.Itoa(p.GLWBStartYear),
			currentAV,
			currentBB,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

func indexHeader(header, required []string) (map[string]int, error) {
	cols := map[string]int{}
	for _, name := range required {
		idx := indexOf(header, name)
		if idx < 0 {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		cols[name] = idx
	}
	return cols, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
