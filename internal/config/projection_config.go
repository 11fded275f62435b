package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fia-glwb/block-projector/internal/calculation"
	"github.com/fia-glwb/block-projector/internal/domain"
)

// ProjectionConfig mirrors the YAML shape documented in spec §6. Crediting
// is a Rust-style tagged union in the original design; here
// LoadProjectionConfigYAML decodes it into the string-typed
// projectionConfigYAML struct at the parse boundary and flattens it into
// this struct, which ToEngineConfig maps onto calculation.EngineConfig.
type ProjectionConfig struct {
	ProjectionMonths int
	Crediting        calculation.CreditingMode
	FixedAnnual      decimal.Decimal
	IndexedAnnual    decimal.Decimal
	OverrideAnnual   decimal.Decimal
	DetailedOutput   bool
	TreasuryChange   decimal.Decimal
	FixedLapseRate   *decimal.Decimal
	HedgeCostRate    *decimal.Decimal
}

type projectionConfigYAML struct {
	ProjectionMonths int     `yaml:"projection_months"`
	DetailedOutput   bool    `yaml:"detailed_output"`
	TreasuryChange   string  `yaml:"treasury_change"`
	FixedLapseRate   *string `yaml:"fixed_lapse_rate,omitempty"`

	Crediting struct {
		PolicyBased *struct {
			FixedAnnual   string `yaml:"fixed_annual"`
			IndexedAnnual string `yaml:"indexed_annual"`
		} `yaml:"policy_based,omitempty"`
		Override *struct {
			AnnualRate string `yaml:"annual_rate"`
		} `yaml:"override,omitempty"`
	} `yaml:"crediting"`

	HedgeParams *struct {
		HedgeCostRate string `yaml:"hedge_cost_rate"`
	} `yaml:"hedge_params,omitempty"`
}

// LoadProjectionConfigYAML parses a ProjectionConfig from YAML (spec §6).
// Unset fields fall back to the documented defaults: projection_months=360,
// crediting=PolicyBased.
func LoadProjectionConfigYAML(path string) (ProjectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProjectionConfig{}, &domain.LoadError{Source: path, Err: err}
	}

	var raw projectionConfigYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ProjectionConfig{}, &domain.LoadError{Source: path, Err: fmt.Errorf("parsing YAML: %w", err)}
	}

	cfg := ProjectionConfig{
		ProjectionMonths: raw.ProjectionMonths,
		DetailedOutput:   raw.DetailedOutput,
		Crediting:        calculation.CreditingPolicyBased,
	}
	if cfg.ProjectionMonths == 0 {
		cfg.ProjectionMonths = 360
	}

	parseDec := func(label, s string) (decimal.Decimal, error) {
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, &domain.LoadError{Source: path, Err: fmt.Errorf("%s: %w", label, err)}
		}
		return d, nil
	}

	treasuryChange, err := parseDec("treasury_change", raw.TreasuryChange)
	if err != nil {
		return ProjectionConfig{}, err
	}
	cfg.TreasuryChange = treasuryChange

	if raw.Crediting.Override != nil {
		cfg.Crediting = calculation.CreditingOverride
		rate, err := parseDec("crediting.override.annual_rate", raw.Crediting.Override.AnnualRate)
		if err != nil {
			return ProjectionConfig{}, err
		}
		cfg.OverrideAnnual = rate
	} else if raw.Crediting.PolicyBased != nil {
		fixed, err := parseDec("crediting.policy_based.fixed_annual", raw.Crediting.PolicyBased.FixedAnnual)
		if err != nil {
			return ProjectionConfig{}, err
		}
		indexed, err := parseDec("crediting.policy_based.indexed_annual", raw.Crediting.PolicyBased.IndexedAnnual)
		if err != nil {
			return ProjectionConfig{}, err
		}
		cfg.FixedAnnual = fixed
		cfg.IndexedAnnual = indexed
	}

	if raw.FixedLapseRate != nil {
		d, err := parseDec("fixed_lapse_rate", *raw.FixedLapseRate)
		if err != nil {
			return ProjectionConfig{}, err
		}
		cfg.FixedLapseRate = &d
	}

	if raw.HedgeParams != nil {
		d, err := parseDec("hedge_params.hedge_cost_rate", raw.HedgeParams.HedgeCostRate)
		if err != nil {
			return ProjectionConfig{}, err
		}
		cfg.HedgeCostRate = &d
	}

	return cfg, nil
}

// ToEngineConfig resolves the parsed YAML config into the calculation
// package's runtime shape.
func (c ProjectionConfig) ToEngineConfig() calculation.EngineConfig {
	return calculation.EngineConfig{
		ProjectionMonths:   c.ProjectionMonths,
		Crediting:          c.Crediting,
		OverrideAnnualRate: c.OverrideAnnual,
		FixedAnnualRate:    c.FixedAnnual,
		IndexedAnnualRate:  c.IndexedAnnual,
		DetailedOutput:     c.DetailedOutput,
		TreasuryChange:     c.TreasuryChange,
		FixedLapseRate:     c.FixedLapseRate,
	}
}

// ApplyHedgeParams overlays a parsed hedge_params block onto an Assumptions
// bundle, leaving it nil (hedge reporting disabled) when absent.
func (c ProjectionConfig) ApplyHedgeParams(a *domain.Assumptions) {
	if c.HedgeCostRate == nil {
		a.Hedge = nil
		return
	}
	a.Hedge = &domain.HedgeParams{HedgeCostRate: *c.HedgeCostRate}
}
