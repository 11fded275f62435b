// Package domain holds the plain-value types shared across the FIA/GLWB
// block projector: policy records, assumption tables, projection state, and
// the per-month cashflow row the engine emits.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QualStatus distinguishes qualified (tax-deferred retirement) money from
// non-qualified money. It drives the RMD interaction in the partial
// withdrawal model (spec §4.3).
type QualStatus string

const (
	Qualified    QualStatus = "Q"
	NonQualified QualStatus = "N"
)

// IsValid reports whether s is one of the known qualification statuses.
func (s QualStatus) IsValid() bool {
	switch s {
	case Qualified, NonQualified:
		return true
	default:
		return false
	}
}

// Gender drives the mortality table lookup.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

func (g Gender) IsValid() bool {
	switch g {
	case Male, Female:
		return true
	default:
		return false
	}
}

// CreditingStrategy selects how interest is credited to the account value
// each month (spec §4.7 step 6).
type CreditingStrategy string

const (
	Fixed   CreditingStrategy = "Fixed"
	Indexed CreditingStrategy = "Indexed"
)

func (c CreditingStrategy) IsValid() bool {
	switch c {
	case Fixed, Indexed:
		return true
	default:
		return false
	}
}

// RollupType selects how the benefit base grows pre-activation (spec §4.4).
// Simple and compound rollup are distinct code paths by design (spec §9) —
// this discriminant is how the engine picks between them.
type RollupType string

const (
	Simple   RollupType = "Simple"
	Compound RollupType = "Compound"
)

func (r RollupType) IsValid() bool {
	switch r {
	case Simple, Compound:
		return true
	default:
		return false
	}
}

// BenefitBaseBucket buckets the benefit base by size for the lapse model's
// additive bucket shift (spec §4.2).
type BenefitBaseBucket string

const (
	BucketUnder50k  BenefitBaseBucket = "<50k"
	Bucket50to100k  BenefitBaseBucket = "50-100k"
	Bucket100to200k BenefitBaseBucket = "100-200k"
	Bucket200to500k BenefitBaseBucket = "200-500k"
	BucketOver500k  BenefitBaseBucket = ">=500k"
)

func (b BenefitBaseBucket) IsValid() bool {
	switch b {
	case BucketUnder50k, Bucket50to100k, Bucket100to200k, Bucket200to500k, BucketOver500k:
		return true
	default:
		return false
	}
}

// BucketForAmount derives the BenefitBaseBucket from a benefit base amount.
// Loaders that don't carry an explicit bucket column can use this.
func BucketForAmount(amount decimal.Decimal) BenefitBaseBucket {
	switch {
	case amount.LessThan(decimal.NewFromInt(50_000)):
		return BucketUnder50k
	case amount.LessThan(decimal.NewFromInt(100_000)):
		return Bucket50to100k
	case amount.LessThan(decimal.NewFromInt(200_000)):
		return Bucket100to200k
	case amount.LessThan(decimal.NewFromInt(500_000)):
		return Bucket200to500k
	default:
		return BucketOver500k
	}
}

// NeverActivates is the sentinel value for Policy.GLWBStartYear meaning the
// GLWB rider never activates over the projection horizon.
const NeverActivates = 99

// Policy is the immutable per-contract input to the projection engine.
// Money fields use decimal.Decimal for fixed-point reproducibility across a
// 360-month compounding horizon (see SPEC_FULL.md §3).
type Policy struct {
	ID                 uint32            `json:"id"`
	QualStatus         QualStatus        `json:"qual_status"`
	Gender             Gender            `json:"gender"`
	IssueAge           int               `json:"issue_age"`
	InitialPremium     decimal.Decimal   `json:"initial_premium"`
	InitialBenefitBase decimal.Decimal   `json:"initial_benefit_base"`
	InitialPols        decimal.Decimal   `json:"initial_pols"`
	BenefitBaseBucket  BenefitBaseBucket `json:"benefit_base_bucket"`
	CreditingStrategy  CreditingStrategy `json:"crediting_strategy"`
	SCPeriod           int               `json:"sc_period"`
	ValRate            decimal.Decimal   `json:"val_rate"`
	MGIR               decimal.Decimal   `json:"mgir"`
	Bonus              decimal.Decimal   `json:"bonus"`
	RollupType         RollupType        `json:"rollup_type"`
	DurationMonths     int               `json:"duration_months"`
	IncomeActivated    bool              `json:"income_activated"`
	GLWBStartYear      int               `json:"glwb_start_year"`

	// CurrentAV/CurrentBenefitBase override the initials when projecting an
	// existing inforce mid-life. Nil means "use the initial values".
	CurrentAV          *decimal.Decimal `json:"current_av,omitempty"`
	CurrentBenefitBase *decimal.Decimal `json:"current_benefit_base,omitempty"`
}

// StartingAV returns the account value the projection should start from:
// CurrentAV if set, else InitialPremium.
func (p Policy) StartingAV() decimal.Decimal {
	if p.CurrentAV != nil {
		return *p.CurrentAV
	}
	return p.InitialPremium
}

// StartingBenefitBase returns the benefit base the projection should start
// from: CurrentBenefitBase if set, else InitialBenefitBase.
func (p Policy) StartingBenefitBase() decimal.Decimal {
	if p.CurrentBenefitBase != nil {
		return *p.CurrentBenefitBase
	}
	return p.InitialBenefitBase
}

const (
	minIssueAge = 40
	maxIssueAge = 80
)

// Validate checks the per-policy invariants spec §7 requires before
// projection can start, against the product's issue threshold. It returns a
// *ValidationError, never a bare error, so callers can type-switch on
// PolicyID.
func (p Policy) Validate(minPremium decimal.Decimal) error {
	if p.IssueAge < minIssueAge || p.IssueAge > maxIssueAge {
		return &ValidationError{PolicyID: p.ID, Field: "issue_age", Message: fmt.Sprintf("issue_age %d outside [%d,%d]", p.IssueAge, minIssueAge, maxIssueAge)}
	}
	if p.InitialPremium.LessThan(minPremium) {
		return &ValidationError{PolicyID: p.ID, Field: "initial_premium", Message: fmt.Sprintf("initial_premium below minimum %s", minPremium.String())}
	}
	if p.InitialPremium.IsNegative() || p.InitialBenefitBase.IsNegative() {
		return &ValidationError{PolicyID: p.ID, Field: "balances", Message: "negative balance"}
	}
	if p.GLWBStartYear == 0 {
		return &ValidationError{PolicyID: p.ID, Field: "glwb_start_year", Message: "glwb_start_year must be >=1 or the 99 sentinel"}
	}
	if !p.QualStatus.IsValid() {
		return &ValidationError{PolicyID: p.ID, Field: "qual_status", Message: "unknown qual_status"}
	}
	if !p.Gender.IsValid() {
		return &ValidationError{PolicyID: p.ID, Field: "gender", Message: "unknown gender"}
	}
	if !p.CreditingStrategy.IsValid() {
		return &ValidationError{PolicyID: p.ID, Field: "crediting_strategy", Message: "unknown crediting_strategy"}
	}
	if !p.RollupType.IsValid() {
		return &ValidationError{PolicyID: p.ID, Field: "rollup_type", Message: "unknown rollup_type"}
	}
	return nil
}
