package domain

import (
	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/tables"
)

// GlwbFeatures bundles the product parameters governing rollup, rider
// charge, activation, and payout (spec §4.4).
type GlwbFeatures struct {
	MinActivationAge     int
	RollupRate           decimal.Decimal // annual
	RollupYears          int
	PreActivationCharge  decimal.Decimal // annual rate of BB
	PostActivationCharge decimal.Decimal // annual rate of BB
	Payout               tables.PayoutFactors
}

// DefaultGlwbFeatures matches spec §8 S6: monthly_rollup_factor(1,false) =
// 1+0.10/12, so RollupRate = 0.10.
func DefaultGlwbFeatures() GlwbFeatures {
	return GlwbFeatures{
		MinActivationAge:     50,
		RollupRate:           decimal.NewFromFloat(0.10),
		RollupYears:          10,
		PreActivationCharge:  decimal.NewFromFloat(0.005),
		PostActivationCharge: decimal.NewFromFloat(0.015),
		Payout:               tables.DefaultPayoutFactors(),
	}
}

// BaseProductFeatures holds the non-GLWB product parameters (spec §3).
// MinPremium is the issue threshold enforced by Policy.Validate (spec §7).
type BaseProductFeatures struct {
	FreeWithdrawalPct decimal.Decimal
	ExpenseRateOfAV   decimal.Decimal // annual
	MinPremium        decimal.Decimal
}

func DefaultBaseProductFeatures() BaseProductFeatures {
	return BaseProductFeatures{
		FreeWithdrawalPct: decimal.NewFromFloat(0.05),
		ExpenseRateOfAV:   decimal.NewFromFloat(0.0015),
		MinPremium:        decimal.NewFromInt(25_000),
	}
}

// CommissionAssumptions holds the age-split commission/chargeback schedule
// (spec §4.6). AgentRate, IMOGrossRate, WholesalerGrossRate, and BonusRate
// each apply the Pre rate below AgeThreshold and the Post rate at or above
// it.
type CommissionAssumptions struct {
	AgeThreshold int

	AgentRatePre  decimal.Decimal
	AgentRatePost decimal.Decimal

	IMOGrossRatePre  decimal.Decimal
	IMOGrossRatePost decimal.Decimal
	IMOConversion    decimal.Decimal

	WholesalerGrossRatePre  decimal.Decimal
	WholesalerGrossRatePost decimal.Decimal
	WholesalerConversion    decimal.Decimal

	BonusRatePre  decimal.Decimal
	BonusRatePost decimal.Decimal
}

// AgentRate returns the agent commission rate for the given issue age.
func (c CommissionAssumptions) AgentRate(issueAge int) decimal.Decimal {
	if issueAge >= c.AgeThreshold {
		return c.AgentRatePost
	}
	return c.AgentRatePre
}

// IMOGrossRate returns the IMO gross commission rate for the given issue age.
func (c CommissionAssumptions) IMOGrossRate(issueAge int) decimal.Decimal {
	if issueAge >= c.AgeThreshold {
		return c.IMOGrossRatePost
	}
	return c.IMOGrossRatePre
}

// WholesalerGrossRate returns the wholesaler gross commission rate for the
// given issue age.
func (c CommissionAssumptions) WholesalerGrossRate(issueAge int) decimal.Decimal {
	if issueAge >= c.AgeThreshold {
		return c.WholesalerGrossRatePost
	}
	return c.WholesalerGrossRatePre
}

// BonusRate returns the month-13 persistency bonus rate for the given issue
// age.
func (c CommissionAssumptions) BonusRate(issueAge int) decimal.Decimal {
	if issueAge >= c.AgeThreshold {
		return c.BonusRatePost
	}
	return c.BonusRatePre
}

// ChargebackFactor returns the fraction of first-year commissions the
// insurer recovers when a policy lapses in the given policy month/year
// (spec §4.6): 100% in months 1-6, 50% in months 7-12, 0% thereafter.
func (c CommissionAssumptions) ChargebackFactor(policyMonth, policyYear int) decimal.Decimal {
	if policyYear > 1 {
		return decimal.Zero
	}
	switch {
	case policyMonth <= 6:
		return decimal.NewFromInt(1)
	case policyMonth <= 12:
		return decimal.NewFromFloat(0.5)
	default:
		return decimal.Zero
	}
}

// DefaultCommissionAssumptions matches spec §8 S7: premium $100k, age 70 ->
// agent $7,000 (rate 0.07, below the age-75 threshold); age 80 -> agent
// $4,500 (rate 0.045, at/above threshold).
func DefaultCommissionAssumptions() CommissionAssumptions {
	return CommissionAssumptions{
		AgeThreshold: 75,

		AgentRatePre:  decimal.NewFromFloat(0.07),
		AgentRatePost: decimal.NewFromFloat(0.045),

		IMOGrossRatePre:  decimal.NewFromFloat(0.02),
		IMOGrossRatePost: decimal.NewFromFloat(0.015),
		IMOConversion:    decimal.NewFromFloat(0.20),

		WholesalerGrossRatePre:  decimal.NewFromFloat(0.01),
		WholesalerGrossRatePost: decimal.NewFromFloat(0.0075),
		WholesalerConversion:    decimal.NewFromFloat(0.15),

		BonusRatePre:  decimal.NewFromFloat(0.01),
		BonusRatePost: decimal.NewFromFloat(0.005),
	}
}

// HedgeParams parametrizes the hedge-gain offset applied to Indexed
// policies on anniversary months (spec §4.6, §9 Open Question 1: a single
// engine exposes this as an optional field rather than a second runner).
type HedgeParams struct {
	HedgeCostRate decimal.Decimal // fraction of the indexed credit consumed by hedge cost
}

// LapseModel bundles the base schedule and dynamic ITM response used by the
// lapse component (spec §4.2).
type LapseModel struct {
	Base                  LapseBaseSchedule
	DynamicFactorActive   decimal.Decimal
	DynamicFactorInactive decimal.Decimal
}

func DefaultLapseModel() LapseModel {
	return LapseModel{
		Base:                  DefaultLapseBaseSchedule(),
		DynamicFactorInactive: decimal.NewFromFloat(0.90),
		DynamicFactorActive:   decimal.NewFromFloat(0.35),
	}
}

// Assumptions is the read-only bundle shared across every worker in the
// block aggregator (spec §3, §5). Nothing in this struct is mutated once
// built; per-policy mutable state lives in ProjectionState instead.
type Assumptions struct {
	Mortality          tables.MortalityTable
	Lapse              LapseModel
	SurrenderCharges   tables.SurrenderChargeSchedule
	Rmd                tables.RmdTable
	FreeWithdrawalUtil tables.FreeWithdrawalUtilization
	Glwb               GlwbFeatures
	BaseProduct        BaseProductFeatures
	Commission         CommissionAssumptions
	Hedge              *HedgeParams // nil disables hedge-gain reporting
}

// DefaultAssumptions builds the illustrative assumption bundle used when no
// side CSVs are supplied (internal/config loaders override individual
// tables without touching this shape).
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Mortality:          tables.DefaultMortalityTable(),
		Lapse:              DefaultLapseModel(),
		SurrenderCharges:   tables.Default10YearSurrenderChargeSchedule(),
		Rmd:                tables.DefaultRmdTable(),
		FreeWithdrawalUtil: tables.DefaultFreeWithdrawalUtilization(),
		Glwb:               DefaultGlwbFeatures(),
		BaseProduct:        DefaultBaseProductFeatures(),
		Commission:         DefaultCommissionAssumptions(),
		Hedge:              nil,
	}
}
