package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/domain"
)

// monthlyRollupFactor returns the Simple-rollup monthly factor: the per-month
// rate (factor-1) times initial_benefit_base is the flat monthly increment
// (spec §4.4). Rollup only applies while policy_year <= rollup_years and
// income is not yet activated; matches spec §8 S6: (1,false) = 1+0.10/12,
// (11,false) = 1.0, (1,true) = 1.0.
func monthlyRollupFactor(glwb domain.GlwbFeatures, policyYear int, incomeActivated bool) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if incomeActivated || policyYear > glwb.RollupYears {
		return one
	}
	return one.Add(glwb.RollupRate.Div(decimal.NewFromInt(12)))
}

// applyRollup advances benefit_base per the policy's RollupType (spec §4.4,
// §9 "keep them as separate code paths on a RollupType discriminant"):
// Compound multiplies by (1+rollup_rate)^(1/12); Simple adds a flat monthly
// increment anchored to the benefit base at issue
// (ProjectionState.InitialBBForRollup).
func applyRollup(glwb domain.GlwbFeatures, rollupType domain.RollupType, bb, initialBBForRollup decimal.Decimal, policyYear int, incomeActivated bool) decimal.Decimal {
	if incomeActivated || policyYear > glwb.RollupYears {
		return bb
	}
	switch rollupType {
	case domain.Compound:
		annualF, _ := glwb.RollupRate.Float64()
		return bb.Mul(decimal.NewFromFloat(math.Pow(1+annualF, 1.0/12.0)))
	case domain.Simple:
		monthlyRate := monthlyRollupFactor(glwb, policyYear, incomeActivated).Sub(decimal.NewFromInt(1))
		return bb.Add(initialBBForRollup.Mul(monthlyRate))
	default:
		return bb
	}
}

// riderChargeRate expresses the annual rider charge (pre- or
// post-activation) as a fraction of BOP AV, so it composes multiplicatively
// with the other monthly decrements (spec §4.7 step 3):
// rider_rate = (annual_rate/12) * bop_bb / max(bop_av, epsilon).
func riderChargeRate(glwb domain.GlwbFeatures, incomeActivated bool, bopAV, bopBB decimal.Decimal) decimal.Decimal {
	annual := glwb.PreActivationCharge
	if incomeActivated {
		annual = glwb.PostActivationCharge
	}
	denom := bopAV
	if denom.LessThanOrEqual(epsilon) {
		denom = epsilon
	}
	return annual.Div(decimal.NewFromInt(12)).Mul(bopBB).Div(denom)
}

// shouldActivate reports whether the GLWB should activate this month (spec
// §4.7 step 2): first month of policy_year == glwb_start_year, and attained
// age already at or above the activation floor.
func shouldActivate(policy *domain.Policy, glwb domain.GlwbFeatures, policyYear, monthOfYear, attainedAge int) bool {
	if policy.GLWBStartYear == domain.NeverActivates {
		return false
	}
	return policyYear == policy.GLWBStartYear && monthOfYear == 1 && attainedAge >= glwb.MinActivationAge
}

// payoutMonthlyWithdrawal returns the deterministic monthly AV decrement for
// an activated policy's guaranteed income (spec §4.4): benefit_base *
// payout_factor(attained_age) / 12.
func payoutMonthlyWithdrawal(glwb domain.GlwbFeatures, benefitBase decimal.Decimal, attainedAge int) decimal.Decimal {
	factor := glwb.Payout.Rate(attainedAge)
	return benefitBase.Mul(factor).Div(decimal.NewFromInt(12))
}
