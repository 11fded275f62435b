package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/domain"
)

// issueCommissions computes the first-year commission streams paid at
// policy_month == 1 on new business (spec §4.6). Matches spec §8 S7:
// premium $100k, age 70 -> agent $7,000; age 80 -> agent $4,500.
func issueCommissions(c domain.CommissionAssumptions, issueAge int, premium decimal.Decimal) domain.CommissionAmortizationSchedule {
	agent := premium.Mul(c.AgentRate(issueAge))

	imoGross := premium.Mul(c.IMOGrossRate(issueAge))
	imoConversion := imoGross.Mul(c.IMOConversion)
	imoNet := imoGross.Sub(imoConversion)

	wholesalerGross := premium.Mul(c.WholesalerGrossRate(issueAge))
	wholesalerConversion := wholesalerGross.Mul(c.WholesalerConversion)
	wholesalerNet := wholesalerGross.Sub(wholesalerConversion)

	return domain.CommissionAmortizationSchedule{
		Agent:                agent,
		IMONet:               imoNet,
		IMOConversion:        imoConversion,
		WholesalerNet:        wholesalerNet,
		WholesalerConversion: wholesalerConversion,
	}
}

// persistencyBonus computes the month-13 bonus, paid if the policy is still
// in force (spec §4.6): bop_av * bonus_rate(issue_age).
func persistencyBonus(c domain.CommissionAssumptions, issueAge int, bopAV decimal.Decimal) decimal.Decimal {
	return bopAV.Mul(c.BonusRate(issueAge))
}

// chargebackAmount computes the insurer's recovery of first-year
// commissions in proportion to the lapsed fractional lives (spec §4.6):
// sum(commissions_paid_at_issue) * chargeback_factor(month, year) *
// (lapse_dec / bop_av). lapseDec is block-weighted and bopAV is the
// per-policy snapshot, so the quotient is the expected lives lapsed this
// month.
func chargebackAmount(c domain.CommissionAssumptions, schedule domain.CommissionAmortizationSchedule, policyMonth, policyYear int, lapseDec, bopAV decimal.Decimal) decimal.Decimal {
	if bopAV.LessThanOrEqual(epsilon) {
		return decimal.Zero
	}
	factor := c.ChargebackFactor(policyMonth, policyYear)
	if factor.IsZero() {
		return decimal.Zero
	}
	lapsedFraction := lapseDec.Div(bopAV)
	return schedule.Total().Mul(factor).Mul(lapsedFraction)
}
