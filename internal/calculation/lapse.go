package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/domain"
)

// epsilon guards against division by zero when av has decremented to 0;
// used wherever a ratio is taken against an account value (spec §4.7 step 3).
var epsilon = decimal.New(1, -9)

// lapseLogOdds implements the base-plus-dynamic log-odds lapse contract
// (spec §4.2): lp = base(policy_year, income_activated, bucket, sc_period) +
// dynamic(itm, income_activated). The dynamic term is zero at itm <= 1 and
// grows more negative (suppressing lapse) as itm rises above 1, weaker once
// income is activated.
func lapseLogOdds(model domain.LapseModel, policyYear int, incomeActivated bool, bucket domain.BenefitBaseBucket, scPeriod int, itm decimal.Decimal) decimal.Decimal {
	base := model.Base.Base(policyYear, incomeActivated, bucket, scPeriod)
	dyn := dynamicLapseComponent(model, incomeActivated, itm)
	return base.Add(dyn)
}

func dynamicLapseComponent(model domain.LapseModel, incomeActivated bool, itm decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if itm.LessThanOrEqual(one) {
		return decimal.Zero
	}
	factor := model.DynamicFactorInactive
	if incomeActivated {
		factor = model.DynamicFactorActive
	}
	itmF, _ := itm.Float64()
	logTerm := math.Log(itmF)
	return factor.Neg().Mul(decimal.NewFromFloat(logTerm))
}

// monthlyLapseRate converts the log-odds lapse rate to the monthly
// decrement rate: monthly_lapse_rate = min(exp(lp), 1) (spec §4.2 contract).
// A fixed_lapse_rate override (ProjectionConfig) bypasses the model
// entirely when set.
func monthlyLapseRate(model domain.LapseModel, policyYear int, incomeActivated bool, bucket domain.BenefitBaseBucket, scPeriod int, itm decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	lp := lapseLogOdds(model, policyYear, incomeActivated, bucket, scPeriod, itm)
	lpF, _ := lp.Float64()
	rate := decimal.NewFromFloat(math.Exp(lpF))
	one := decimal.NewFromInt(1)
	if rate.GreaterThan(one) {
		return one
	}
	return rate
}

// itmRatio computes benefit_base / av, returning 0 when av is (effectively)
// zero (spec §4.7 step 3: "itm = 0 if av == 0").
func itmRatio(benefitBase, av decimal.Decimal) decimal.Decimal {
	if av.LessThanOrEqual(epsilon) {
		return decimal.Zero
	}
	return benefitBase.Div(av)
}
