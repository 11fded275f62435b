package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/domain"
)

// annualPwdRate builds the annual non-systematic partial-withdrawal rate
// (spec §4.3).
func annualPwdRate(a *domain.Assumptions, policy *domain.Policy, policyYear, attainedAge int, incomeActivated bool) decimal.Decimal {
	if incomeActivated {
		return decimal.Zero
	}

	freePct := a.BaseProduct.FreeWithdrawalPct
	qualified := policy.QualStatus == domain.Qualified
	rmd := a.Rmd.Rate(attainedAge)

	var fpwPct decimal.Decimal
	switch {
	case policyYear == 1:
		if qualified {
			fpwPct = rmd
		} else {
			fpwPct = decimal.Zero
		}
	default:
		if qualified {
			fpwPct = decimal.Max(freePct, rmd)
		} else {
			fpwPct = freePct
		}
	}

	utilization := a.FreeWithdrawalUtil.Utilization(policyYear)
	return fpwPct.Mul(utilization)
}

// monthlyPwdRate converts the annual PWD rate to a monthly decrement rate:
// monthly_pwd = 1 - (1 - annual_pwd)^(1/12). Policy year 1 forces the
// monthly rate to 0 regardless of the annual formula (spec §4.3 step 6,
// §9 Open Question: a deliberate business-rule override, not a bug).
func monthlyPwdRate(a *domain.Assumptions, policy *domain.Policy, policyYear, attainedAge int, incomeActivated bool) decimal.Decimal {
	if policyYear == 1 {
		return decimal.Zero
	}
	annual := annualPwdRate(a, policy, policyYear, attainedAge, incomeActivated)
	annualF, _ := annual.Float64()
	monthly := 1 - math.Pow(1-annualF, 1.0/12.0)
	return decimal.NewFromFloat(monthly)
}
