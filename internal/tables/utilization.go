package tables

import "github.com/shopspring/decimal"

// FreeWithdrawalUtilization maps policy year (1-based) to the fraction of
// the available free-withdrawal/RMD percentage policyholders are assumed to
// actually take. Years beyond the table extrapolate the last value
// (spec §4.1/§4.3).
type FreeWithdrawalUtilization struct {
	ByYear []decimal.Decimal // index 0 = policy year 1
}

// Utilization returns the utilization fraction for the given 1-based policy
// year.
func (u FreeWithdrawalUtilization) Utilization(policyYear int) decimal.Decimal {
	if len(u.ByYear) == 0 {
		return decimal.Zero
	}
	idx := policyYear - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(u.ByYear) {
		idx = len(u.ByYear) - 1
	}
	return u.ByYear[idx]
}

// DefaultFreeWithdrawalUtilization ramps from low early-duration utilization
// to a flat ultimate rate, a common industry-style shape: policyholders take
// more of their free amount as the contract ages and SC roll-off reduces
// hesitancy.
func DefaultFreeWithdrawalUtilization() FreeWithdrawalUtilization {
	rates := []float64{0.30, 0.35, 0.38, 0.40, 0.42, 0.45, 0.47, 0.48, 0.49, 0.50}
	ultimate := 0.55
	byYear := make([]decimal.Decimal, 0, 40)
	for _, r := range rates {
		byYear = append(byYear, decimal.NewFromFloat(r))
	}
	for len(byYear) < 40 {
		byYear = append(byYear, decimal.NewFromFloat(ultimate))
	}
	return FreeWithdrawalUtilization{ByYear: byYear}
}
