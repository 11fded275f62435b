package tables

import "github.com/shopspring/decimal"

// SurrenderChargeSchedule is indexed by policy year (1-based); year 0 and
// years beyond the schedule's length return zero (spec §4.1).
type SurrenderChargeSchedule struct {
	RatesByYear []decimal.Decimal // index 0 = policy year 1
}

// Rate returns the surrender charge rate for the given 1-based policy year.
func (s SurrenderChargeSchedule) Rate(policyYear int) decimal.Decimal {
	idx := policyYear - 1
	if idx < 0 || idx >= len(s.RatesByYear) {
		return decimal.Zero
	}
	return s.RatesByYear[idx]
}

// Max returns the largest scheduled rate, used by the invariant
// surrender_charges_dec <= lapse_dec * max_sc_rate (spec §8).
func (s SurrenderChargeSchedule) Max() decimal.Decimal {
	max := decimal.Zero
	for _, r := range s.RatesByYear {
		if r.GreaterThan(max) {
			max = r
		}
	}
	return max
}

// Default10YearSurrenderChargeSchedule matches spec §8 reference scenario S1:
// year 1 = 0.09, declining to year 10 = 0.01, year 11+ = 0.
func Default10YearSurrenderChargeSchedule() SurrenderChargeSchedule {
	rates := []float64{0.09, 0.08, 0.07, 0.065, 0.06, 0.05, 0.04, 0.03, 0.02, 0.01}
	out := make([]decimal.Decimal, len(rates))
	for i, r := range rates {
		out[i] = decimal.NewFromFloat(r)
	}
	return SurrenderChargeSchedule{RatesByYear: out}
}
