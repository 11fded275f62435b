package tables

import "github.com/shopspring/decimal"

// PayoutBand is an inclusive [Min,Max] attained-age band mapping to a GLWB
// payout factor (annual withdrawal = benefit_base * factor).
type PayoutBand struct {
	Min, Max int
	Rate     decimal.Decimal
}

// PayoutFactors holds the age-banded GLWB payout schedule. Lookup returns
// the band containing attained_age; ages below the minimum activation age
// return zero (handled by the caller, which gates on activation), ages
// above the last band return the fallback rate (spec §4.1: 0.09 fallback).
type PayoutFactors struct {
	Bands    []PayoutBand
	Fallback decimal.Decimal
}

// Rate returns the payout factor for attained age.
func (p PayoutFactors) Rate(age int) decimal.Decimal {
	for _, b := range p.Bands {
		if age >= b.Min && age <= b.Max {
			return b.Rate
		}
	}
	if len(p.Bands) > 0 && age > p.Bands[len(p.Bands)-1].Max {
		return p.Fallback
	}
	return decimal.Zero
}

// DefaultPayoutFactors matches spec §8 S2: age 52 -> 0.046, 65 -> 0.0605,
// 77 -> 0.0745, 90 -> 0.0895.
func DefaultPayoutFactors() PayoutFactors {
	band := func(min, max int, rate float64) PayoutBand {
		return PayoutBand{Min: min, Max: max, Rate: decimal.NewFromFloat(rate)}
	}
	return PayoutFactors{
		Bands: []PayoutBand{
			band(50, 54, 0.046),
			band(55, 59, 0.050),
			band(60, 64, 0.055),
			band(65, 69, 0.0605),
			band(70, 74, 0.0675),
			band(75, 79, 0.0745),
			band(80, 84, 0.0815),
			band(85, 89, 0.0865),
			band(90, 120, 0.0895),
		},
		Fallback: decimal.NewFromFloat(0.09),
	}
}
