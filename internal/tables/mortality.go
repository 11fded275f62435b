// Package tables holds the pure, data-driven assumption lookups the
// projection engine consumes (spec §4.1): mortality, surrender charge, RMD,
// free-withdrawal utilization, GLWB payout factors. Every table here is a
// plain value — no interior mutability — so it can be shared read-only
// across the block aggregator's worker goroutines and swapped out by a
// loader without touching the engine.
package tables

import (
	"math"

	"github.com/shopspring/decimal"
)

// MortalityTable holds annual mortality rates q(age, gender). It is a plain
// 2D lookup, grounded on the age-keyed map/slice convention used throughout
// the retrieved actuarial examples (e.g. the uniform-lifetime-table idiom).
type MortalityTable struct {
	Male   map[int]decimal.Decimal
	Female map[int]decimal.Decimal
}

// AnnualQ returns the annual mortality rate for attained age and gender. Ages
// beyond the table's range return the nearest endpoint rate rather than
// panicking (spec §4.1: out-of-table lookups return documented defaults).
func (t MortalityTable) AnnualQ(age int, gender string) decimal.Decimal {
	table := t.Male
	if gender == "Female" {
		table = t.Female
	}
	if len(table) == 0 {
		return decimal.Zero
	}
	if q, ok := table[age]; ok {
		return q
	}
	minAge, maxAge := tableBounds(table)
	if age < minAge {
		return table[minAge]
	}
	return table[maxAge]
}

func tableBounds(table map[int]decimal.Decimal) (min, max int) {
	first := true
	for age := range table {
		if first {
			min, max = age, age
			first = false
			continue
		}
		if age < min {
			min = age
		}
		if age > max {
			max = age
		}
	}
	return
}

// DefaultMortalityTable returns a small illustrative SOA-style mortality
// table spanning issue ages 40-80 projected out to age 120. It is a
// reasonable standalone default; production use is expected to supply a
// loaded table via internal/config.
func DefaultMortalityTable() MortalityTable {
	male := map[int]decimal.Decimal{}
	female := map[int]decimal.Decimal{}
	for age := 40; age <= 120; age++ {
		male[age] = decimal.NewFromFloat(baseQ(age, 1.0))
		female[age] = decimal.NewFromFloat(baseQ(age, 0.55))
	}
	return MortalityTable{Male: male, Female: female}
}

// baseQ is a Gompertz-style smooth mortality curve used only to seed the
// illustrative default table; it is not a regulatory table.
func baseQ(age int, genderFactor float64) float64 {
	x := float64(age - 40)
	q := 0.0008 * genderFactor * math.Pow(1.085, x)
	if q > 1 {
		q = 1
	}
	return q
}
