package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fia-glwb/block-projector/internal/domain"
)

func TestAggregator_SumsAcrossBlock(t *testing.T) {
	a := fixtureAssumptions()
	eng := NewEngine(&a, EngineConfig{ProjectionMonths: 24, Crediting: CreditingPolicyBased, DetailedOutput: true}, nil)
	agg := NewAggregator(eng)

	policies := []domain.Policy{
		fixturePolicy(1, domain.Fixed, domain.Compound),
		fixturePolicy(2, domain.Indexed, domain.Simple),
	}

	result := agg.Run(policies)
	require.Empty(t, result.Failures)
	require.Len(t, result.Monthly, 24)
	require.Len(t, result.Detail, 48)

	month1 := result.Monthly[0]
	expectedBOPAV := policies[0].InitialPremium.Add(policies[1].InitialPremium)
	assert.True(t, month1.BOPAV.Equal(expectedBOPAV))

	expectedLives := policies[0].InitialPols.Add(policies[1].InitialPols)
	assert.True(t, month1.Lives.LessThanOrEqual(expectedLives))
}

func TestAggregator_ExcludesInvalidPolicies(t *testing.T) {
	a := fixtureAssumptions()
	eng := NewEngine(&a, EngineConfig{ProjectionMonths: 12, Crediting: CreditingPolicyBased}, nil)
	agg := NewAggregator(eng)

	bad := fixturePolicy(99, domain.Fixed, domain.Compound)
	bad.IssueAge = 5

	policies := []domain.Policy{
		fixturePolicy(1, domain.Fixed, domain.Compound),
		bad,
	}

	result := agg.Run(policies)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, uint32(99), result.Failures[0].PolicyID)
	assert.Len(t, result.Monthly, 12)
}

// TestAggregator_BlockEndToEnd runs a synthetic multi-cell block over the
// full default horizon: month-1 BOP AV must equal total premium, month-1
// lives must equal aggregate initial pols, and the block must still carry
// lives at the 30-year horizon (spec §8 "Block end-to-end").
func TestAggregator_BlockEndToEnd(t *testing.T) {
	a := fixtureAssumptions()
	eng := NewEngine(&a, DefaultEngineConfig(), nil)
	agg := NewAggregator(eng)

	genders := []domain.Gender{domain.Male, domain.Female}
	quals := []domain.QualStatus{domain.Qualified, domain.NonQualified}
	policies := make([]domain.Policy, 0, 48)
	for i := uint32(1); i <= 48; i++ {
		p := fixturePolicy(i, domain.Fixed, domain.Compound)
		if i%2 == 0 {
			p.CreditingStrategy = domain.Indexed
			p.RollupType = domain.Simple
		}
		p.Gender = genders[i%2]
		p.QualStatus = quals[(i/2)%2]
		p.IssueAge = 45 + int(i%30)
		p.InitialPols = decimal.NewFromFloat(0.5).Add(decimal.NewFromInt(int64(i % 3)))
		policies = append(policies, p)
	}

	var totalPremium, totalPols decimal.Decimal
	for _, p := range policies {
		totalPremium = totalPremium.Add(p.InitialPremium.Mul(p.InitialPols))
		totalPols = totalPols.Add(p.InitialPols)
	}

	result := agg.Run(policies)
	require.Empty(t, result.Failures)
	require.Len(t, result.Monthly, 360)

	month1 := result.Monthly[0]
	assert.True(t, month1.BOPAV.Equal(totalPremium), "month-1 BOP AV should equal total premium")
	assert.True(t, month1.Lives.Equal(totalPols), "month-1 lives should equal aggregate initial pols")

	month360 := result.Monthly[359]
	assert.True(t, month360.Lives.GreaterThan(decimal.Zero), "block should not fully decrement by month 360")
}

func TestAggregator_DeterministicAcrossRuns(t *testing.T) {
	a := fixtureAssumptions()
	eng := NewEngine(&a, EngineConfig{ProjectionMonths: 36, Crediting: CreditingPolicyBased}, nil)
	agg := NewAggregator(eng)

	policies := make([]domain.Policy, 0, 20)
	for i := uint32(1); i <= 20; i++ {
		credit := domain.Fixed
		if i%2 == 0 {
			credit = domain.Indexed
		}
		policies = append(policies, fixturePolicy(i, credit, domain.Compound))
	}

	r1 := agg.Run(policies)
	r2 := agg.Run(policies)
	require.Equal(t, len(r1.Monthly), len(r2.Monthly))
	for i := range r1.Monthly {
		assert.True(t, r1.Monthly[i].BOPAV.Equal(r2.Monthly[i].BOPAV))
		assert.True(t, r1.Monthly[i].TotalNetCashflow.Equal(r2.Monthly[i].TotalNetCashflow))
	}
}
