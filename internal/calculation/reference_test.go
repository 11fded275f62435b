package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fia-glwb/block-projector/internal/domain"
)

func TestLapseLogOdds_S5(t *testing.T) {
	model := domain.DefaultLapseModel()
	lp := lapseLogOdds(model, 1, false, domain.BucketUnder50k, 10, decimal.NewFromFloat(1.3))
	lpF, _ := lp.Float64()
	assert.InDelta(t, -5.35992714, lpF, 1e-6)
}

func TestAnnualPwdRate_S4(t *testing.T) {
	a := domain.DefaultAssumptions()
	policy := &domain.Policy{QualStatus: domain.Qualified}
	rate := annualPwdRate(&a, policy, 4, 85, false)
	rateF, _ := rate.Float64()
	assert.InDelta(t, 0.025, rateF, 1e-3)
}

func TestMonthlyRollupFactor_S6(t *testing.T) {
	glwb := domain.DefaultGlwbFeatures()

	f1, _ := monthlyRollupFactor(glwb, 1, false).Float64()
	assert.InDelta(t, 1+0.10/12, f1, 1e-9)

	f11, _ := monthlyRollupFactor(glwb, 11, false).Float64()
	assert.Equal(t, 1.0, f11)

	f1Activated, _ := monthlyRollupFactor(glwb, 1, true).Float64()
	assert.Equal(t, 1.0, f1Activated)
}

func TestCommission_S7(t *testing.T) {
	c := domain.DefaultCommissionAssumptions()
	premium := decimal.NewFromInt(100_000)

	agent70 := issueCommissions(c, 70, premium).Agent
	agent70F, _ := agent70.Float64()
	assert.Equal(t, 7000.0, agent70F)

	agent80 := issueCommissions(c, 80, premium).Agent
	agent80F, _ := agent80.Float64()
	assert.Equal(t, 4500.0, agent80F)

	assert.True(t, decimal.NewFromInt(1).Equal(c.ChargebackFactor(3, 1)))
	assert.True(t, decimal.NewFromFloat(0.5).Equal(c.ChargebackFactor(9, 1)))
	assert.True(t, decimal.Zero.Equal(c.ChargebackFactor(13, 2)))
}
