package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommissionAssumptions_AgeThresholdSplit(t *testing.T) {
	c := DefaultCommissionAssumptions()

	assert.True(t, c.AgentRate(70).Equal(c.AgentRatePre))
	assert.True(t, c.AgentRate(75).Equal(c.AgentRatePost))
	assert.True(t, c.AgentRate(80).Equal(c.AgentRatePost))

	assert.True(t, c.IMOGrossRate(70).Equal(c.IMOGrossRatePre))
	assert.True(t, c.WholesalerGrossRate(80).Equal(c.WholesalerGrossRatePost))
	assert.True(t, c.BonusRate(80).Equal(c.BonusRatePost))
}

func TestCommissionAssumptions_ChargebackFactor(t *testing.T) {
	c := DefaultCommissionAssumptions()

	assert.True(t, c.ChargebackFactor(1, 1).Equal(c.ChargebackFactor(6, 1)))
	assert.Equal(t, "1", c.ChargebackFactor(6, 1).String())
	assert.Equal(t, "0.5", c.ChargebackFactor(7, 1).String())
	assert.Equal(t, "0.5", c.ChargebackFactor(12, 1).String())
	assert.True(t, c.ChargebackFactor(13, 1).IsZero())
	assert.True(t, c.ChargebackFactor(1, 2).IsZero())
}

func TestDefaultAssumptions_Composition(t *testing.T) {
	a := DefaultAssumptions()

	assert.Nil(t, a.Hedge)
	assert.Equal(t, 75, a.Commission.AgeThreshold)
	assert.Equal(t, 50, a.Glwb.MinActivationAge)
	assert.Equal(t, 10, a.Glwb.RollupYears)
	assert.False(t, a.Lapse.Base.Year1Base[BucketUnder50k].IsZero())
}

func TestHedgeParams_NilDisablesReporting(t *testing.T) {
	a := DefaultAssumptions()
	assert.Nil(t, a.Hedge)

	a.Hedge = &HedgeParams{HedgeCostRate: a.BaseProduct.ExpenseRateOfAV}
	assert.NotNil(t, a.Hedge)
}
