package tables

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSurrenderChargeSchedule_S1(t *testing.T) {
	sc := Default10YearSurrenderChargeSchedule()
	assert.True(t, decimal.NewFromFloat(0.09).Equal(sc.Rate(1)))
	assert.True(t, decimal.NewFromFloat(0.06).Equal(sc.Rate(5)))
	assert.True(t, decimal.NewFromFloat(0.01).Equal(sc.Rate(10)))
	assert.True(t, decimal.Zero.Equal(sc.Rate(11)))
}

func TestPayoutFactors_S2(t *testing.T) {
	p := DefaultPayoutFactors()
	assert.True(t, decimal.NewFromFloat(0.046).Equal(p.Rate(52)))
	assert.True(t, decimal.NewFromFloat(0.0605).Equal(p.Rate(65)))
	assert.True(t, decimal.NewFromFloat(0.0745).Equal(p.Rate(77)))
	assert.True(t, decimal.NewFromFloat(0.0895).Equal(p.Rate(90)))
}

func TestRmdTable_S3(t *testing.T) {
	r := DefaultRmdTable()
	assert.True(t, decimal.Zero.Equal(r.Rate(70)))

	got73, _ := r.Rate(73).Float64()
	assert.InDelta(t, 0.0377358491, got73, 1e-6)

	got85, _ := r.Rate(85).Float64()
	assert.InDelta(t, 0.0625, got85, 1e-6)
}

func TestMortalityTable_OutOfRangeClampsToEndpoint(t *testing.T) {
	m := DefaultMortalityTable()
	assert.True(t, m.AnnualQ(30, "Male").Equal(m.AnnualQ(40, "Male")))
	assert.True(t, m.AnnualQ(200, "Female").Equal(m.AnnualQ(120, "Female")))
}

func TestFreeWithdrawalUtilization_ExtrapolatesLastValue(t *testing.T) {
	u := DefaultFreeWithdrawalUtilization()
	last := u.Utilization(len(u.ByYear))
	assert.True(t, last.Equal(u.Utilization(len(u.ByYear)+50)))
}
