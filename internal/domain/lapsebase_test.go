package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLapseBaseSchedule_RampStartsAtYear1(t *testing.T) {
	s := DefaultLapseBaseSchedule()
	base := s.Base(1, false, BucketUnder50k, 10)
	assert.True(t, decimal.NewFromFloat(-5.123799302).Equal(base))
}

func TestLapseBaseSchedule_UltimateBeyondShockYear(t *testing.T) {
	s := DefaultLapseBaseSchedule()
	base := s.Base(12, false, BucketUnder50k, 10)
	assert.True(t, s.UltimateBase[BucketUnder50k].Equal(base))
}

func TestLapseBaseSchedule_ActivationLowersBase(t *testing.T) {
	s := DefaultLapseBaseSchedule()
	inactive := s.Base(3, false, Bucket100to200k, 10)
	active := s.Base(3, true, Bucket100to200k, 10)
	assert.True(t, active.LessThan(inactive))
}

func TestLapseBaseSchedule_ShockYearSpikesThenDampens(t *testing.T) {
	s := DefaultLapseBaseSchedule()
	shock := s.Base(11, false, Bucket50to100k, 10)
	ultimate := s.Base(12, false, Bucket50to100k, 10)
	assert.True(t, shock.GreaterThan(ultimate), "shock-year base should exceed ultimate")

	dampened := s.Base(11, true, Bucket50to100k, 10)
	assert.True(t, dampened.LessThan(shock), "activation should dampen the shock spike")
}

func TestLapseBaseSchedule_SmallerBucketsLapseMore(t *testing.T) {
	s := DefaultLapseBaseSchedule()
	small := s.Base(5, false, BucketUnder50k, 10)
	large := s.Base(5, false, BucketOver500k, 10)
	assert.True(t, small.GreaterThan(large), "smaller benefit bases should carry higher (less negative) log-odds")
}
