package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validPolicy() Policy {
	return Policy{
		ID:                 1,
		QualStatus:         Qualified,
		Gender:             Male,
		IssueAge:           55,
		InitialPremium:     decimal.NewFromInt(100_000),
		InitialBenefitBase: decimal.NewFromInt(130_000),
		InitialPols:        decimal.NewFromInt(1),
		BenefitBaseBucket:  Bucket100to200k,
		CreditingStrategy:  Fixed,
		SCPeriod:           10,
		ValRate:            decimal.NewFromFloat(0.03),
		MGIR:               decimal.NewFromFloat(0.01),
		RollupType:         Compound,
		GLWBStartYear:      5,
	}
}

func TestPolicy_ValidateRejectsOutOfRangeIssueAge(t *testing.T) {
	p := validPolicy()
	p.IssueAge = 90
	assert.Error(t, p.Validate(DefaultBaseProductFeatures().MinPremium))
}

func TestPolicy_ValidateRejectsPremiumBelowMinimum(t *testing.T) {
	p := validPolicy()
	p.InitialPremium = decimal.NewFromInt(10_000)
	err := p.Validate(DefaultBaseProductFeatures().MinPremium)
	assert.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "initial_premium", verr.Field)
}

func TestPolicy_ValidateRejectsZeroGlwbStartYear(t *testing.T) {
	p := validPolicy()
	p.GLWBStartYear = 0
	assert.Error(t, p.Validate(DefaultBaseProductFeatures().MinPremium))
}

func TestPolicy_ValidateAcceptsNeverActivatesSentinel(t *testing.T) {
	p := validPolicy()
	p.GLWBStartYear = NeverActivates
	assert.NoError(t, p.Validate(DefaultBaseProductFeatures().MinPremium))
}

func TestPolicy_StartingAVUsesOverrideWhenPresent(t *testing.T) {
	p := validPolicy()
	override := decimal.NewFromInt(75_000)
	p.CurrentAV = &override
	assert.True(t, p.StartingAV().Equal(override))
}

func TestPolicy_StartingAVFallsBackToInitialPremium(t *testing.T) {
	p := validPolicy()
	assert.True(t, p.StartingAV().Equal(p.InitialPremium))
}

func TestBucketForAmount(t *testing.T) {
	assert.Equal(t, BucketUnder50k, BucketForAmount(decimal.NewFromInt(10_000)))
	assert.Equal(t, Bucket50to100k, BucketForAmount(decimal.NewFromInt(75_000)))
	assert.Equal(t, Bucket100to200k, BucketForAmount(decimal.NewFromInt(150_000)))
	assert.Equal(t, Bucket200to500k, BucketForAmount(decimal.NewFromInt(300_000)))
	assert.Equal(t, BucketOver500k, BucketForAmount(decimal.NewFromInt(600_000)))
}
