package domain

import "github.com/shopspring/decimal"

// CommissionAmortizationSchedule records the first-year commission streams
// paid on a policy so the chargeback computation (spec §4.6) can recover
// the original components at lapse without recomputing age-based rates
// from (possibly stale) current tables.
type CommissionAmortizationSchedule struct {
	Agent                decimal.Decimal
	IMONet               decimal.Decimal
	IMOConversion        decimal.Decimal
	WholesalerNet        decimal.Decimal
	WholesalerConversion decimal.Decimal
	Bonus                decimal.Decimal // paid at month 13, not charged back
}

// Total returns the sum of the chargeback-eligible commission streams
// (everything except the month-13 bonus, which is outside the policy-year-1
// chargeback window by construction).
func (s CommissionAmortizationSchedule) Total() decimal.Decimal {
	return s.Agent.Add(s.IMONet).Add(s.IMOConversion).Add(s.WholesalerNet).Add(s.WholesalerConversion)
}

// ProjectionState is the mutable per-policy accumulator the engine steps
// forward one month at a time. Exactly one goroutine owns one ProjectionState
// for the lifetime of one policy's projection (spec §5) — no synchronization
// is needed on this type.
type ProjectionState struct {
	AV              decimal.Decimal
	BenefitBase     decimal.Decimal
	Lives           decimal.Decimal
	PolicyMonth     int // 1-based
	IncomeActivated bool

	// InitialBBForRollup is the benefit base at policy inception, used by the
	// simple-rollup path (monthly increment = InitialBBForRollup * rate/12),
	// which is independent of the current benefit base and so cannot be
	// derived from BenefitBase alone once compounding/withdrawals diverge it.
	InitialBBForRollup decimal.Decimal

	Commissions CommissionAmortizationSchedule
}

// PolicyYear returns the 1-based policy year for the current PolicyMonth.
func (s ProjectionState) PolicyYear() int {
	return (s.PolicyMonth-1)/12 + 1
}

// AttainedAge returns the attained age for the current PolicyMonth given the
// policy's issue age.
func (s ProjectionState) AttainedAge(issueAge int) int {
	return issueAge + (s.PolicyMonth-1)/12
}

// CashflowRow is the single per-(policy, month) output record (spec §6).
// All decrement/credit amounts are already weighted by BOP lives (block
// dollars), matching the CSV this struct feeds.
type CashflowRow struct {
	PolicyID             uint32
	ProjectionMonth      int
	PolicyYear           int
	AttainedAge          int
	BOPAV                decimal.Decimal
	BOPBenefitBase       decimal.Decimal
	Lives                decimal.Decimal
	FinalMortality       decimal.Decimal
	FinalLapseRate       decimal.Decimal
	NonSystematicPWDRate decimal.Decimal
	RiderChargeRate      decimal.Decimal
	MortalityDec         decimal.Decimal
	LapseDec             decimal.Decimal
	PWDDec               decimal.Decimal
	RiderChargesDec      decimal.Decimal
	SurrenderChargesDec  decimal.Decimal
	InterestCreditsDec   decimal.Decimal
	EOPAV                decimal.Decimal
	Expenses             decimal.Decimal
	AgentCommission      decimal.Decimal
	IMOOverride          decimal.Decimal
	WholesalerOverride   decimal.Decimal
	BonusComp            decimal.Decimal
	Chargebacks          decimal.Decimal
	HedgeGains           decimal.Decimal
	TotalNetCashflow     decimal.Decimal
}

// ComputeTotalNetCashflow fills TotalNetCashflow as the insurer's net cash
// position for the month: revenue-like decrements and chargebacks in,
// interest credited and commissions out.
func (r *CashflowRow) ComputeTotalNetCashflow() {
	r.TotalNetCashflow = r.SurrenderChargesDec.
		Add(r.Expenses).
		Add(r.RiderChargesDec).
		Add(r.Chargebacks).
		Add(r.HedgeGains).
		Sub(r.InterestCreditsDec).
		Sub(r.AgentCommission).
		Sub(r.IMOOverride).
		Sub(r.WholesalerOverride).
		Sub(r.BonusComp)
}
