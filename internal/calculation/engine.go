package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/domain"
)

var twelve = decimal.NewFromInt(12)

// CreditingMode selects how the engine resolves Fixed/Indexed annual
// crediting rates, mirroring ProjectionConfig's `crediting` union (spec §6).
type CreditingMode int

const (
	// CreditingPolicyBased derives rates from each policy's own ValRate/MGIR.
	CreditingPolicyBased CreditingMode = iota
	// CreditingOverride applies a single flat annual rate to every policy,
	// regardless of crediting strategy.
	CreditingOverride
)

// EngineConfig is the resolved runtime configuration the engine steps
// against (spec §6 ProjectionConfig, after the config-layer loader has
// parsed YAML into concrete values).
type EngineConfig struct {
	ProjectionMonths   int
	Crediting          CreditingMode
	OverrideAnnualRate decimal.Decimal
	// FixedAnnualRate/IndexedAnnualRate are the PolicyBased variant's
	// config-supplied rates, applied uniformly to every policy of the
	// matching CreditingStrategy (spec §6). Left zero, the engine falls
	// back to each policy's own ValRate/MGIR.
	FixedAnnualRate   decimal.Decimal
	IndexedAnnualRate decimal.Decimal
	DetailedOutput    bool
	// TreasuryChange shifts the PolicyBased annual crediting rate in
	// parallel, modeling a rate environment change (spec §6). An Override
	// rate is used as given, without this shift.
	TreasuryChange decimal.Decimal
	// FixedLapseRate, when set, overrides the lapse model entirely (spec §6).
	FixedLapseRate *decimal.Decimal
}

// DefaultEngineConfig returns the 360-month policy-based configuration
// (spec §6: projection_months default 360).
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ProjectionMonths: 360,
		Crediting:        CreditingPolicyBased,
	}
}

// Engine projects a single policy forward one month at a time. Assumptions
// is treated as an immutable, shared value (spec §5): a single Engine value
// can be reused concurrently by multiple goroutines so long as each call
// projects a different policy, since no mutable state is held on Engine
// itself.
type Engine struct {
	Assumptions *domain.Assumptions
	Config      EngineConfig
	Log         Logger
}

// NewEngine builds an Engine over a shared, read-only Assumptions bundle.
func NewEngine(assumptions *domain.Assumptions, config EngineConfig, log Logger) *Engine {
	if log == nil {
		log = NopLogger{}
	}
	return &Engine{Assumptions: assumptions, Config: config, Log: log}
}

// Project steps the policy forward Config.ProjectionMonths times, stopping
// early once lives decrement below 1e-12 (spec §4.7 termination rule), and
// emits one CashflowRow per month. Row numbering is the run's own month
// index (1-based from the projection start); policy year and attained age
// advance from the policy's DurationMonths, so a mid-life inforce aggregates
// onto the same calendar months as new business.
func (e *Engine) Project(policy *domain.Policy) ([]domain.CashflowRow, error) {
	if err := policy.Validate(e.Assumptions.BaseProduct.MinPremium); err != nil {
		return nil, err
	}

	state := e.initState(policy)
	rows := make([]domain.CashflowRow, 0, e.Config.ProjectionMonths)
	isNewBusiness := policy.DurationMonths == 0
	if isNewBusiness {
		state.Commissions = issueCommissions(e.Assumptions.Commission, policy.IssueAge, policy.InitialPremium)
	}

	for m := 1; m <= e.Config.ProjectionMonths; m++ {
		row, numErr := e.step(policy, &state, m, isNewBusiness)
		if numErr != nil {
			e.Log.Errorf("policy %d: aborting at projection month %d: %v", policy.ID, m, numErr)
			return rows, numErr
		}
		rows = append(rows, row)
		if state.Lives.LessThan(decimal.New(1, -12)) {
			e.Log.Debugf("policy %d: lives exhausted at projection month %d", policy.ID, m)
			break
		}
	}
	return rows, nil
}

func (e *Engine) initState(policy *domain.Policy) domain.ProjectionState {
	return domain.ProjectionState{
		AV:                 policy.StartingAV(),
		BenefitBase:        policy.StartingBenefitBase(),
		Lives:              policy.InitialPols,
		PolicyMonth:        policy.DurationMonths + 1,
		IncomeActivated:    policy.IncomeActivated,
		InitialBBForRollup: policy.InitialBenefitBase,
	}
}

// step advances state by exactly one month following the ten-step ordering
// contract (spec §4.7). The contract is non-commutative: do not reorder.
func (e *Engine) step(policy *domain.Policy, state *domain.ProjectionState, projectionMonth int, isNewBusiness bool) (domain.CashflowRow, *domain.NumericError) {
	a := e.Assumptions

	// 1. Record BOP.
	bopAV := state.AV
	bopBB := state.BenefitBase
	bopLives := state.Lives
	policyYear := state.PolicyYear()
	attainedAge := state.AttainedAge(policy.IssueAge)
	monthOfYear := ((state.PolicyMonth - 1) % 12) + 1
	isAnniversary := monthOfYear == 12

	// 2. Activation check.
	if !state.IncomeActivated && shouldActivate(policy, a.Glwb, policyYear, monthOfYear, attainedAge) {
		state.IncomeActivated = true
	}
	incomeActivated := state.IncomeActivated

	// 3. Compute rates on BOP state.
	qAnnual := a.Mortality.AnnualQ(attainedAge, string(policy.Gender))
	qAnnualF, _ := qAnnual.Float64()
	qMort := decimal.NewFromFloat(1 - math.Pow(1-qAnnualF, 1.0/12.0))

	itm := itmRatio(bopBB, bopAV)
	lapse := monthlyLapseRate(a.Lapse, policyYear, incomeActivated, policy.BenefitBaseBucket, policy.SCPeriod, itm, e.Config.FixedLapseRate)

	var pwd decimal.Decimal
	var nonSystematicPWDRate decimal.Decimal
	if incomeActivated {
		target := payoutMonthlyWithdrawal(a.Glwb, bopBB, attainedAge)
		denom := bopAV
		if denom.LessThanOrEqual(epsilon) {
			denom = epsilon
		}
		pwd = decimal.Min(target.Div(denom), decimal.NewFromInt(1))
	} else {
		pwd = monthlyPwdRate(a, policy, policyYear, attainedAge, incomeActivated)
		nonSystematicPWDRate = pwd
	}

	riderRate := riderChargeRate(a.Glwb, incomeActivated, bopAV, bopBB)

	// 4. Persistence factor.
	one := decimal.NewFromInt(1)
	p := one.Sub(qMort).Mul(one.Sub(lapse)).Mul(one.Sub(pwd)).Mul(decimal.Max(one.Sub(riderRate), decimal.Zero))

	// 5. Decrement lives.
	eopLives := bopLives.Mul(one.Sub(qMort)).Mul(one.Sub(lapse))

	// 6. Interest credit.
	persistingAV := bopAV.Mul(p)
	interestCreditsPerPolicy := e.interestCredit(policy, persistingAV, isAnniversary)

	// 7. Rollup.
	newBB := applyRollup(a.Glwb, policy.RollupType, bopBB, state.InitialBBForRollup, policyYear, incomeActivated)

	// 8. Cash amounts (block-weighted by BOP lives).
	mortalityDec := bopAV.Mul(qMort).Mul(bopLives)
	lapseDecPerPolicy := bopAV.Mul(one.Sub(qMort)).Mul(lapse)
	lapseDec := lapseDecPerPolicy.Mul(bopLives)
	pwdDecPerPolicy := bopAV.Mul(one.Sub(qMort)).Mul(one.Sub(lapse)).Mul(pwd)
	pwdDec := pwdDecPerPolicy.Mul(bopLives)
	riderChargesDecPerPolicy := bopAV.Mul(one.Sub(qMort)).Mul(one.Sub(lapse)).Mul(one.Sub(pwd)).Mul(riderRate)
	riderChargesDec := riderChargesDecPerPolicy.Mul(bopLives)

	scRate := a.SurrenderCharges.Rate(policyYear)
	surrenderChargesDec := lapseDec.Mul(scRate)

	interestCreditsDec := interestCreditsPerPolicy.Mul(bopLives)
	expenses := bopAV.Mul(a.BaseProduct.ExpenseRateOfAV).Div(twelve).Mul(bopLives)

	var chargebacks decimal.Decimal
	if isNewBusiness {
		// lapseDec is block-weighted, so dividing by the per-policy BOP AV
		// carries the lives weight into the recovered amount.
		chargebacks = chargebackAmount(a.Commission, state.Commissions, state.PolicyMonth, policyYear, lapseDec, bopAV)
	}

	var hedgeGains decimal.Decimal
	if a.Hedge != nil && policy.CreditingStrategy == domain.Indexed && isAnniversary {
		hedgeGains = interestCreditsDec.Mul(one.Sub(a.Hedge.HedgeCostRate))
	}

	var agentCommission, imoOverride, wholesalerOverride, bonusComp decimal.Decimal
	if isNewBusiness && state.PolicyMonth == 1 {
		agentCommission = state.Commissions.Agent.Mul(bopLives)
		imoOverride = state.Commissions.IMONet.Add(state.Commissions.IMOConversion).Mul(bopLives)
		wholesalerOverride = state.Commissions.WholesalerNet.Add(state.Commissions.WholesalerConversion).Mul(bopLives)
	}
	if isNewBusiness && state.PolicyMonth == 13 && bopLives.GreaterThan(decimal.Zero) {
		state.Commissions.Bonus = persistencyBonus(a.Commission, policy.IssueAge, bopAV)
		bonusComp = state.Commissions.Bonus.Mul(bopLives)
	}

	// 9. Assemble EOP.
	eopAV := persistingAV.Add(interestCreditsPerPolicy)
	if eopAV.LessThan(decimal.Zero) {
		eopAV = decimal.Zero
	}

	if eopF, _ := eopAV.Float64(); math.IsNaN(eopF) || math.IsInf(eopF, 0) {
		return domain.CashflowRow{}, &domain.NumericError{PolicyID: policy.ID, PolicyMonth: state.PolicyMonth, Field: "eop_av"}
	}
	if bbF, _ := newBB.Float64(); math.IsNaN(bbF) || math.IsInf(bbF, 0) {
		return domain.CashflowRow{}, &domain.NumericError{PolicyID: policy.ID, PolicyMonth: state.PolicyMonth, Field: "benefit_base"}
	}

	row := domain.CashflowRow{
		PolicyID:             policy.ID,
		ProjectionMonth:      projectionMonth,
		PolicyYear:           policyYear,
		AttainedAge:          attainedAge,
		BOPAV:                bopAV,
		BOPBenefitBase:       bopBB,
		Lives:                bopLives,
		FinalMortality:       qMort,
		FinalLapseRate:       lapse,
		NonSystematicPWDRate: nonSystematicPWDRate,
		RiderChargeRate:      riderRate,
		MortalityDec:         mortalityDec,
		LapseDec:             lapseDec,
		PWDDec:               pwdDec,
		RiderChargesDec:      riderChargesDec,
		SurrenderChargesDec:  surrenderChargesDec,
		InterestCreditsDec:   interestCreditsDec,
		EOPAV:                eopAV,
		Expenses:             expenses,
		AgentCommission:      agentCommission,
		IMOOverride:          imoOverride,
		WholesalerOverride:   wholesalerOverride,
		BonusComp:            bonusComp,
		Chargebacks:          chargebacks,
		HedgeGains:           hedgeGains,
	}
	row.ComputeTotalNetCashflow()

	state.AV = eopAV
	state.BenefitBase = newBB
	state.Lives = eopLives
	state.PolicyMonth++

	return row, nil
}

// interestCredit computes the per-policy interest credited this month (spec
// §4.7 step 6): Fixed credits every month at the compounding-equivalent
// monthly rate; Indexed credits the full annual rate on policy anniversary
// months (every 12th) and 0 intra-year.
func (e *Engine) interestCredit(policy *domain.Policy, persistingAV decimal.Decimal, isAnniversary bool) decimal.Decimal {
	annualRate := e.annualCreditingRate(policy)

	if policy.CreditingStrategy == domain.Fixed {
		annualF, _ := annualRate.Float64()
		monthlyRate := decimal.NewFromFloat(math.Pow(1+annualF, 1.0/12.0) - 1)
		return persistingAV.Mul(monthlyRate)
	}

	if !isAnniversary {
		return decimal.Zero
	}
	return persistingAV.Mul(annualRate)
}

// annualCreditingRate resolves the annual rate per ProjectionConfig's
// crediting union (spec §6). Override applies one flat rate to every
// policy regardless of strategy. PolicyBased applies the config's
// FixedAnnualRate/IndexedAnnualRate by the policy's own CreditingStrategy;
// when those config rates are unset (zero), it falls back to the policy's
// own ValRate (floored at MGIR for Indexed), so a bare EngineConfig without
// a loaded YAML still credits sensibly. TreasuryChange shifts the
// PolicyBased result in parallel; it is not applied to an Override rate.
func (e *Engine) annualCreditingRate(policy *domain.Policy) decimal.Decimal {
	if e.Config.Crediting == CreditingOverride {
		return e.Config.OverrideAnnualRate
	}

	var rate decimal.Decimal
	switch policy.CreditingStrategy {
	case domain.Fixed:
		rate = e.Config.FixedAnnualRate
		if rate.IsZero() {
			rate = policy.ValRate
		}
	case domain.Indexed:
		rate = e.Config.IndexedAnnualRate
		if rate.IsZero() {
			rate = decimal.Max(policy.ValRate, policy.MGIR)
		} else {
			rate = decimal.Max(rate, policy.MGIR)
		}
	}
	return rate.Add(e.Config.TreasuryChange)
}
