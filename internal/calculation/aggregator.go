package calculation

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fia-glwb/block-projector/internal/domain"
)

// maxConcurrentProjections caps the worker pool, mirroring the semaphore
// pattern used for the teacher's Monte Carlo simulations.
const maxConcurrentProjections = 10

// PolicyFailure records a single policy excluded from aggregation, keeping
// the failure visible without aborting the run (spec §7: ValidationError
// fails the single policy; aggregation continues with the rest).
type PolicyFailure struct {
	PolicyID uint32
	Err      error
}

// MonthlyTotal is one row of the block-aggregated output: per-month sums
// across every in-force policy (spec §6: "Aggregator writes a CSV with
// per-month sums across the block").
type MonthlyTotal struct {
	ProjectionMonth     int
	BOPAV               decimal.Decimal
	BOPBenefitBase      decimal.Decimal
	Lives               decimal.Decimal
	MortalityDec        decimal.Decimal
	LapseDec            decimal.Decimal
	PWDDec              decimal.Decimal
	RiderChargesDec     decimal.Decimal
	SurrenderChargesDec decimal.Decimal
	InterestCreditsDec  decimal.Decimal
	EOPAV               decimal.Decimal
	Expenses            decimal.Decimal
	AgentCommission     decimal.Decimal
	IMOOverride         decimal.Decimal
	WholesalerOverride  decimal.Decimal
	BonusComp           decimal.Decimal
	Chargebacks         decimal.Decimal
	HedgeGains          decimal.Decimal
	TotalNetCashflow    decimal.Decimal
}

// BlockResult is the full output of aggregating a policy block: the
// per-policy detail rows (when DetailedOutput is requested), the
// per-month block totals, and any policies excluded by validation or
// numeric failure.
type BlockResult struct {
	Detail   []domain.CashflowRow // empty unless EngineConfig.DetailedOutput
	Monthly  []MonthlyTotal
	Failures []PolicyFailure
}

// Aggregator runs the engine across a block of policies and reduces their
// monthly rows into block totals (spec §5, component F). Per-policy
// projection is embarrassingly parallel: workers share the same read-only
// Engine/Assumptions and each owns its own ProjectionState, so no
// synchronization is required beyond collecting results (grounded on the
// teacher's wait-group-plus-semaphore Monte Carlo worker pool).
type Aggregator struct {
	Engine *Engine
}

// NewAggregator builds an Aggregator over the given Engine.
func NewAggregator(engine *Engine) *Aggregator {
	return &Aggregator{Engine: engine}
}

// Run projects every policy in the block concurrently and sums the
// resulting monthly rows (spec §5: "aggregation is sum-reduce, which is
// associative up to floating-point rounding").
func (agg *Aggregator) Run(policies []domain.Policy) BlockResult {
	type outcome struct {
		rows []domain.CashflowRow
		err  error
		id   uint32
	}

	outcomes := make([]outcome, len(policies))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentProjections)

	for i := range policies {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			p := &policies[idx]
			rows, err := agg.Engine.Project(p)
			outcomes[idx] = outcome{rows: rows, err: err, id: p.ID}
		}(i)
	}
	wg.Wait()

	result := BlockResult{}
	monthlyByMonth := map[int]*MonthlyTotal{}
	maxMonth := 0

	for _, oc := range outcomes {
		if oc.err != nil {
			result.Failures = append(result.Failures, PolicyFailure{PolicyID: oc.id, Err: oc.err})
			continue
		}
		if agg.Engine.Config.DetailedOutput {
			result.Detail = append(result.Detail, oc.rows...)
		}
		for _, row := range oc.rows {
			if row.ProjectionMonth > maxMonth {
				maxMonth = row.ProjectionMonth
			}
			mt, ok := monthlyByMonth[row.ProjectionMonth]
			if !ok {
				mt = &MonthlyTotal{ProjectionMonth: row.ProjectionMonth}
				monthlyByMonth[row.ProjectionMonth] = mt
			}
			addRow(mt, row)
		}
	}

	result.Monthly = make([]MonthlyTotal, 0, maxMonth)
	for m := 1; m <= maxMonth; m++ {
		if mt, ok := monthlyByMonth[m]; ok {
			result.Monthly = append(result.Monthly, *mt)
		}
	}
	agg.Engine.Log.Infof("projected %d policies over %d months, %d excluded", len(policies)-len(result.Failures), maxMonth, len(result.Failures))
	return result
}

func addRow(mt *MonthlyTotal, row domain.CashflowRow) {
	mt.BOPAV = mt.BOPAV.Add(row.BOPAV.Mul(row.Lives))
	mt.BOPBenefitBase = mt.BOPBenefitBase.Add(row.BOPBenefitBase.Mul(row.Lives))
	mt.Lives = mt.Lives.Add(row.Lives)
	mt.MortalityDec = mt.MortalityDec.Add(row.MortalityDec)
	mt.LapseDec = mt.LapseDec.Add(row.LapseDec)
	mt.PWDDec = mt.PWDDec.Add(row.PWDDec)
	mt.RiderChargesDec = mt.RiderChargesDec.Add(row.RiderChargesDec)
	mt.SurrenderChargesDec = mt.SurrenderChargesDec.Add(row.SurrenderChargesDec)
	mt.InterestCreditsDec = mt.InterestCreditsDec.Add(row.InterestCreditsDec)
	mt.EOPAV = mt.EOPAV.Add(row.EOPAV.Mul(row.Lives))
	mt.Expenses = mt.Expenses.Add(row.Expenses)
	mt.AgentCommission = mt.AgentCommission.Add(row.AgentCommission)
	mt.IMOOverride = mt.IMOOverride.Add(row.IMOOverride)
	mt.WholesalerOverride = mt.WholesalerOverride.Add(row.WholesalerOverride)
	mt.BonusComp = mt.BonusComp.Add(row.BonusComp)
	mt.Chargebacks = mt.Chargebacks.Add(row.Chargebacks)
	mt.HedgeGains = mt.HedgeGains.Add(row.HedgeGains)
	mt.TotalNetCashflow = mt.TotalNetCashflow.Add(row.TotalNetCashflow)
}
