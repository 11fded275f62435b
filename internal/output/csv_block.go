// Package output writes projection results to CSV, mirroring the teacher's
// encoding/csv-plus-bytes.Buffer formatter style (rpgo's CSVSummarizer)
// rather than a templated report engine.
package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fia-glwb/block-projector/internal/calculation"
	"github.com/fia-glwb/block-projector/internal/domain"
)

var monthlyHeader = []string{
	"projection_month", "bop_av", "bop_benefit_base", "lives",
	"mortality_dec", "lapse_dec", "pwd_dec", "rider_charges_dec",
	"surrender_charges_dec", "interest_credits_dec", "eop_av", "expenses",
	"agent_commission", "imo_override", "wholesaler_override", "bonus_comp",
	"chargebacks", "hedge_gains", "total_net_cashflow",
}

// WriteMonthlyCSV writes the block's per-month aggregated totals (spec §6:
// "Aggregator writes a CSV with per-month sums across the block").
func WriteMonthlyCSV(w io.Writer, rows []calculation.MonthlyTotal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(monthlyHeader); err != nil {
		return err
	}
	for _, mt := range rows {
		record := []string{
			strconv.Itoa(mt.ProjectionMonth),
			mt.BOPAV.StringFixed(2),
			mt.BOPBenefitBase.StringFixed(2),
			mt.Lives.StringFixed(6),
			mt.MortalityDec.StringFixed(2),
			mt.LapseDec.StringFixed(2),
			mt.PWDDec.StringFixed(2),
			mt.RiderChargesDec.StringFixed(2),
			mt.SurrenderChargesDec.StringFixed(2),
			mt.InterestCreditsDec.StringFixed(2),
			mt.EOPAV.StringFixed(2),
			mt.Expenses.StringFixed(2),
			mt.AgentCommission.StringFixed(2),
			mt.IMOOverride.StringFixed(2),
			mt.WholesalerOverride.StringFixed(2),
			mt.BonusComp.StringFixed(2),
			mt.Chargebacks.StringFixed(2),
			mt.HedgeGains.StringFixed(2),
			mt.TotalNetCashflow.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var detailHeader = []string{
	"policy_id", "projection_month", "policy_year", "attained_age",
	"bop_av", "bop_benefit_base", "lives",
	"final_mortality", "final_lapse_rate", "non_systematic_pwd_rate", "rider_charge_rate",
	"mortality_dec", "lapse_dec", "pwd_dec", "rider_charges_dec",
	"surrender_charges_dec", "interest_credits_dec", "eop_av", "expenses",
	"agent_commission", "imo_override", "wholesaler_override", "bonus_comp",
	"chargebacks", "hedge_gains", "total_net_cashflow",
}

// WriteDetailCSV writes the per-policy, per-month rows (spec §6, emitted
// only when EngineConfig.DetailedOutput requests it — the detail set is
// O(policies*months) and dwarfs the block total in size).
func WriteDetailCSV(w io.Writer, rows []domain.CashflowRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(int(r.PolicyID)),
			strconv.Itoa(r.ProjectionMonth),
			strconv.Itoa(r.PolicyYear),
			strconv.Itoa(r.AttainedAge),
			r.BOPAV.StringFixed(2),
			r.BOPBenefitBase.StringFixed(2),
			r.Lives.StringFixed(6),
			r.FinalMortality.String(),
			r.FinalLapseRate.String(),
			r.NonSystematicPWDRate.String(),
			r.RiderChargeRate.String(),
			r.MortalityDec.StringFixed(2),
			r.LapseDec.StringFixed(2),
			r.PWDDec.StringFixed(2),
			r.RiderChargesDec.StringFixed(2),
			r.SurrenderChargesDec.StringFixed(2),
			r.InterestCreditsDec.StringFixed(2),
			r.EOPAV.StringFixed(2),
			r.Expenses.StringFixed(2),
			r.AgentCommission.StringFixed(2),
			r.IMOOverride.StringFixed(2),
			r.WholesalerOverride.StringFixed(2),
			r.BonusComp.StringFixed(2),
			r.Chargebacks.StringFixed(2),
			r.HedgeGains.StringFixed(2),
			r.TotalNetCashflow.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFailuresCSV writes the excluded-policy log (spec §7: validation and
// numeric failures are reported, not silently dropped).
func WriteFailuresCSV(w io.Writer, failures []calculation.PolicyFailure) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"policy_id", "error"}); err != nil {
		return err
	}
	for _, f := range failures {
		if err := cw.Write([]string{strconv.Itoa(int(f.PolicyID)), f.Err.Error()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
