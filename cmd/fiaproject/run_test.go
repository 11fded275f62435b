package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPolicyCSV = `policy_id,qual_status,issue_age,gender,initial_benefit_base,initial_pols,initial_premium,benefit_base_bucket,percentage,crediting_strategy,sc_period,val_rate,mgir,bonus,rollup_type,duration_months,income_activated,glwb_start_year
1,Q,65,Male,130000,1,100000,100-200k,1.0,Fixed,10,0.03,0.01,0.3,Compound,0,false,5
2,N,55,Female,65000,0.5,50000,50-100k,1.0,Indexed,10,0.00,0.02,0,Simple,0,false,99
`

func TestRunProjection_WritesMonthlyCSV(t *testing.T) {
	dir := t.TempDir()
	policiesPath := filepath.Join(dir, "policies.csv")
	require.NoError(t, os.WriteFile(policiesPath, []byte(twoPolicyCSV), 0o644))

	monthlyOut := filepath.Join(dir, "monthly.csv")
	opts := &runOptions{
		policiesPath:   policiesPath,
		monthlyOutPath: monthlyOut,
	}

	require.NoError(t, runProjection(opts))

	data, err := os.ReadFile(monthlyOut)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "projection_month,bop_av,bop_benefit_base,lives,mortality_dec,lapse_dec,pwd_dec,rider_charges_dec,surrender_charges_dec,interest_credits_dec,eop_av,expenses,agent_commission,imo_override,wholesaler_override,bonus_comp,chargebacks,hedge_gains,total_net_cashflow", lines[0])
	assert.Greater(t, len(lines), 300) // 360 monthly rows plus header, short of a few for decremented-out lives
}

func TestRunProjection_MissingPoliciesFileFails(t *testing.T) {
	opts := &runOptions{policiesPath: filepath.Join(t.TempDir(), "missing.csv")}
	err := runProjection(opts)
	assert.Error(t, err)
}

func TestPrintSchedule_UnknownTableErrors(t *testing.T) {
	err := printSchedule("not-a-table")
	assert.Error(t, err)
}

func TestPrintSchedule_KnownTables(t *testing.T) {
	for _, table := range []string{"surrender-charges", "rmd", "payout", "utilization"} {
		assert.NoError(t, printSchedule(table))
	}
}
