package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePolicyCSV = `policy_id,qual_status,issue_age,gender,initial_benefit_base,initial_pols,initial_premium,benefit_base_bucket,percentage,crediting_strategy,sc_period,val_rate,mgir,bonus,rollup_type,duration_months,income_activated,glwb_start_year
1,Q,65,Male,130000,1,100000,100-200k,1.0,Fixed,10,0.03,0.01,0.3,Compound,0,false,5
2,N,55,Female,65000,0.5,50000,50-100k,1.0,Indexed,10,0.00,0.02,0,Simple,12,false,99
`

func TestReadPolicyCSV_ParsesRows(t *testing.T) {
	policies, err := ReadPolicyCSV("sample", strings.NewReader(samplePolicyCSV))
	require.NoError(t, err)
	require.Len(t, policies, 2)

	assert.Equal(t, uint32(1), policies[0].ID)
	assert.Equal(t, 65, policies[0].IssueAge)
	assert.Equal(t, 99, policies[1].GLWBStartYear)
	assert.False(t, policies[1].IncomeActivated)
}

func TestReadPolicyCSV_RejectsUnknownEnum(t *testing.T) {
	bad := strings.Replace(samplePolicyCSV, "Q,65,Male", "X,65,Male", 1)
	_, err := ReadPolicyCSV("sample", strings.NewReader(bad))
	assert.Error(t, err)
}

func TestReadPolicyCSV_RejectsMissingColumn(t *testing.T) {
	bad := strings.Replace(samplePolicyCSV, "policy_id,", "", 1)
	_, err := ReadPolicyCSV("sample", strings.NewReader(bad))
	assert.Error(t, err)
}

func TestPolicyCSVRoundTrip(t *testing.T) {
	policies, err := ReadPolicyCSV("sample", strings.NewReader(samplePolicyCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePolicyCSV(&buf, policies))

	roundTripped, err := ReadPolicyCSV("roundtrip", strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, roundTripped, len(policies))

	for i := range policies {
		assert.Equal(t, policies[i].ID, roundTripped[i].ID)
		assert.True(t, policies[i].InitialPremium.Equal(roundTripped[i].InitialPremium))
		assert.True(t, policies[i].InitialBenefitBase.Equal(roundTripped[i].InitialBenefitBase))
		assert.Equal(t, policies[i].RollupType, roundTripped[i].RollupType)
	}
}
