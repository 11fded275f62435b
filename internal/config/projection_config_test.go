package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fia-glwb/block-projector/internal/calculation"
)

func TestLoadProjectionConfigYAML_Defaults(t *testing.T) {
	path := writeTemp(t, "proj.yaml", "detailed_output: true\n")
	cfg, err := LoadProjectionConfigYAML(path)
	require.NoError(t, err)
	assert.Equal(t, 360, cfg.ProjectionMonths)
	assert.Equal(t, calculation.CreditingPolicyBased, cfg.Crediting)
	assert.True(t, cfg.DetailedOutput)
}

func TestLoadProjectionConfigYAML_Override(t *testing.T) {
	path := writeTemp(t, "proj.yaml", "projection_months: 120\ncrediting:\n  override:\n    annual_rate: \"0.04\"\n")
	cfg, err := LoadProjectionConfigYAML(path)
	require.NoError(t, err)
	assert.Equal(t, calculation.CreditingOverride, cfg.Crediting)
	assert.Equal(t, 120, cfg.ProjectionMonths)

	engineCfg := cfg.ToEngineConfig()
	rate, _ := engineCfg.OverrideAnnualRate.Float64()
	assert.InDelta(t, 0.04, rate, 1e-9)
}

func TestLoadProjectionConfigYAML_HedgeParams(t *testing.T) {
	path := writeTemp(t, "proj.yaml", "hedge_params:\n  hedge_cost_rate: \"0.01\"\n")
	cfg, err := LoadProjectionConfigYAML(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.HedgeCostRate)

	rate, _ := cfg.HedgeCostRate.Float64()
	assert.InDelta(t, 0.01, rate, 1e-9)
}
