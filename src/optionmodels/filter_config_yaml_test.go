package optionmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleConfig = `
level2:
  min_days_to_maturity: 7
  max_days_to_maturity: 180
  min_iv: 0.05
  max_iv: 1.0
  min_moneyness: 0.8
  max_moneyness: 1.2
iv_filter:
  distance_method: percent
  outlier_threshold: 2.0
  solver_method: quasi_newton
pcp_filter:
  distance_method: percent
  outlier_threshold: 2.0
solver:
  tolerance: 1.0e-12
  initial_guess: 0.05
  lower_bound: 1.0e-5
  upper_bound: 5.0
  max_iterations: 100
`

func TestFilterConfigYAMLUnmarshal(t *testing.T) {
	var cfg FilterConfigYAML
	require.NoError(t, yaml.Unmarshal([]byte(sampleConfig), &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 7, cfg.Level2.MinDaysToMaturity)
	assert.Equal(t, 180, cfg.Level2.MaxDaysToMaturity)
	assert.Equal(t, 0.05, cfg.Level2.MinIV)
	assert.Equal(t, 1.2, cfg.Level2.MaxMoneyness)

	assert.Equal(t, "percent", cfg.IVFilter.DistanceMethod)
	assert.Equal(t, 2.0, cfg.IVFilter.OutlierThreshold)
	assert.Equal(t, "quasi_newton", cfg.IVFilter.SolverMethod)

	assert.Equal(t, 1e-12, cfg.Solver.Tolerance)
	assert.Equal(t, 100, cfg.Solver.MaxIterations)
}

func TestFilterConfigYAMLZeroValueIsValid(t *testing.T) {
	// an empty file means "use the engine defaults everywhere"
	var cfg FilterConfigYAML
	require.NoError(t, yaml.Unmarshal([]byte(""), &cfg))
	assert.NoError(t, cfg.Validate())
}

func TestFilterConfigYAMLValidateRejectsBadValues(t *testing.T) {
	var cfg FilterConfigYAML
	cfg.IVFilter.OutlierThreshold = -1
	assert.Error(t, cfg.Validate())

	cfg = FilterConfigYAML{}
	cfg.PCPFilter.OutlierThreshold = -0.5
	assert.Error(t, cfg.Validate())

	cfg = FilterConfigYAML{}
	cfg.Solver.LowerBound = 1.0
	cfg.Solver.UpperBound = 0.5
	assert.Error(t, cfg.Validate())
}
