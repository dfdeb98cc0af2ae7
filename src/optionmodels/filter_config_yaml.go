package optionmodels

import "fmt"

// FilterConfigYAML is the on-disk configuration for a level-3 filter run.
// Zero values fall back to the engine defaults; the engine itself only sees
// the converted config structs, never this file shape.
type FilterConfigYAML struct {
	Level2 struct {
		MinDaysToMaturity int     `yaml:"min_days_to_maturity"`
		MaxDaysToMaturity int     `yaml:"max_days_to_maturity"`
		MinIV             float64 `yaml:"min_iv"`
		MaxIV             float64 `yaml:"max_iv"`
		MinMoneyness      float64 `yaml:"min_moneyness"`
		MaxMoneyness      float64 `yaml:"max_moneyness"`
	} `yaml:"level2"`

	IVFilter struct {
		DistanceMethod   string  `yaml:"distance_method"`
		OutlierThreshold float64 `yaml:"outlier_threshold"`
		SolverMethod     string  `yaml:"solver_method"`
	} `yaml:"iv_filter"`

	PCPFilter struct {
		DistanceMethod   string  `yaml:"distance_method"`
		OutlierThreshold float64 `yaml:"outlier_threshold"`
	} `yaml:"pcp_filter"`

	Solver struct {
		Tolerance     float64 `yaml:"tolerance"`
		InitialGuess  float64 `yaml:"initial_guess"`
		LowerBound    float64 `yaml:"lower_bound"`
		UpperBound    float64 `yaml:"upper_bound"`
		MaxIterations int     `yaml:"max_iterations"`
	} `yaml:"solver"`
}

func (c *FilterConfigYAML) Validate() error {
	if c.IVFilter.OutlierThreshold < 0 {
		return fmt.Errorf("FilterConfigYAML: Validate: iv_filter.outlier_threshold must be non-negative")
	}

	if c.PCPFilter.OutlierThreshold < 0 {
		return fmt.Errorf("FilterConfigYAML: Validate: pcp_filter.outlier_threshold must be non-negative")
	}

	if c.Solver.LowerBound < 0 || (c.Solver.UpperBound != 0 && c.Solver.UpperBound <= c.Solver.LowerBound) {
		return fmt.Errorf("FilterConfigYAML: Validate: solver bounds (%f, %f) are invalid", c.Solver.LowerBound, c.Solver.UpperBound)
	}

	return nil
}
