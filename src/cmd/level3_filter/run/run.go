package run

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jmbejara/constantinides-2013-options/src/filters"
	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
	"github.com/jmbejara/constantinides-2013-options/src/pricing"
	"github.com/jmbejara/constantinides-2013-options/src/utils"
)

type RunArgs struct {
	InputFile  string
	OutputDir  string
	ConfigFile string
	IVOnly     bool
	GoEnv      string
}

type RunOutput struct {
	IVFilteredFilepath  string
	PCPFilteredFilepath string
	IVSummary           filters.FilterSummary
	PCPSummary          filters.FilterSummary
}

func loadFilterConfig(path string) (*optionmodels.FilterConfigYAML, error) {
	var cfg optionmodels.FilterConfigYAML
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadFilterConfig: error reading %s: %v", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loadFilterConfig: error unmarshalling %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loadFilterConfig: %w", err)
	}

	return &cfg, nil
}

// buildIVFilterConfig overlays the YAML values onto the engine defaults.
func buildIVFilterConfig(yamlCfg *optionmodels.FilterConfigYAML) filters.IVFilterConfig {
	cfg := filters.DefaultIVFilterConfig()

	if yamlCfg.IVFilter.DistanceMethod != "" {
		cfg.DistanceMethod = filters.DistanceMethod(yamlCfg.IVFilter.DistanceMethod)
	}
	if yamlCfg.IVFilter.OutlierThreshold > 0 {
		cfg.OutlierThreshold = yamlCfg.IVFilter.OutlierThreshold
	}
	if yamlCfg.IVFilter.SolverMethod != "" {
		cfg.SolverMethod = pricing.SolverMethod(yamlCfg.IVFilter.SolverMethod)
	}

	if yamlCfg.Solver.Tolerance > 0 {
		cfg.Solver.Tolerance = yamlCfg.Solver.Tolerance
	}
	if yamlCfg.Solver.InitialGuess > 0 {
		cfg.Solver.InitialGuess = yamlCfg.Solver.InitialGuess
	}
	if yamlCfg.Solver.LowerBound > 0 {
		cfg.Solver.LowerBound = yamlCfg.Solver.LowerBound
	}
	if yamlCfg.Solver.UpperBound > 0 {
		cfg.Solver.UpperBound = yamlCfg.Solver.UpperBound
	}
	if yamlCfg.Solver.MaxIterations > 0 {
		cfg.Solver.MaxIterations = yamlCfg.Solver.MaxIterations
	}

	return cfg
}

func buildPCPFilterConfig(yamlCfg *optionmodels.FilterConfigYAML) filters.PCPFilterConfig {
	cfg := filters.DefaultPCPFilterConfig()

	if yamlCfg.PCPFilter.DistanceMethod != "" {
		cfg.DistanceMethod = filters.DistanceMethod(yamlCfg.PCPFilter.DistanceMethod)
	}
	if yamlCfg.PCPFilter.OutlierThreshold > 0 {
		cfg.OutlierThreshold = yamlCfg.PCPFilter.OutlierThreshold
	}

	return cfg
}

func applyLevel2Filters(quotes []*optionmodels.OptionQuote, yamlCfg *optionmodels.FilterConfigYAML) []*optionmodels.OptionQuote {
	minDays, maxDays := filters.DefaultMinDaysToMaturity, filters.DefaultMaxDaysToMaturity
	if yamlCfg.Level2.MinDaysToMaturity > 0 {
		minDays = yamlCfg.Level2.MinDaysToMaturity
	}
	if yamlCfg.Level2.MaxDaysToMaturity > 0 {
		maxDays = yamlCfg.Level2.MaxDaysToMaturity
	}

	minMoneyness, maxMoneyness := filters.DefaultMinMoneyness, filters.DefaultMaxMoneyness
	if yamlCfg.Level2.MinMoneyness > 0 {
		minMoneyness = yamlCfg.Level2.MinMoneyness
	}
	if yamlCfg.Level2.MaxMoneyness > 0 {
		maxMoneyness = yamlCfg.Level2.MaxMoneyness
	}

	out := filters.DaysToMaturityFilter(quotes, minDays, maxDays)
	out = filters.MoneynessFilter(out, minMoneyness, maxMoneyness)

	// the IV range filter drops missing-IV rows, which the level-3 backfill
	// would otherwise solve; only apply it when explicitly configured
	if yamlCfg.Level2.MinIV > 0 || yamlCfg.Level2.MaxIV > 0 {
		minIV, maxIV := filters.DefaultMinIV, filters.DefaultMaxIV
		if yamlCfg.Level2.MinIV > 0 {
			minIV = yamlCfg.Level2.MinIV
		}
		if yamlCfg.Level2.MaxIV > 0 {
			maxIV = yamlCfg.Level2.MaxIV
		}
		out = filters.IVRangeFilter(out, minIV, maxIV)
	}

	log.Infof("Level 2 filters: %d rows in, %d remaining", len(quotes), len(out))

	return out
}

func Run(args RunArgs) (RunOutput, error) {
	if err := utils.InitEnvironmentVariables(".", args.GoEnv); err != nil {
		return RunOutput{}, fmt.Errorf("Run: error initializing environment variables: %w", err)
	}

	yamlCfg, err := loadFilterConfig(args.ConfigFile)
	if err != nil {
		return RunOutput{}, fmt.Errorf("Run: %w", err)
	}

	quotes, err := utils.ImportQuotesFromCsv(args.InputFile)
	if err != nil {
		return RunOutput{}, fmt.Errorf("Run: %w", err)
	}

	quotes = applyLevel2Filters(quotes, yamlCfg)

	if err := os.MkdirAll(args.OutputDir, 0755); err != nil {
		return RunOutput{}, fmt.Errorf("Run: error creating output dir %s: %v", args.OutputDir, err)
	}

	log.Info("L3 filter running...")

	ivRows, ivSummary, err := filters.IVFilter(quotes, buildIVFilterConfig(yamlCfg))
	if err != nil {
		return RunOutput{}, fmt.Errorf("Run: %w", err)
	}

	output := RunOutput{
		IVFilteredFilepath: filepath.Join(args.OutputDir, "L3_IV_filter_only.csv"),
		IVSummary:          ivSummary,
	}

	if err := utils.ExportIVFilteredToCsv(output.IVFilteredFilepath, ivRows); err != nil {
		return RunOutput{}, fmt.Errorf("Run: %w", err)
	}

	if args.IVOnly {
		return output, nil
	}

	pcpRows, pcpSummary, err := filters.PutCallFilter(quotes, buildPCPFilterConfig(yamlCfg))
	if err != nil {
		return RunOutput{}, fmt.Errorf("Run: %w", err)
	}

	output.PCPFilteredFilepath = filepath.Join(args.OutputDir, "L3_filtered.csv")
	output.PCPSummary = pcpSummary

	if err := utils.ExportPCPFilteredToCsv(output.PCPFilteredFilepath, pcpRows); err != nil {
		return RunOutput{}, fmt.Errorf("Run: %w", err)
	}

	return output, nil
}
