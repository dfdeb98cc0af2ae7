package filters

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
	"github.com/jmbejara/constantinides-2013-options/src/pricing"
)

type IVFilterConfig struct {
	DistanceMethod   DistanceMethod
	OutlierThreshold float64

	// IV backfill for quotes the vendor delivered without one
	SolverMethod pricing.SolverMethod
	Solver       pricing.SolverConfig
	RiskFreeRate float64
}

func DefaultIVFilterConfig() IVFilterConfig {
	return IVFilterConfig{
		DistanceMethod:   Percent,
		OutlierThreshold: 2.0,
		SolverMethod:     pricing.QuasiNewton,
		Solver:           pricing.DefaultSolverConfig(),
		RiskFreeRate:     0.05,
	}
}

// backfillMissingIVs solves for implied volatility from the mid price where
// the vendor did not supply one. Rows whose solve fails keep the undefined
// sentinel and drop out of fitting like any other missing-IV row.
func backfillMissingIVs(rows []*optionmodels.IVFilteredQuote, cfg IVFilterConfig) {
	var solved, failed int
	for _, row := range rows {
		if row.IV > 0 {
			continue
		}

		mid := row.MidPrice()
		if !(mid > 0) {
			continue
		}

		sigma, err := pricing.SolveImpliedVolatility(mid, row.UnderlyingPrice, row.Strike, row.TimeToMaturityYears(), cfg.RiskFreeRate, row.OptionType, cfg.SolverMethod, cfg.Solver)
		if err != nil {
			failed++
			continue
		}

		row.IV = sigma
		row.LogIV = row.OptionQuote.LogIV()
		solved++
	}

	if solved > 0 || failed > 0 {
		log.Infof("IV filter: backfilled %d missing IVs from mid prices, %d solves failed", solved, failed)
	}
}

func logNanIVCensus(rows []*optionmodels.IVFilteredQuote) {
	counts := make(map[optionmodels.OptionType][2]int, 2)
	for _, row := range rows {
		c := counts[row.OptionType]
		if math.IsNaN(row.LogIV) {
			c[0]++
		}
		c[1]++
		counts[row.OptionType] = c
	}

	for _, side := range []optionmodels.OptionType{optionmodels.Call, optionmodels.Put} {
		c := counts[side]
		if c[1] == 0 {
			continue
		}

		log.Infof("IV filter: %ss with missing IV: %d of %d (%.2f%%)", side, c[0], c[1], float64(c[0])/float64(c[1])*100)
	}
}

// IVFilter runs the implied-volatility branch of the level-3 stage: backfill
// missing IVs, fit the per-group quadratic log-IV curve, measure each row's
// relative distance from its fitted value, and drop rows more than the
// threshold number of within-moneyness-bucket standard deviations away.
// The returned rows carry the appended columns of the surviving quotes.
func IVFilter(quotes []*optionmodels.OptionQuote, cfg IVFilterConfig) ([]*optionmodels.IVFilteredQuote, FilterSummary, error) {
	if err := cfg.DistanceMethod.Validate(); err != nil {
		return nil, FilterSummary{}, fmt.Errorf("IVFilter: %w", err)
	}

	if err := cfg.SolverMethod.Validate(); err != nil {
		return nil, FilterSummary{}, fmt.Errorf("IVFilter: %w", err)
	}

	rows := make([]*optionmodels.IVFilteredQuote, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, optionmodels.NewIVFilteredQuote(q))
	}

	backfillMissingIVs(rows, cfg)
	logNanIVCensus(rows)

	log.Info("IV filter: applying quadratic fit...")
	rows = ApplyQuadraticIVFit(rows)

	log.Info("IV filter: filtering outliers...")
	distances := make([]float64, len(rows))
	bins := make([]string, len(rows))
	for i, row := range rows {
		d, err := RelativeDistance(row.LogIV, row.FittedIV, cfg.DistanceMethod)
		if err != nil {
			return nil, FilterSummary{}, fmt.Errorf("IVFilter: %w", err)
		}

		row.RelDistanceIV = d
		row.MoneynessBin = MoneynessBin(row.Moneyness)
		distances[i] = d
		bins[i] = row.MoneynessBin
	}

	flags, err := FlagOutliers(distances, bins, cfg.OutlierThreshold)
	if err != nil {
		return nil, FilterSummary{}, fmt.Errorf("IVFilter: %w", err)
	}

	out := make([]*optionmodels.IVFilteredQuote, 0, len(rows))
	for i, row := range rows {
		row.IsOutlierIV = flags[i]
		if !row.IsOutlierIV {
			out = append(out, row)
		}
	}

	summary := newFilterSummary(len(quotes), len(out))
	log.Infof("IV filter: complete, %d rows in, %d deleted, %d remaining", summary.RowsIn, summary.RowsDeleted, summary.RowsRemaining)

	return out, summary, nil
}
