package filters

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
	"github.com/jmbejara/constantinides-2013-options/src/utils"
)

type PCPFilterConfig struct {
	DistanceMethod   DistanceMethod
	OutlierThreshold float64
}

func DefaultPCPFilterConfig() PCPFilterConfig {
	return PCPFilterConfig{
		DistanceMethod:   Percent,
		OutlierThreshold: 2.0,
	}
}

// PutCallFilter runs the put-call-parity branch of the level-3 stage: match
// calls and puts on (date, expiration, moneyness), derive the implied
// interest rate per pair, compare it to the daily reference rate, and drop
// pairs more than the threshold number of within-date standard deviations
// away. The result is long form: one row per surviving leg, call legs
// first. A strike/underlying mismatch inside a pair aborts the run.
func PutCallFilter(quotes []*optionmodels.OptionQuote, cfg PCPFilterConfig) ([]*optionmodels.PCPFilteredQuote, FilterSummary, error) {
	if err := cfg.DistanceMethod.Validate(); err != nil {
		return nil, FilterSummary{}, fmt.Errorf("PutCallFilter: %w", err)
	}

	log.Info("PCP filter: calculating bid-ask midpoints...")
	var calls, puts []*optionmodels.PCPFilteredQuote
	for _, q := range quotes {
		row := optionmodels.NewPCPFilteredQuote(q)
		if q.OptionType == optionmodels.Call {
			calls = append(calls, row)
		} else {
			puts = append(puts, row)
		}
	}

	log.Info("PCP filter: building put-call pairs...")
	pairs := BuildPutCallPairs(calls, puts)
	log.Infof("PCP filter: matched %d pairs from %d calls and %d puts", len(pairs), len(calls), len(puts))

	log.Info("PCP filter: calculating PCP implied interest rates...")
	if err := CalcImpliedInterestRates(pairs); err != nil {
		return nil, FilterSummary{}, fmt.Errorf("PutCallFilter: %w", err)
	}

	refs := DailyReferenceRates(pairs)

	log.Info("PCP filter: filtering outliers...")
	distances := make([]float64, len(pairs))
	dates := make([]string, len(pairs))
	for i, pair := range pairs {
		date := utils.DateKey(pair.Call.Date)

		ref := math.NaN()
		if r, found := refs[date]; found {
			ref = r
		}
		pair.Call.DailyMedianRate = ref
		pair.Put.DailyMedianRate = ref

		d, err := RelativeDistance(pair.Call.PCParityIntRate, ref, cfg.DistanceMethod)
		if err != nil {
			return nil, FilterSummary{}, fmt.Errorf("PutCallFilter: %w", err)
		}

		pair.Call.RelDistanceIntRate = d
		pair.Put.RelDistanceIntRate = d
		distances[i] = d
		dates[i] = date
	}

	flags, err := FlagOutliers(distances, dates, cfg.OutlierThreshold)
	if err != nil {
		return nil, FilterSummary{}, fmt.Errorf("PutCallFilter: %w", err)
	}

	var retained []*optionmodels.MatchedPair
	for i, pair := range pairs {
		pair.Call.IsOutlierIntRate = flags[i]
		pair.Put.IsOutlierIntRate = flags[i]
		if !flags[i] {
			retained = append(retained, pair)
		}
	}

	// long form: all call legs, then all put legs
	out := make([]*optionmodels.PCPFilteredQuote, 0, 2*len(retained))
	for _, pair := range retained {
		out = append(out, pair.Call)
	}
	for _, pair := range retained {
		out = append(out, pair.Put)
	}

	summary := newFilterSummary(len(quotes), len(out))
	log.Infof("PCP filter: complete, %d rows in, %d deleted, %d remaining", summary.RowsIn, summary.RowsDeleted, summary.RowsRemaining)

	return out, summary, nil
}
