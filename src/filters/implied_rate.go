package filters

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
	"github.com/jmbejara/constantinides-2013-options/src/utils"
)

// near-the-money window for the daily reference rate
const (
	ntmMoneynessLow  = 0.95
	ntmMoneynessHigh = 1.05
)

// ImpliedInterestRate derives the rate a matched pair implies under
// continuously-compounded put-call parity:
//
//	rate = ln((S - C_mid + P_mid) / K) / T
//
// A non-positive log argument propagates as NaN; it is never coerced to
// zero.
func ImpliedInterestRate(pair *optionmodels.MatchedPair) float64 {
	s := pair.Call.UnderlyingPrice
	k := pair.Call.Strike
	t := pair.Call.TimeToMaturityYears()

	return math.Log((s-pair.Call.MidPrice+pair.Put.MidPrice)/k) / t
}

// CalcImpliedInterestRates validates that each pair's legs agree on strike
// and underlying price, then stores the implied rate on both legs. A
// mismatch is a hard error carrying pair-identifying context.
func CalcImpliedInterestRates(pairs []*optionmodels.MatchedPair) error {
	for _, pair := range pairs {
		if !PricesConsistent(pair) {
			return fmt.Errorf("CalcImpliedInterestRates: %w: date=%s exdate=%s call(strike=%f, underlying=%f) put(strike=%f, underlying=%f)",
				ErrPriceStrikeMismatch,
				utils.DateKey(pair.Call.Date), utils.DateKey(pair.Call.Expiration),
				pair.Call.Strike, pair.Call.UnderlyingPrice,
				pair.Put.Strike, pair.Put.UnderlyingPrice)
		}
	}

	log.Info("PCP filter: check ok - underlying prices and strike prices of put and call legs match")

	for _, pair := range pairs {
		rate := ImpliedInterestRate(pair)
		pair.Call.PCParityIntRate = rate
		pair.Put.PCParityIntRate = rate
	}

	return nil
}

// DailyReferenceRates computes the cross-sectional median implied rate of
// near-the-money pairs per date, discarding negative medians as implausible
// reference points. Dates without a valid median inherit the most recent
// available reference (forward-fill); dates before the first valid median
// have no entry.
func DailyReferenceRates(pairs []*optionmodels.MatchedPair) map[string]float64 {
	ntmRates := make(map[string][]float64)
	dateSet := make(map[string]bool)
	for _, pair := range pairs {
		date := utils.DateKey(pair.Call.Date)
		dateSet[date] = true

		m := pair.Call.Moneyness
		rate := pair.Call.PCParityIntRate
		if m >= ntmMoneynessLow && m <= ntmMoneynessHigh && !math.IsNaN(rate) {
			ntmRates[date] = append(ntmRates[date], rate)
		}
	}

	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	refs := make(map[string]float64, len(dates))
	last := math.NaN()
	for _, date := range dates {
		if sample := ntmRates[date]; len(sample) > 0 {
			if median, err := stats.Median(sample); err == nil && median >= 0 {
				last = median
			}
		}

		if !math.IsNaN(last) {
			refs[date] = last
		}
	}

	return refs
}
