package filters

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
	"github.com/jmbejara/constantinides-2013-options/src/pricing"
	"github.com/jmbejara/constantinides-2013-options/src/utils"
)

func TestImpliedInterestRateManufacturedRate(t *testing.T) {
	// S=100, K=100, T=1, call mid 2; set the put mid so that
	// S - C + P = K*e^rho, which makes the implied rate exactly rho
	const rho = 0.03
	date := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	exdate := date.AddDate(0, 0, 365)

	callMid := 2.0
	putMid := 100*math.Exp(rho) - 100 + callMid

	pair := &optionmodels.MatchedPair{
		Call: pcpQuote(date, exdate, optionmodels.Call, 100, 100, callMid, callMid),
		Put:  pcpQuote(date, exdate, optionmodels.Put, 100, 100, putMid, putMid),
	}

	rate := ImpliedInterestRate(pair)
	assert.InDelta(t, rho, rate, 1e-12)
}

func TestImpliedInterestRateFromModelPrices(t *testing.T) {
	// model-consistent mids satisfy parity, so S - C + P = K*e^(-rT) and
	// the implied rate comes out as the negated pricing rate
	const (
		s, k, tt, r, sigma = 100.0, 105.0, 1.0, 0.05, 0.25
	)
	date := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	exdate := date.AddDate(0, 0, 365)

	callMid := pricing.EuropeanCallPrice(s, k, tt, r, sigma)
	putMid := pricing.EuropeanPutPrice(s, k, tt, r, sigma)

	pair := &optionmodels.MatchedPair{
		Call: pcpQuote(date, exdate, optionmodels.Call, k, s, callMid, callMid),
		Put:  pcpQuote(date, exdate, optionmodels.Put, k, s, putMid, putMid),
	}

	rate := ImpliedInterestRate(pair)
	assert.InDelta(t, -r, rate, 1e-10)
}

func TestImpliedInterestRateNonPositiveLogArgument(t *testing.T) {
	date := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	exdate := date.AddDate(0, 0, 365)

	// call mid far above the underlying pushes S - C + P below zero
	pair := &optionmodels.MatchedPair{
		Call: pcpQuote(date, exdate, optionmodels.Call, 100, 100, 200, 200),
		Put:  pcpQuote(date, exdate, optionmodels.Put, 100, 100, 1, 1),
	}

	assert.True(t, math.IsNaN(ImpliedInterestRate(pair)))
}

func TestCalcImpliedInterestRatesSetsBothLegs(t *testing.T) {
	const rho = 0.02
	date := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	exdate := date.AddDate(0, 0, 365)

	callMid := 3.0
	putMid := 100*math.Exp(rho) - 100 + callMid
	call := pcpQuote(date, exdate, optionmodels.Call, 100, 100, callMid, callMid)
	put := pcpQuote(date, exdate, optionmodels.Put, 100, 100, putMid, putMid)

	err := CalcImpliedInterestRates([]*optionmodels.MatchedPair{{Call: call, Put: put}})
	require.NoError(t, err)

	assert.InDelta(t, rho, call.PCParityIntRate, 1e-12)
	assert.Equal(t, call.PCParityIntRate, put.PCParityIntRate)
}

func ratePair(date time.Time, moneyness, rate float64) *optionmodels.MatchedPair {
	exdate := date.AddDate(0, 0, 90)
	call := pcpQuote(date, exdate, optionmodels.Call, 100*moneyness, 100, 1, 1)
	put := pcpQuote(date, exdate, optionmodels.Put, 100*moneyness, 100, 1, 1)
	call.PCParityIntRate = rate
	put.PCParityIntRate = rate
	return &optionmodels.MatchedPair{Call: call, Put: put}
}

func TestDailyReferenceRatesMedianOfNearTheMoneyPairs(t *testing.T) {
	day := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	pairs := []*optionmodels.MatchedPair{
		ratePair(day, 1.00, 0.02),
		ratePair(day, 0.97, 0.03),
		ratePair(day, 1.03, 0.04),
		// far from the money, excluded from the reference sample
		ratePair(day, 1.20, 0.50),
	}

	refs := DailyReferenceRates(pairs)
	require.Contains(t, refs, utils.DateKey(day))
	assert.InDelta(t, 0.03, refs[utils.DateKey(day)], 1e-12)
}

func TestDailyReferenceRatesForwardFill(t *testing.T) {
	day1 := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	pairs := []*optionmodels.MatchedPair{
		ratePair(day1, 1.00, 0.02),
		// no near-the-money pair on day2: inherits day1's reference
		ratePair(day2, 1.20, 0.50),
		ratePair(day3, 1.00, 0.05),
	}

	refs := DailyReferenceRates(pairs)
	assert.InDelta(t, 0.02, refs[utils.DateKey(day1)], 1e-12)
	assert.InDelta(t, 0.02, refs[utils.DateKey(day2)], 1e-12)
	assert.InDelta(t, 0.05, refs[utils.DateKey(day3)], 1e-12)
}

func TestDailyReferenceRatesDiscardsNegativeMedians(t *testing.T) {
	day1 := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	pairs := []*optionmodels.MatchedPair{
		ratePair(day1, 1.00, 0.02),
		// a negative median is implausible as a reference; day2 keeps day1's
		ratePair(day2, 1.00, -0.10),
	}

	refs := DailyReferenceRates(pairs)
	assert.InDelta(t, 0.02, refs[utils.DateKey(day2)], 1e-12)
}

func TestDailyReferenceRatesLeadingDatesHaveNoReference(t *testing.T) {
	day1 := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	pairs := []*optionmodels.MatchedPair{
		// nothing usable on day1
		ratePair(day1, 1.20, 0.50),
		ratePair(day2, 1.00, 0.03),
	}

	refs := DailyReferenceRates(pairs)
	assert.NotContains(t, refs, utils.DateKey(day1))
	assert.InDelta(t, 0.03, refs[utils.DateKey(day2)], 1e-12)
}
