package optionmodels

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuote() *OptionQuote {
	date := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	return &OptionQuote{
		Date:            date,
		Expiration:      date.AddDate(0, 0, 73),
		Strike:          105,
		OptionType:      Call,
		UnderlyingPrice: 100,
		BestBid:         4,
		BestOffer:       6,
		IV:              0.25,
	}
}

func TestOptionQuoteValidate(t *testing.T) {
	require.NoError(t, validQuote().Validate())

	q := validQuote()
	q.OptionType = "straddle"
	assert.Error(t, q.Validate())

	q = validQuote()
	q.Strike = 0
	assert.Error(t, q.Validate())

	q = validQuote()
	q.UnderlyingPrice = -1
	assert.Error(t, q.Validate())

	q = validQuote()
	q.Expiration = q.Date
	assert.Error(t, q.Validate())

	q = validQuote()
	q.BestBid = 7
	assert.Error(t, q.Validate())
}

func TestOptionQuoteDerivedFields(t *testing.T) {
	q := validQuote()

	assert.InDelta(t, 1.05, q.Moneyness(), 1e-12)
	assert.InDelta(t, 5.0, q.MidPrice(), 1e-12)
	assert.Equal(t, 73, q.DaysToMaturity())
	assert.InDelta(t, 0.2, q.TimeToMaturityYears(), 1e-12)
}

func TestOptionQuoteLogIV(t *testing.T) {
	q := validQuote()
	assert.InDelta(t, math.Log(0.25), q.LogIV(), 1e-12)
	assert.True(t, q.HasIV())

	q.IV = math.NaN()
	assert.True(t, math.IsNaN(q.LogIV()))
	assert.False(t, q.HasIV())

	q.IV = -0.1
	assert.True(t, math.IsNaN(q.LogIV()))
}

func TestNewIVFilteredQuoteInitializesSentinels(t *testing.T) {
	row := NewIVFilteredQuote(validQuote())

	assert.InDelta(t, 1.05, row.Moneyness, 1e-12)
	assert.InDelta(t, math.Log(0.25), row.LogIV, 1e-12)
	assert.True(t, math.IsNaN(row.FittedIV))
	assert.True(t, math.IsNaN(row.RelDistanceIV))
	assert.False(t, row.IsOutlierIV)
}

func TestNewPCPFilteredQuoteInitializesSentinels(t *testing.T) {
	row := NewPCPFilteredQuote(validQuote())

	assert.InDelta(t, 1.05, row.Moneyness, 1e-12)
	assert.InDelta(t, 5.0, row.MidPrice, 1e-12)
	assert.True(t, math.IsNaN(row.PCParityIntRate))
	assert.True(t, math.IsNaN(row.DailyMedianRate))
	assert.True(t, math.IsNaN(row.RelDistanceIntRate))
}
