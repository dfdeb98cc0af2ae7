package optionmodels

import "math"

// IVFilteredQuote is a quote carried through the implied-volatility filter
// path. The appended columns are computed once per run; NaN marks a value
// that is undefined for the row.
type IVFilteredQuote struct {
	OptionQuote
	Moneyness     float64
	LogIV         float64
	FittedIV      float64
	MoneynessBin  string
	RelDistanceIV float64
	IsOutlierIV   bool
}

func NewIVFilteredQuote(q *OptionQuote) *IVFilteredQuote {
	return &IVFilteredQuote{
		OptionQuote:   *q,
		Moneyness:     q.Moneyness(),
		LogIV:         q.LogIV(),
		FittedIV:      math.NaN(),
		RelDistanceIV: math.NaN(),
	}
}

// PCPFilteredQuote is a quote carried through the put-call-parity filter
// path, in long form: one row per leg, with the pair-level columns repeated
// on both legs.
type PCPFilteredQuote struct {
	OptionQuote
	Moneyness          float64
	MidPrice           float64
	PCParityIntRate    float64
	DailyMedianRate    float64
	RelDistanceIntRate float64
	IsOutlierIntRate   bool
}

func NewPCPFilteredQuote(q *OptionQuote) *PCPFilteredQuote {
	return &PCPFilteredQuote{
		OptionQuote:        *q,
		Moneyness:          q.Moneyness(),
		MidPrice:           q.MidPrice(),
		PCParityIntRate:    math.NaN(),
		DailyMedianRate:    math.NaN(),
		RelDistanceIntRate: math.NaN(),
	}
}
