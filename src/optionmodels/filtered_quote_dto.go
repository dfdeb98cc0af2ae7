package optionmodels

import (
	"math"
	"strconv"
)

func formatNullableFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cpFlag(o OptionType) string {
	if o == Call {
		return "C"
	}

	return "P"
}

// IVFilteredQuoteDTO is the CSV shape of an IV-path output row.
type IVFilteredQuoteDTO struct {
	Date            string  `csv:"date"`
	Expiration      string  `csv:"exdate"`
	Strike          float64 `csv:"strike_price"`
	CPFlag          string  `csv:"cp_flag"`
	UnderlyingPrice float64 `csv:"sec_price"`
	BestBid         float64 `csv:"best_bid"`
	BestOffer       float64 `csv:"best_offer"`
	IV              string  `csv:"impl_volatility"`
	Moneyness       float64 `csv:"moneyness"`
	LogIV           string  `csv:"log_iv"`
	FittedIV        string  `csv:"fitted_iv"`
	MoneynessBin    string  `csv:"moneyness_bin"`
	RelDistanceIV   string  `csv:"rel_distance_iv"`
	IsOutlierIV     bool    `csv:"is_outlier_iv"`
}

func NewIVFilteredQuoteDTO(q *IVFilteredQuote) *IVFilteredQuoteDTO {
	return &IVFilteredQuoteDTO{
		Date:            q.Date.Format("2006-01-02"),
		Expiration:      q.Expiration.Format("2006-01-02"),
		Strike:          q.Strike,
		CPFlag:          cpFlag(q.OptionType),
		UnderlyingPrice: q.UnderlyingPrice,
		BestBid:         q.BestBid,
		BestOffer:       q.BestOffer,
		IV:              formatNullableFloat(q.IV),
		Moneyness:       q.Moneyness,
		LogIV:           formatNullableFloat(q.LogIV),
		FittedIV:        formatNullableFloat(q.FittedIV),
		MoneynessBin:    q.MoneynessBin,
		RelDistanceIV:   formatNullableFloat(q.RelDistanceIV),
		IsOutlierIV:     q.IsOutlierIV,
	}
}

// PCPFilteredQuoteDTO is the CSV shape of a put-call-parity-path output row.
type PCPFilteredQuoteDTO struct {
	Date               string  `csv:"date"`
	Expiration         string  `csv:"exdate"`
	Strike             float64 `csv:"strike_price"`
	CPFlag             string  `csv:"cp_flag"`
	UnderlyingPrice    float64 `csv:"sec_price"`
	BestBid            float64 `csv:"best_bid"`
	BestOffer          float64 `csv:"best_offer"`
	IV                 string  `csv:"impl_volatility"`
	Moneyness          float64 `csv:"moneyness"`
	MidPrice           float64 `csv:"mid_price"`
	PCParityIntRate    string  `csv:"pc_parity_int_rate"`
	DailyMedianRate    string  `csv:"daily_median_rate"`
	RelDistanceIntRate string  `csv:"rel_distance_int_rate"`
	IsOutlierIntRate   bool    `csv:"is_outlier_int_rate"`
}

func NewPCPFilteredQuoteDTO(q *PCPFilteredQuote) *PCPFilteredQuoteDTO {
	return &PCPFilteredQuoteDTO{
		Date:               q.Date.Format("2006-01-02"),
		Expiration:         q.Expiration.Format("2006-01-02"),
		Strike:             q.Strike,
		CPFlag:             cpFlag(q.OptionType),
		UnderlyingPrice:    q.UnderlyingPrice,
		BestBid:            q.BestBid,
		BestOffer:          q.BestOffer,
		IV:                 formatNullableFloat(q.IV),
		Moneyness:          q.Moneyness,
		MidPrice:           q.MidPrice,
		PCParityIntRate:    formatNullableFloat(q.PCParityIntRate),
		DailyMedianRate:    formatNullableFloat(q.DailyMedianRate),
		RelDistanceIntRate: formatNullableFloat(q.RelDistanceIntRate),
		IsOutlierIntRate:   q.IsOutlierIntRate,
	}
}
