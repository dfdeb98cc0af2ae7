package optionmodels

import (
	"fmt"
	"math"
	"time"
)

// OptionQuote is a single exchange-traded option quote as delivered by the
// upstream ingestion stage. IV is the vendor-observed implied volatility and
// is NaN when the vendor did not supply one.
type OptionQuote struct {
	Date            time.Time
	Expiration      time.Time
	Strike          float64
	OptionType      OptionType
	UnderlyingPrice float64
	BestBid         float64
	BestOffer       float64
	IV              float64
}

func (q *OptionQuote) Validate() error {
	if err := q.OptionType.Validate(); err != nil {
		return fmt.Errorf("OptionQuote: Validate: %w", err)
	}

	if q.Strike <= 0 {
		return fmt.Errorf("OptionQuote: Validate: strike must be positive, got %f", q.Strike)
	}

	if q.UnderlyingPrice <= 0 {
		return fmt.Errorf("OptionQuote: Validate: underlying price must be positive, got %f", q.UnderlyingPrice)
	}

	if !q.Expiration.After(q.Date) {
		return fmt.Errorf("OptionQuote: Validate: expiration %s is not after quote date %s", q.Expiration.Format("2006-01-02"), q.Date.Format("2006-01-02"))
	}

	if q.BestBid > q.BestOffer {
		return fmt.Errorf("OptionQuote: Validate: best bid %f exceeds best offer %f", q.BestBid, q.BestOffer)
	}

	return nil
}

// Moneyness is strike over underlying price.
func (q *OptionQuote) Moneyness() float64 {
	return q.Strike / q.UnderlyingPrice
}

func (q *OptionQuote) MidPrice() float64 {
	return (q.BestBid + q.BestOffer) / 2
}

// TimeToMaturityYears converts the quote-to-expiration span to years on a
// 365-day basis.
func (q *OptionQuote) TimeToMaturityYears() float64 {
	return q.Expiration.Sub(q.Date).Hours() / 24 / 365
}

func (q *OptionQuote) DaysToMaturity() int {
	return int(q.Expiration.Sub(q.Date).Hours() / 24)
}

// LogIV is the natural log of the observed implied volatility, NaN when the
// observed IV is missing or non-positive.
func (q *OptionQuote) LogIV() float64 {
	if !(q.IV > 0) {
		return math.NaN()
	}

	return math.Log(q.IV)
}

func (q *OptionQuote) HasIV() bool {
	return !math.IsNaN(q.IV)
}
