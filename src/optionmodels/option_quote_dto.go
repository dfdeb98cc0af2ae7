package optionmodels

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// OptionQuoteDTO is the CSV shape of a quote as produced by the upstream
// range-filter stage. An empty impl_volatility field means the vendor did not
// report one.
type OptionQuoteDTO struct {
	Date            string  `csv:"date"`
	Expiration      string  `csv:"exdate"`
	Strike          float64 `csv:"strike_price"`
	CPFlag          string  `csv:"cp_flag"`
	UnderlyingPrice float64 `csv:"sec_price"`
	BestBid         float64 `csv:"best_bid"`
	BestOffer       float64 `csv:"best_offer"`
	IV              string  `csv:"impl_volatility"`
}

func parseQuoteDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("parseQuoteDate: error parsing date %q: %v", value, err)
		}
	}

	return t, nil
}

func (d *OptionQuoteDTO) ToModel() (*OptionQuote, error) {
	date, err := parseQuoteDate(d.Date)
	if err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: %w", err)
	}

	exdate, err := parseQuoteDate(d.Expiration)
	if err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: %w", err)
	}

	var optionType OptionType
	switch d.CPFlag {
	case "C", "c":
		optionType = Call
	case "P", "p":
		optionType = Put
	default:
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: invalid cp_flag: %s", d.CPFlag)
	}

	iv := math.NaN()
	if d.IV != "" {
		iv, err = strconv.ParseFloat(d.IV, 64)
		if err != nil {
			return nil, fmt.Errorf("OptionQuoteDTO: ToModel: error parsing impl_volatility %q: %v", d.IV, err)
		}
	}

	quote := &OptionQuote{
		Date:            date,
		Expiration:      exdate,
		Strike:          d.Strike,
		OptionType:      optionType,
		UnderlyingPrice: d.UnderlyingPrice,
		BestBid:         d.BestBid,
		BestOffer:       d.BestOffer,
		IV:              iv,
	}

	if err := quote.Validate(); err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: %w", err)
	}

	return quote, nil
}
