package filters

import "github.com/jmbejara/constantinides-2013-options/src/optionmodels"

// Level-2 filters: single-predicate row filters applied before the
// statistical (level-3) stages.

const (
	DefaultMinDaysToMaturity = 7
	DefaultMaxDaysToMaturity = 180
	DefaultMinIV             = 0.05
	DefaultMaxIV             = 1.00
	DefaultMinMoneyness      = 0.8
	DefaultMaxMoneyness      = 1.2
)

func DaysToMaturityFilter(quotes []*optionmodels.OptionQuote, minDays, maxDays int) []*optionmodels.OptionQuote {
	out := make([]*optionmodels.OptionQuote, 0, len(quotes))
	for _, q := range quotes {
		days := q.DaysToMaturity()
		if days >= minDays && days <= maxDays {
			out = append(out, q)
		}
	}

	return out
}

// IVRangeFilter keeps quotes whose observed IV lies in [minIV, maxIV].
// Quotes with a missing IV fail both comparisons and are dropped.
func IVRangeFilter(quotes []*optionmodels.OptionQuote, minIV, maxIV float64) []*optionmodels.OptionQuote {
	out := make([]*optionmodels.OptionQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.IV >= minIV && q.IV <= maxIV {
			out = append(out, q)
		}
	}

	return out
}

func MoneynessFilter(quotes []*optionmodels.OptionQuote, minMoneyness, maxMoneyness float64) []*optionmodels.OptionQuote {
	out := make([]*optionmodels.OptionQuote, 0, len(quotes))
	for _, q := range quotes {
		m := q.Moneyness()
		if m >= minMoneyness && m <= maxMoneyness {
			out = append(out, q)
		}
	}

	return out
}
