package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
)

var stdNormal = distuv.UnitNormal

func d1(s, k, t, r, sigma float64) float64 {
	return (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
}

// EuropeanCallPrice prices a European call under Black-Scholes-Merton with
// continuous compounding and no dividends. Non-positive inputs propagate as
// NaN; callers must treat non-finite results as price-undefined.
func EuropeanCallPrice(s, k, t, r, sigma float64) float64 {
	d := d1(s, k, t, r, sigma)
	d2 := d - sigma*math.Sqrt(t)

	return s*stdNormal.CDF(d) - k*math.Exp(-r*t)*stdNormal.CDF(d2)
}

// EuropeanPutPrice prices a European put under Black-Scholes-Merton.
func EuropeanPutPrice(s, k, t, r, sigma float64) float64 {
	d := d1(s, k, t, r, sigma)
	d2 := d - sigma*math.Sqrt(t)

	return k*math.Exp(-r*t)*stdNormal.CDF(-d2) - s*stdNormal.CDF(-d)
}

// Price dispatches on the option side.
func Price(side optionmodels.OptionType, s, k, t, r, sigma float64) float64 {
	if side == optionmodels.Call {
		return EuropeanCallPrice(s, k, t, r, sigma)
	}

	return EuropeanPutPrice(s, k, t, r, sigma)
}

// Vega is the option price sensitivity to volatility, identical for calls
// and puts.
func Vega(s, k, t, r, sigma float64) float64 {
	return s * stdNormal.Prob(d1(s, k, t, r, sigma)) * math.Sqrt(t)
}
