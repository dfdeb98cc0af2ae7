package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
)

func TestEuropeanCallPrice(t *testing.T) {
	// S=100, K=120, T=1.75, r=0.05, sigma=0.65
	price := EuropeanCallPrice(100, 120, 1.75, 0.05, 0.65)
	assert.InDelta(t, 30.156619040994123, price, 1e-10)
}

func TestEuropeanPutPrice(t *testing.T) {
	price := EuropeanPutPrice(100, 120, 1.75, 0.05, 0.65)
	assert.InDelta(t, 40.102883639099424, price, 1e-10)
}

func TestPutCallParity(t *testing.T) {
	cases := []struct {
		s, k, tt, r, sigma float64
	}{
		{100, 120, 1.75, 0.05, 0.65},
		{100, 100, 1.0, 0.05, 0.2},
		{50, 45, 0.25, 0.01, 0.4},
		{2000, 2100, 0.5, 0.03, 0.15},
	}

	for _, c := range cases {
		call := EuropeanCallPrice(c.s, c.k, c.tt, c.r, c.sigma)
		put := EuropeanPutPrice(c.s, c.k, c.tt, c.r, c.sigma)
		assert.InDelta(t, c.s-c.k*math.Exp(-c.r*c.tt), call-put, 1e-10)
	}
}

func TestCallPriceMonotonicInSigma(t *testing.T) {
	prev := math.Inf(-1)
	for sigma := 0.01; sigma <= 3.0; sigma += 0.01 {
		price := EuropeanCallPrice(100, 120, 1.75, 0.05, sigma)
		assert.GreaterOrEqual(t, price, prev, "call price must be non-decreasing in sigma, broke at sigma=%f", sigma)
		prev = price
	}
}

func TestPriceDomainErrorsPropagateAsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(EuropeanCallPrice(-100, 120, 1.75, 0.05, 0.65)))
	assert.True(t, math.IsNaN(EuropeanCallPrice(100, -120, 1.75, 0.05, 0.65)))
	assert.True(t, math.IsNaN(EuropeanPutPrice(-100, 120, 1.75, 0.05, 0.65)))
}

func TestPriceDispatchesOnSide(t *testing.T) {
	call := Price(optionmodels.Call, 100, 120, 1.75, 0.05, 0.65)
	put := Price(optionmodels.Put, 100, 120, 1.75, 0.05, 0.65)

	assert.InDelta(t, EuropeanCallPrice(100, 120, 1.75, 0.05, 0.65), call, 1e-12)
	assert.InDelta(t, EuropeanPutPrice(100, 120, 1.75, 0.05, 0.65), put, 1e-12)
}

func TestVega(t *testing.T) {
	vega := Vega(100, 120, 1.75, 0.05, 0.65)
	assert.Greater(t, vega, 0.0)

	// vega is the derivative of price with respect to sigma
	h := 1e-6
	numeric := (EuropeanCallPrice(100, 120, 1.75, 0.05, 0.65+h) - EuropeanCallPrice(100, 120, 1.75, 0.05, 0.65-h)) / (2 * h)
	assert.InDelta(t, numeric, vega, 1e-4)
}
