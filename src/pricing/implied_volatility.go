package pricing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
)

// ErrNoConvergence marks a per-row solver failure. Batch callers map it to an
// undefined sentinel on the row and keep going.
var ErrNoConvergence = errors.New("implied volatility solver did not converge")

type SolverMethod string

const (
	QuasiNewton   SolverMethod = "quasi_newton"
	NewtonRaphson SolverMethod = "newton_raphson"
	BinarySearch  SolverMethod = "binary_search"
)

func (m SolverMethod) Validate() error {
	if m != QuasiNewton && m != NewtonRaphson && m != BinarySearch {
		return fmt.Errorf("SolverMethod: Validate: invalid solver method: %s", m)
	}

	return nil
}

type SolverConfig struct {
	Tolerance     float64
	InitialGuess  float64
	LowerBound    float64
	UpperBound    float64
	MaxIterations int
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Tolerance:     1e-12,
		InitialGuess:  0.05,
		LowerBound:    1e-5,
		UpperBound:    5.0,
		MaxIterations: 100,
	}
}

// SolveImpliedVolatility inverts the pricing model for volatility using the
// requested strategy. A failed solve returns NaN and ErrNoConvergence.
func SolveImpliedVolatility(marketPrice, s, k, t, r float64, side optionmodels.OptionType, method SolverMethod, cfg SolverConfig) (float64, error) {
	switch method {
	case QuasiNewton:
		return solveQuasiNewton(marketPrice, s, k, t, r, side, cfg)
	case NewtonRaphson:
		return solveNewtonRaphson(marketPrice, s, k, t, r, side, cfg)
	case BinarySearch:
		return solveBinarySearch(marketPrice, s, k, t, r, side, cfg)
	default:
		return math.NaN(), fmt.Errorf("SolveImpliedVolatility: %w", method.Validate())
	}
}

// SolveAll runs all three strategies and returns their results keyed by
// method, NaN for the strategies that failed to converge. Intended as a
// consistency check; the strategies can legitimately disagree far from the
// money or near expiry.
func SolveAll(marketPrice, s, k, t, r float64, side optionmodels.OptionType, cfg SolverConfig) map[SolverMethod]float64 {
	results := make(map[SolverMethod]float64, 3)
	for _, method := range []SolverMethod{QuasiNewton, NewtonRaphson, BinarySearch} {
		sigma, err := SolveImpliedVolatility(marketPrice, s, k, t, r, side, method, cfg)
		if err != nil {
			sigma = math.NaN()
		}

		results[method] = sigma
	}

	return results
}

func clampSigma(sigma float64, cfg SolverConfig) float64 {
	return math.Min(math.Max(sigma, cfg.LowerBound), cfg.UpperBound)
}

// solveQuasiNewton minimizes the squared pricing error over sigma with
// BFGS, using vega for the analytic gradient. Bounds are enforced by
// clamping sigma inside the objective, so the optimizer cannot walk the
// price evaluation out of the admissible volatility range.
func solveQuasiNewton(marketPrice, s, k, t, r float64, side optionmodels.OptionType, cfg SolverConfig) (float64, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			diff := Price(side, s, k, t, r, clampSigma(x[0], cfg)) - marketPrice
			return diff * diff
		},
		Grad: func(grad, x []float64) {
			sigma := clampSigma(x[0], cfg)
			diff := Price(side, s, k, t, r, sigma) - marketPrice
			grad[0] = 2 * diff * Vega(s, k, t, r, sigma)
		},
	}

	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   cfg.Tolerance,
			Iterations: 20,
		},
	}

	result, err := optimize.Minimize(problem, []float64{cfg.InitialGuess}, settings, &optimize.BFGS{})
	if err != nil {
		return math.NaN(), fmt.Errorf("solveQuasiNewton: %w: %v", ErrNoConvergence, err)
	}

	if err := result.Status.Err(); err != nil {
		return math.NaN(), fmt.Errorf("solveQuasiNewton: %w: %v", ErrNoConvergence, err)
	}

	sigma := clampSigma(result.X[0], cfg)
	if math.IsNaN(sigma) {
		return math.NaN(), fmt.Errorf("solveQuasiNewton: %w", ErrNoConvergence)
	}

	return sigma, nil
}

// solveNewtonRaphson root-finds price(sigma) = marketPrice with vega as the
// analytic derivative. No bound is enforced; divergence for pathological
// inputs is caught by the iteration ceiling and reported as non-convergence.
func solveNewtonRaphson(marketPrice, s, k, t, r float64, side optionmodels.OptionType, cfg SolverConfig) (float64, error) {
	sigma := cfg.InitialGuess
	for i := 0; i < cfg.MaxIterations; i++ {
		diff := Price(side, s, k, t, r, sigma) - marketPrice
		if math.Abs(diff) < cfg.Tolerance {
			return sigma, nil
		}

		vega := Vega(s, k, t, r, sigma)
		if vega == 0 || math.IsNaN(vega) {
			return math.NaN(), fmt.Errorf("solveNewtonRaphson: %w: vega vanished at sigma=%f", ErrNoConvergence, sigma)
		}

		sigma -= diff / vega
		if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
			return math.NaN(), fmt.Errorf("solveNewtonRaphson: %w: sigma diverged", ErrNoConvergence)
		}
	}

	return math.NaN(), fmt.Errorf("solveNewtonRaphson: %w: exceeded %d iterations", ErrNoConvergence, cfg.MaxIterations)
}

// solveBinarySearch bisects on sigma. Price is monotone increasing in sigma,
// so each step halves the bracket. If the bracket collapses to machine
// precision before the price tolerance is met, the midpoint of the final
// bracket is returned.
func solveBinarySearch(marketPrice, s, k, t, r float64, side optionmodels.OptionType, cfg SolverConfig) (float64, error) {
	low, high := cfg.LowerBound, cfg.UpperBound
	for low < high {
		mid := (low + high) / 2
		if mid <= low || mid >= high {
			// bracket collapse
			return mid, nil
		}

		price := Price(side, s, k, t, r, mid)
		if math.Abs(price-marketPrice) < cfg.Tolerance {
			return mid, nil
		}

		if price < marketPrice {
			low = mid
		} else {
			high = mid
		}
	}

	return (low + high) / 2, nil
}
