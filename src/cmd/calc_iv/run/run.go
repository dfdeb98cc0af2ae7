package run

import (
	"fmt"
	"math"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
	"github.com/jmbejara/constantinides-2013-options/src/pricing"
)

type RunArgs struct {
	Underlying    float64
	Strike        float64
	YearsToExpiry float64
	Rate          float64
	Sigma         float64
	MarketPrice   float64
	Side          string
}

// RunOutput carries the priced values. The price fields are NaN unless a
// sigma was supplied; ImpliedVols is nil unless a market price was supplied.
type RunOutput struct {
	CallPrice   float64
	PutPrice    float64
	Vega        float64
	ImpliedVols map[pricing.SolverMethod]float64
}

func Run(args RunArgs) (RunOutput, error) {
	side := optionmodels.OptionType(args.Side)
	if err := side.Validate(); err != nil {
		return RunOutput{}, fmt.Errorf("Run: %w", err)
	}

	output := RunOutput{
		CallPrice: math.NaN(),
		PutPrice:  math.NaN(),
		Vega:      math.NaN(),
	}

	if args.Sigma > 0 {
		output.CallPrice = pricing.EuropeanCallPrice(args.Underlying, args.Strike, args.YearsToExpiry, args.Rate, args.Sigma)
		output.PutPrice = pricing.EuropeanPutPrice(args.Underlying, args.Strike, args.YearsToExpiry, args.Rate, args.Sigma)
		output.Vega = pricing.Vega(args.Underlying, args.Strike, args.YearsToExpiry, args.Rate, args.Sigma)
	}

	if args.MarketPrice > 0 {
		output.ImpliedVols = pricing.SolveAll(args.MarketPrice, args.Underlying, args.Strike, args.YearsToExpiry, args.Rate, side, pricing.DefaultSolverConfig())
	}

	return output, nil
}
