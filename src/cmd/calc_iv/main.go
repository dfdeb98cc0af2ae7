package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jmbejara/constantinides-2013-options/src/cmd/calc_iv/run"
	"github.com/jmbejara/constantinides-2013-options/src/pricing"
)

var rootCmd = &cobra.Command{
	Use:   "calc_iv",
	Short: "Price a European option and solve its implied volatility",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := cmd.Flags().GetFloat64("underlying")
		if err != nil {
			log.Fatalf("error getting underlying: %v", err)
		}

		k, err := cmd.Flags().GetFloat64("strike")
		if err != nil {
			log.Fatalf("error getting strike: %v", err)
		}

		t, err := cmd.Flags().GetFloat64("years-to-expiry")
		if err != nil {
			log.Fatalf("error getting years-to-expiry: %v", err)
		}

		r, err := cmd.Flags().GetFloat64("rate")
		if err != nil {
			log.Fatalf("error getting rate: %v", err)
		}

		sigma, err := cmd.Flags().GetFloat64("sigma")
		if err != nil {
			log.Fatalf("error getting sigma: %v", err)
		}

		marketPrice, err := cmd.Flags().GetFloat64("market-price")
		if err != nil {
			log.Fatalf("error getting market-price: %v", err)
		}

		side, err := cmd.Flags().GetString("side")
		if err != nil {
			log.Fatalf("error getting side: %v", err)
		}

		runArgs := run.RunArgs{
			Underlying:    s,
			Strike:        k,
			YearsToExpiry: t,
			Rate:          r,
			Sigma:         sigma,
			MarketPrice:   marketPrice,
			Side:          side,
		}

		output, err := run.Run(runArgs)
		if err != nil {
			log.Fatalf("error running command: %v", err)
		}

		if sigma > 0 {
			fmt.Printf("European call option price: %v\n", output.CallPrice)
			fmt.Printf("European put option price: %v\n", output.PutPrice)
			fmt.Printf("Vega: %v\n", output.Vega)
		}

		if marketPrice > 0 {
			for _, method := range []pricing.SolverMethod{pricing.QuasiNewton, pricing.NewtonRaphson, pricing.BinarySearch} {
				fmt.Printf("Implied volatility (%s): %v\n", method, output.ImpliedVols[method])
			}
		}
	},
}

func main() {
	rootCmd.PersistentFlags().Float64P("underlying", "S", 0, "Current price of the underlying asset. This flag is required.")
	rootCmd.PersistentFlags().Float64P("strike", "K", 0, "Strike price of the option. This flag is required.")
	rootCmd.PersistentFlags().Float64P("years-to-expiry", "T", 0, "Time to expiration of the option in years. This flag is required.")
	rootCmd.PersistentFlags().Float64P("rate", "r", 0, "Risk-free interest rate.")
	rootCmd.PersistentFlags().Float64("sigma", 0, "Volatility of the underlying; when set, prints call/put prices and vega.")
	rootCmd.PersistentFlags().Float64("market-price", 0, "Observed market price; when set, solves implied volatility with all three methods.")
	rootCmd.PersistentFlags().String("side", "call", "Option side to solve implied volatility for: call or put.")

	rootCmd.MarkPersistentFlagRequired("underlying")
	rootCmd.MarkPersistentFlagRequired("strike")
	rootCmd.MarkPersistentFlagRequired("years-to-expiry")

	cobra.CheckErr(rootCmd.Execute())
}
