package filters

import (
	"fmt"
	"math"
)

const (
	moneynessBinStart = 0.875
	moneynessBinEnd   = 1.125
	moneynessBinWidth = 0.025
)

// MoneynessBin places a moneyness value into its half-open bucket on the
// fixed partition [0.875, 1.125) in 0.025 steps. Values outside the
// partition get no bucket and are never flagged by the IV outlier filter.
func MoneynessBin(m float64) string {
	if math.IsNaN(m) || m < moneynessBinStart || m >= moneynessBinEnd {
		return ""
	}

	// the epsilon keeps values sitting on a bin edge in the right bucket
	i := int(math.Floor((m-moneynessBinStart)/moneynessBinWidth + 1e-9))
	low := moneynessBinStart + float64(i)*moneynessBinWidth

	return fmt.Sprintf("[%.3f,%.3f)", low, low+moneynessBinWidth)
}
