package filters

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
	"github.com/jmbejara/constantinides-2013-options/src/utils"
)

// a degree-2 polynomial needs at least 3 points to be well-determined
const minFitGroupSize = 3

type fitGroupKey struct {
	date   string
	exdate string
	side   optionmodels.OptionType
}

func (k fitGroupKey) String() string {
	return fmt.Sprintf("date=%s exdate=%s side=%s", k.date, k.exdate, k.side)
}

// fitQuadratic least-squares fits ys = c0*x^2 + c1*x + c2 via QR on the
// Vandermonde system. A mat.Condition error means the fit is numerically
// ill-conditioned; the coefficients are still usable and are returned
// alongside the error so callers can flag the condition without failing.
func fitQuadratic(xs, ys []float64) ([3]float64, error) {
	n := len(xs)
	a := mat.NewDense(n, 3, nil)
	for i, x := range xs {
		a.Set(i, 0, x*x)
		a.Set(i, 1, x)
		a.Set(i, 2, 1)
	}

	var qr mat.QR
	qr.Factorize(a)

	var coef mat.VecDense
	err := qr.SolveVecTo(&coef, false, mat.NewVecDense(n, ys))

	return [3]float64{coef.AtVec(0), coef.AtVec(1), coef.AtVec(2)}, err
}

func evalQuadratic(coef [3]float64, x float64) float64 {
	return coef[0]*x*x + coef[1]*x + coef[2]
}

// ApplyQuadraticIVFit fits log-IV as a quadratic function of moneyness per
// (date, expiration, side) group and stores each member's fitted value.
// Rows with an undefined moneyness or log-IV, and rows in groups smaller
// than three members, are excluded from the result: they carry no fitted
// value and must not reach the outlier stage. Input order is preserved.
func ApplyQuadraticIVFit(rows []*optionmodels.IVFilteredQuote) []*optionmodels.IVFilteredQuote {
	groups := make(map[fitGroupKey][]int)
	for i, row := range rows {
		if math.IsNaN(row.Moneyness) || math.IsNaN(row.LogIV) {
			continue
		}

		key := fitGroupKey{
			date:   utils.DateKey(row.Date),
			exdate: utils.DateKey(row.Expiration),
			side:   row.OptionType,
		}
		groups[key] = append(groups[key], i)
	}

	retained := make(map[int]bool)
	for key, indices := range groups {
		if len(indices) < minFitGroupSize {
			continue
		}

		xs := make([]float64, 0, len(indices))
		ys := make([]float64, 0, len(indices))
		for _, i := range indices {
			xs = append(xs, rows[i].Moneyness)
			ys = append(ys, rows[i].LogIV)
		}

		coef, err := fitQuadratic(xs, ys)
		if err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				log.Warnf("ApplyQuadraticIVFit: fit failed for group %s: %v", key, err)
				continue
			}

			log.Warnf("ApplyQuadraticIVFit: poorly conditioned fit for group %s: %v", key, err)
		}

		for _, i := range indices {
			rows[i].FittedIV = evalQuadratic(coef, rows[i].Moneyness)
			retained[i] = true
		}
	}

	out := make([]*optionmodels.IVFilteredQuote, 0, len(retained))
	for i, row := range rows {
		if retained[i] {
			out = append(out, row)
		}
	}

	return out
}
