package filters

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

type DistanceMethod string

const (
	Percent   DistanceMethod = "percent"
	Manhattan DistanceMethod = "manhattan"
	Euclidean DistanceMethod = "euclidean"
)

func (m DistanceMethod) Validate() error {
	if m != Percent && m != Manhattan && m != Euclidean {
		return fmt.Errorf("DistanceMethod: Validate: invalid distance method: %s", m)
	}

	return nil
}

// RelativeDistance measures how far a sits from the reference b. Infinite
// results (reference zero under the percent method) are mapped to NaN: a
// threshold comparison against Inf is always true and would degenerate the
// downstream filter.
func RelativeDistance(a, b float64, method DistanceMethod) (float64, error) {
	var result float64
	switch method {
	case Percent:
		result = (a - b) / b * 100
	case Manhattan:
		result = math.Abs(a - b)
	case Euclidean:
		result = math.Sqrt((a - b) * (a - b))
	default:
		return math.NaN(), fmt.Errorf("RelativeDistance: %w", method.Validate())
	}

	if math.IsInf(result, 0) {
		return math.NaN(), nil
	}

	return result, nil
}

// FlagOutliers flags records whose absolute relative distance exceeds
// threshold times the sample standard deviation of the distances within the
// record's group. NaN distances count as zero so that legitimate upstream
// NaNs do not trigger mass exclusion. Records with an empty group key, and
// groups too small to estimate a spread from, are never flagged.
func FlagOutliers(distances []float64, groupKeys []string, threshold float64) ([]bool, error) {
	if len(distances) != len(groupKeys) {
		return nil, fmt.Errorf("FlagOutliers: distances length %d does not match group keys length %d", len(distances), len(groupKeys))
	}

	cleaned := make([]float64, len(distances))
	for i, d := range distances {
		if math.IsNaN(d) {
			d = 0
		}

		cleaned[i] = d
	}

	groups := make(map[string][]int)
	for i, key := range groupKeys {
		if key == "" {
			continue
		}

		groups[key] = append(groups[key], i)
	}

	flags := make([]bool, len(distances))
	for _, indices := range groups {
		if len(indices) < 2 {
			continue
		}

		sample := make([]float64, 0, len(indices))
		for _, i := range indices {
			sample = append(sample, cleaned[i])
		}

		sd, err := stats.StandardDeviationSample(sample)
		if err != nil || math.IsNaN(sd) {
			continue
		}

		for _, i := range indices {
			if math.Abs(cleaned[i]) > threshold*sd {
				flags[i] = true
			}
		}
	}

	return flags, nil
}
