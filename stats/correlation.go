// Package stats provides the descriptive statistics the modeling packages
// interpret against: Pearson correlation with its t test, and simple
// vector summaries.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/maduhu/lmfit/pkg/errors"
)

// PearsonR computes the Pearson correlation coefficient of two vectors.
func PearsonR(x, y []float64) (float64, error) {
	if err := checkPair("stats.PearsonR", x, y, 2); err != nil {
		return 0, err
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, errors.NewModelError("stats.PearsonR", "correlation undefined for constant input", errors.ErrZeroVariance)
	}
	return r, nil
}

// CorTestResult is the result of testing the null hypothesis of zero
// correlation.
type CorTestResult struct {
	R      float64
	TValue float64
	DF     int
	PValue float64
}

// CorTest computes Pearson's r and its t statistic
// r * sqrt((n-2)/(1-r^2)), with a two-sided p-value against a t distribution
// with n-2 degrees of freedom. This is the same statistic as the slope test
// in a simple regression of the standardized variables.
func CorTest(x, y []float64) (*CorTestResult, error) {
	if err := checkPair("stats.CorTest", x, y, 3); err != nil {
		return nil, err
	}

	r, err := PearsonR(x, y)
	if err != nil {
		return nil, err
	}

	n := len(x)
	df := n - 2
	out := &CorTestResult{R: r, DF: df}

	if 1-r*r <= 0 {
		// Perfect correlation: the statistic diverges.
		out.TValue = math.Inf(1)
		if r < 0 {
			out.TValue = math.Inf(-1)
		}
		out.PValue = 0
		return out, nil
	}

	out.TValue = r * math.Sqrt(float64(df)/(1-r*r))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	out.PValue = 2 * tDist.CDF(-math.Abs(out.TValue))
	return out, nil
}

func checkPair(op string, x, y []float64, minLen int) error {
	if len(x) == 0 || len(y) == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(x) != len(y) {
		return errors.NewDimensionError(op, len(x), len(y), 0)
	}
	if len(x) < minLen {
		return errors.NewValueError(op, fmt.Sprintf("need at least %d observations", minLen))
	}
	return nil
}
