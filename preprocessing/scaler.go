// Package preprocessing provides variable standardization. Centering and
// scaling both variables before a simple regression makes the slope equal
// the Pearson correlation of the raw variables, which is the main use this
// library puts it to.
package preprocessing

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/maduhu/lmfit/core/model"
	"github.com/maduhu/lmfit/pkg/errors"
)

// StandardScaler centers columns to mean zero and scales them to unit
// standard deviation.
type StandardScaler struct {
	model.BaseEstimator

	// Mean and Scale hold the per-column centering and scaling constants
	// learned by Fit.
	Mean  []float64
	Scale []float64
	// NFeatures is the number of columns seen during Fit.
	NFeatures int

	withMean bool
	withStd  bool
}

// NewStandardScaler creates a scaler that both centers and scales.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{withMean: true, withStd: true}
}

// NewStandardScalerWith creates a scaler with centering and scaling toggled
// independently.
func NewStandardScalerWith(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{withMean: withMean, withStd: withStd}
}

// Fit learns per-column means and standard deviations.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		if s.withMean {
			s.Mean[j] = stat.Mean(col, nil)
		}
		s.Scale[j] = 1
		if s.withStd {
			sd := stat.StdDev(col, nil)
			if sd == 0 {
				return errors.NewModelError("StandardScaler.Fit", "constant column", errors.ErrZeroVariance)
			}
			s.Scale[j] = sd
		}
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X using the fitted constants.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler and transforms X in one call.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized values back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return out, nil
}

// StandardizeVector is a convenience for the one-column case.
func StandardizeVector(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, errors.NewModelError("preprocessing.StandardizeVector", "empty data", errors.ErrEmptyData)
	}
	mean := stat.Mean(x, nil)
	sd := stat.StdDev(x, nil)
	if sd == 0 {
		return nil, errors.NewModelError("preprocessing.StandardizeVector", "constant input", errors.ErrZeroVariance)
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - mean) / sd
	}
	return out, nil
}
