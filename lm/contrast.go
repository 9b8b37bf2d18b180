package lm

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/maduhu/lmfit/pkg/errors"
)

// Estimate is an estimated linear combination of coefficients with its
// inference.
type Estimate struct {
	Value  float64
	StdErr float64
	TValue float64
	PValue float64
	DF     int
}

// Contrast estimates the linear combination c'beta for a weight vector in
// design-column order. The standard error is sqrt(c' (X^T X)^(-1) c) times
// the residual standard error, and the p-value is two-sided against a t
// distribution with the residual degrees of freedom.
//
// This is how simple effects are read off a model with interactions: the
// effect of treatment at a non-reference level is the treatment main-effect
// coefficient plus the corresponding interaction coefficient, i.e. a
// contrast with weight 1 on each.
func (m *OLS) Contrast(weights []float64) (*Estimate, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Contrast")
	}
	if len(weights) != m.p {
		return nil, errors.NewDimensionError("OLS.Contrast", m.p, len(weights), 1)
	}

	c := mat.NewVecDense(m.p, weights)

	value := mat.Dot(c, m.Coef_)

	// Variance of c'beta is sigma^2 * c' (X^T X)^(-1) c.
	var tmp mat.VecDense
	tmp.MulVec(m.xtxInv, c)
	variance := m.Sigma_ * m.Sigma_ * mat.Dot(c, &tmp)
	if variance < 0 {
		variance = 0
	}
	se := math.Sqrt(variance)

	est := &Estimate{Value: value, StdErr: se, DF: m.ResidualDF_}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.ResidualDF_)}
	est.TValue, est.PValue = tStatistic(value, se, tDist)
	return est, nil
}

// ContrastNamed estimates a contrast given weights keyed by coefficient
// name; unnamed coefficients get weight zero.
func (m *OLS) ContrastNamed(weights map[string]float64) (*Estimate, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "ContrastNamed")
	}

	w := make([]float64, m.p)
	seen := make(map[string]bool, len(weights))
	for j, name := range m.names {
		if v, ok := weights[name]; ok {
			w[j] = v
			seen[name] = true
		}
	}
	for name := range weights {
		if !seen[name] {
			return nil, errors.NewValueError("OLS.ContrastNamed", "no coefficient named "+name)
		}
	}
	return m.Contrast(w)
}
