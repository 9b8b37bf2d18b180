// Package lm fits ordinary least squares linear models and reports the
// inference that interpretation of coefficients rests on: standard errors,
// t statistics and p-values against a Student's t distribution with n-p
// degrees of freedom.
package lm

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/maduhu/lmfit/core/model"
	"github.com/maduhu/lmfit/design"
	"github.com/maduhu/lmfit/pkg/errors"
)

// OLS is an ordinary least squares linear model fitted by the normal
// equations. Attribute names ending in underscore are populated by Fit.
type OLS struct {
	model.BaseEstimator

	// Coef_ holds the estimated coefficients in design-column order.
	Coef_ *mat.VecDense
	// StdErr_, TValues_ and PValues_ hold per-coefficient inference.
	StdErr_  []float64
	TValues_ []float64
	PValues_ []float64
	// Rank_ is the numerical rank of X^T X; Singular_ its singular values.
	Rank_     int
	Singular_ []float64
	// ResidualDF_ is n - p.
	ResidualDF_ int
	// Sigma_ is the residual standard error sqrt(RSS / (n-p)).
	Sigma_ float64

	names     []string
	n         int
	p         int
	xtxInv    *mat.Dense
	fitted    []float64
	residuals []float64
	rss       float64
	tss       float64

	tol float64
}

// Option configures an OLS model.
type Option func(*OLS)

// WithTolerance sets the singular-value threshold used for rank detection.
func WithTolerance(tol float64) Option {
	return func(m *OLS) {
		m.tol = tol
	}
}

// NewOLS creates an unfitted OLS model.
func NewOLS(opts ...Option) *OLS {
	m := &OLS{tol: 1e-10}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fit estimates the coefficients for the design matrix dm and response y by
// solving the normal equations beta = (X^T X)^(-1) X^T y, then derives
// standard errors from the residual variance and the diagonal of
// (X^T X)^(-1). A singular X^T X, typically from aliased factor levels,
// returns ErrSingularMatrix.
func (m *OLS) Fit(dm *design.Matrix, y []float64) error {
	n, p := dm.X.Dims()
	if n == 0 || p == 0 {
		return errors.NewModelError("OLS.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return errors.NewDimensionError("OLS.Fit", n, len(y), 0)
	}
	if n <= p {
		return errors.NewValueError("OLS.Fit", "need more observations than model columns for inference")
	}

	m.n = n
	m.p = p
	m.names = dm.Names

	var xt mat.Dense
	xt.CloneFrom(dm.X.T())

	var xtx mat.Dense
	xtx.Mul(&xt, dm.X)

	// Rank via SVD before attempting the inverse.
	var svd mat.SVD
	if ok := svd.Factorize(&xtx, mat.SVDNone); !ok {
		return errors.NewModelError("OLS.Fit", "SVD factorization failed", nil)
	}
	m.Singular_ = svd.Values(nil)
	m.Rank_ = 0
	for _, s := range m.Singular_ {
		if s > m.tol {
			m.Rank_++
		}
	}
	if m.Rank_ < p {
		errors.Warn(errors.NewRankDeficiencyWarning("OLS.Fit", m.Rank_, p))
	}

	m.xtxInv = mat.NewDense(p, p, nil)
	if err := m.xtxInv.Inverse(&xtx); err != nil {
		return errors.NewModelError("OLS.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yVec.SetVec(i, y[i])
	}

	var xty mat.VecDense
	xty.MulVec(&xt, yVec)

	m.Coef_ = mat.NewVecDense(p, nil)
	m.Coef_.MulVec(m.xtxInv, &xty)

	m.computeInference(dm.X, y)
	m.SetFitted()
	return nil
}

// computeInference fills in residuals, sigma, standard errors, t statistics
// and two-sided p-values.
func (m *OLS) computeInference(X *mat.Dense, y []float64) {
	n, p := m.n, m.p

	m.fitted = make([]float64, n)
	m.residuals = make([]float64, n)
	var yMean float64
	for i := 0; i < n; i++ {
		yMean += y[i]
	}
	yMean /= float64(n)

	m.rss = 0
	m.tss = 0
	for i := 0; i < n; i++ {
		var pred float64
		for j := 0; j < p; j++ {
			pred += X.At(i, j) * m.Coef_.AtVec(j)
		}
		m.fitted[i] = pred
		m.residuals[i] = y[i] - pred
		m.rss += m.residuals[i] * m.residuals[i]
		m.tss += (y[i] - yMean) * (y[i] - yMean)
	}

	m.ResidualDF_ = n - p
	sigma2 := m.rss / float64(m.ResidualDF_)
	m.Sigma_ = math.Sqrt(sigma2)

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.ResidualDF_)}
	m.StdErr_ = make([]float64, p)
	m.TValues_ = make([]float64, p)
	m.PValues_ = make([]float64, p)
	for j := 0; j < p; j++ {
		se := math.Sqrt(sigma2 * m.xtxInv.At(j, j))
		m.StdErr_[j] = se
		m.TValues_[j], m.PValues_[j] = tStatistic(m.Coef_.AtVec(j), se, tDist)
	}
}

// tStatistic computes a t value and its two-sided p-value, handling the
// exact-fit case where the standard error collapses to zero: a nonzero
// estimate with no residual variance is reported as infinitely significant
// rather than defaulting to t = 0, p = 1.
func tStatistic(estimate, se float64, tDist distuv.StudentsT) (tValue, pValue float64) {
	switch {
	case se > 0:
		tValue = estimate / se
		pValue = 2 * tDist.CDF(-math.Abs(tValue))
	case estimate != 0:
		tValue = math.Inf(1)
		if estimate < 0 {
			tValue = math.Inf(-1)
		}
		pValue = 0
	default:
		tValue = math.NaN()
		pValue = math.NaN()
	}
	return tValue, pValue
}

// Names returns the coefficient names in design-column order.
func (m *OLS) Names() []string { return m.names }

// Coef returns the coefficient for the named design column.
func (m *OLS) Coef(name string) (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("OLS", "Coef")
	}
	for j, n := range m.names {
		if n == name {
			return m.Coef_.AtVec(j), nil
		}
	}
	return 0, errors.NewValueError("OLS.Coef", "no coefficient named "+name)
}

// Predict computes fitted values for new rows of the same design columns.
func (m *OLS) Predict(X mat.Matrix) ([]float64, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Predict")
	}
	r, c := X.Dims()
	if c != m.p {
		return nil, errors.NewDimensionError("OLS.Predict", m.p, c, 1)
	}

	out := make([]float64, r)
	for i := 0; i < r; i++ {
		var pred float64
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * m.Coef_.AtVec(j)
		}
		out[i] = pred
	}
	return out, nil
}

// Fitted returns the fitted values from training.
func (m *OLS) Fitted() ([]float64, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Fitted")
	}
	return m.fitted, nil
}

// Residuals returns the training residuals.
func (m *OLS) Residuals() ([]float64, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Residuals")
	}
	return m.residuals, nil
}

// R2 returns the coefficient of determination of the fit.
func (m *OLS) R2() (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("OLS", "R2")
	}
	if m.tss == 0 {
		return 0, errors.NewModelError("OLS.R2", "total sum of squares is zero", errors.ErrZeroVariance)
	}
	return 1 - m.rss/m.tss, nil
}

// AdjR2 returns the adjusted coefficient of determination.
func (m *OLS) AdjR2() (float64, error) {
	r2, err := m.R2()
	if err != nil {
		return 0, err
	}
	return 1 - (1-r2)*float64(m.n-1)/float64(m.ResidualDF_), nil
}
