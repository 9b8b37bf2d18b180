package preprocessing

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maduhu/lmfit/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	col := make([]float64, 4)
	for j := 0; j < 2; j++ {
		mat.Col(col, j, scaled)
		assert.InDelta(t, 0.0, stat.Mean(col, nil), 1e-12)
		assert.InDelta(t, 1.0, stat.StdDev(col, nil), 1e-12)
	}
}

func TestStandardScalerInverseRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1.5, 2.5, 7.0})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	back, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, X.At(i, 0), back.At(i, 0), 1e-12)
	}
}

func TestStandardScalerWithoutCentering(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})

	scaler := NewStandardScalerWith(false, true)
	require.NoError(t, scaler.Fit(X))
	assert.Equal(t, 0.0, scaler.Mean[0])
	assert.InDelta(t, 1.0, scaler.Scale[0], 1e-12)
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScaler()

	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	constant := mat.NewDense(3, 1, []float64{5, 5, 5})
	err = scaler.Fit(constant)
	assert.True(t, errors.Is(err, errors.ErrZeroVariance))

	require.NoError(t, scaler.Fit(mat.NewDense(3, 1, []float64{1, 2, 3})))
	_, err = scaler.Transform(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	require.Error(t, err)
}

func TestStandardizeVector(t *testing.T) {
	z, err := StandardizeVector([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, stat.Mean(z, nil), 1e-12)
	assert.InDelta(t, 1.0, stat.StdDev(z, nil), 1e-12)

	_, err = StandardizeVector([]float64{3, 3, 3})
	assert.True(t, errors.Is(err, errors.ErrZeroVariance))

	_, err = StandardizeVector(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}
