package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorLevelsFirstSeenOrder(t *testing.T) {
	f, err := NewFactor([]string{"B", "A", "B", "C"})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A", "C"}, f.Levels())
	assert.Equal(t, "B", f.Reference())
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, "A", f.Value(1))
	assert.Equal(t, []int{2, 1, 1}, f.Counts())
}

func TestFactorExplicitLevels(t *testing.T) {
	f, err := NewFactor([]string{"low", "high", "low"}, "low", "mid", "high")
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "mid", "high"}, f.Levels())
	assert.Equal(t, []int{2, 0, 1}, f.Counts())

	_, err = NewFactor([]string{"low", "extreme"}, "low", "high")
	require.Error(t, err)
}

func TestFactorRelevel(t *testing.T) {
	f, err := NewFactor([]string{"A", "B", "C", "B"})
	require.NoError(t, err)

	r, err := f.Relevel("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, r.Levels())
	// Observations keep their values under the new coding.
	for i := 0; i < f.Len(); i++ {
		assert.Equal(t, f.Value(i), r.Value(i))
	}

	// Original is unchanged.
	assert.Equal(t, "A", f.Reference())

	_, err = f.Relevel("nope")
	require.Error(t, err)
}

func TestTableColumns(t *testing.T) {
	table := NewTable(3)
	require.NoError(t, table.AddNumeric("y", []float64{1, 2, 3}))

	f, err := NewFactor([]string{"a", "b", "a"})
	require.NoError(t, err)
	require.NoError(t, table.AddFactor("g", f))

	assert.Equal(t, []string{"y", "g"}, table.Names())

	kind, err := table.Type("g")
	require.NoError(t, err)
	assert.Equal(t, Categorical, kind)

	_, err = table.Numeric("g")
	require.Error(t, err)
	_, err = table.Factor("y")
	require.Error(t, err)
	_, err = table.Numeric("missing")
	require.Error(t, err)

	// Row-count and duplicate-name violations.
	require.Error(t, table.AddNumeric("short", []float64{1}))
	require.Error(t, table.AddNumeric("y", []float64{4, 5, 6}))
}

func TestGroupSummary(t *testing.T) {
	table := NewTable(6)
	require.NoError(t, table.AddNumeric("y", []float64{1, 2, 3, 4, 6, 9}))
	f, err := NewFactor([]string{"A", "A", "A", "B", "B", "C"})
	require.NoError(t, err)
	require.NoError(t, table.AddFactor("g", f))

	summary, err := table.GroupSummary("y", "g")
	require.NoError(t, err)
	require.Len(t, summary, 3)

	assert.Equal(t, "A", summary[0].Level)
	assert.Equal(t, 3, summary[0].N)
	assert.InDelta(t, 2.0, summary[0].Mean, 1e-12)
	assert.InDelta(t, 1.0, summary[0].SD, 1e-12)

	assert.Equal(t, "B", summary[1].Level)
	assert.InDelta(t, 5.0, summary[1].Mean, 1e-12)
	assert.InDelta(t, math.Sqrt2, summary[1].SD, 1e-12)

	// A single observation has no spread to estimate.
	assert.Equal(t, 1, summary[2].N)
	assert.Equal(t, 0.0, summary[2].SD)
}

func TestTableRelevel(t *testing.T) {
	table := NewTable(2)
	f, err := NewFactor([]string{"A", "B"})
	require.NoError(t, err)
	require.NoError(t, table.AddFactor("g", f))

	require.NoError(t, table.Relevel("g", "B"))
	got, err := table.Factor("g")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Reference())
}
