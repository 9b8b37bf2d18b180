// Package dataset provides the in-memory rectangular table that fitting
// operates on: named numeric and factor columns with a consistent row count,
// loaded from delimited text or built directly.
package dataset

import (
	"gonum.org/v1/gonum/stat"

	"github.com/maduhu/lmfit/pkg/errors"
)

// ColumnType distinguishes numeric from categorical columns.
type ColumnType int

const (
	// Numeric is a float64-valued column.
	Numeric ColumnType = iota
	// Categorical is a factor column.
	Categorical
)

type column struct {
	kind   ColumnType
	nums   []float64
	factor *Factor
}

// Table is a rectangular dataset. Columns are added once and not mutated
// afterwards.
type Table struct {
	n     int
	names []string
	cols  map[string]column
}

// NewTable creates an empty table expecting n rows per column.
func NewTable(n int) *Table {
	return &Table{n: n, cols: make(map[string]column)}
}

// NumRows returns the number of observations.
func (t *Table) NumRows() int { return t.n }

// Names returns the column names in insertion order.
func (t *Table) Names() []string { return t.names }

// AddNumeric adds a numeric column.
func (t *Table) AddNumeric(name string, values []float64) error {
	if len(values) != t.n {
		return errors.NewDimensionError("Table.AddNumeric", t.n, len(values), 0)
	}
	if _, ok := t.cols[name]; ok {
		return errors.NewValueError("Table.AddNumeric", "column "+name+" already exists")
	}
	t.cols[name] = column{kind: Numeric, nums: values}
	t.names = append(t.names, name)
	return nil
}

// AddFactor adds a factor column.
func (t *Table) AddFactor(name string, f *Factor) error {
	if f.Len() != t.n {
		return errors.NewDimensionError("Table.AddFactor", t.n, f.Len(), 0)
	}
	if _, ok := t.cols[name]; ok {
		return errors.NewValueError("Table.AddFactor", "column "+name+" already exists")
	}
	t.cols[name] = column{kind: Categorical, factor: f}
	t.names = append(t.names, name)
	return nil
}

// Type returns the type of the named column.
func (t *Table) Type(name string) (ColumnType, error) {
	col, ok := t.cols[name]
	if !ok {
		return 0, errors.NewValueError("Table.Type", "no column named "+name)
	}
	return col.kind, nil
}

// Numeric returns the values of a numeric column.
func (t *Table) Numeric(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, errors.NewValueError("Table.Numeric", "no column named "+name)
	}
	if col.kind != Numeric {
		return nil, errors.NewValueError("Table.Numeric", "column "+name+" is not numeric")
	}
	return col.nums, nil
}

// Factor returns a factor column.
func (t *Table) Factor(name string) (*Factor, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, errors.NewValueError("Table.Factor", "no column named "+name)
	}
	if col.kind != Categorical {
		return nil, errors.NewValueError("Table.Factor", "column "+name+" is not a factor")
	}
	return col.factor, nil
}

// Relevel replaces the named factor column with a copy whose reference level
// is ref.
func (t *Table) Relevel(name, ref string) error {
	f, err := t.Factor(name)
	if err != nil {
		return err
	}
	releveled, err := f.Relevel(ref)
	if err != nil {
		return err
	}
	t.cols[name] = column{kind: Categorical, factor: releveled}
	return nil
}

// GroupStat summarizes a numeric column within one level of a grouping
// factor.
type GroupStat struct {
	Level string
	N     int
	Mean  float64
	SD    float64
}

// GroupSummary computes per-level mean, standard deviation and count of a
// numeric column grouped by a factor column, ordered by the factor's levels.
func (t *Table) GroupSummary(value, by string) ([]GroupStat, error) {
	vals, err := t.Numeric(value)
	if err != nil {
		return nil, err
	}
	f, err := t.Factor(by)
	if err != nil {
		return nil, err
	}

	groups := make([][]float64, f.NumLevels())
	for i, v := range vals {
		code := f.Code(i)
		groups[code] = append(groups[code], v)
	}

	out := make([]GroupStat, f.NumLevels())
	for code, lv := range f.Levels() {
		g := groups[code]
		gs := GroupStat{Level: lv, N: len(g)}
		if len(g) > 0 {
			gs.Mean = stat.Mean(g, nil)
		}
		if len(g) > 1 {
			gs.SD = stat.StdDev(g, nil)
		}
		out[code] = gs
	}
	return out, nil
}
