// Package design builds design matrices from continuous and categorical
// terms.
//
// Categorical terms expand to indicator columns under one of two codings.
// Treatment coding absorbs the reference level into the intercept, so each
// remaining level's coefficient estimates the difference from the reference
// group. Cell-means coding drops the intercept and emits one indicator per
// level, so each coefficient estimates that group's mean directly.
// Interactions expand to the elementwise products of their component
// columns, which for treatment-coded factors reproduces R's model.matrix
// convention.
package design

import (
	"gonum.org/v1/gonum/mat"

	"github.com/maduhu/lmfit/core/parallel"
	"github.com/maduhu/lmfit/dataset"
	"github.com/maduhu/lmfit/pkg/errors"
)

// Coding selects how a categorical term expands to indicator columns.
type Coding int

const (
	// Treatment is reference-group coding: one column per non-reference
	// level, each 1 where the observation is at that level.
	Treatment Coding = iota
	// CellMeans emits one column per level and requires the model to have
	// no intercept.
	CellMeans
)

// InterceptName is the column name used for the intercept, matching R's
// summary output.
const InterceptName = "(Intercept)"

// Matrix is a built design matrix together with its coefficient names, in
// column order.
type Matrix struct {
	X     *mat.Dense
	Names []string
}

// NumColumns returns the number of model columns.
func (m *Matrix) NumColumns() int { return len(m.Names) }

// block is one term expanded to named columns.
type block struct {
	names []string
	cols  [][]float64
}

// Term is one model term: a continuous covariate, a coded factor, or an
// interaction.
type Term interface {
	expand(n int) (block, error)
	label() string
}

type contTerm struct {
	name   string
	values []float64
}

// Cont is a continuous covariate term.
func Cont(name string, values []float64) Term {
	return &contTerm{name: name, values: values}
}

func (t *contTerm) label() string { return t.name }

func (t *contTerm) expand(n int) (block, error) {
	if len(t.values) != n {
		return block{}, errors.NewDimensionError("design.Cont("+t.name+")", n, len(t.values), 0)
	}
	return block{names: []string{t.name}, cols: [][]float64{t.values}}, nil
}

type catTerm struct {
	name   string
	factor *dataset.Factor
	coding Coding
}

// Cat is a categorical term expanded under the given coding. Column names
// follow R's convention of factor name immediately followed by level name,
// e.g. "treatmentB".
func Cat(name string, f *dataset.Factor, coding Coding) Term {
	return &catTerm{name: name, factor: f, coding: coding}
}

func (t *catTerm) label() string { return t.name }

func (t *catTerm) expand(n int) (block, error) {
	if t.factor.Len() != n {
		return block{}, errors.NewDimensionError("design.Cat("+t.name+")", n, t.factor.Len(), 0)
	}

	first := 0
	if t.coding == Treatment {
		// Reference level is absorbed into the intercept.
		first = 1
	}

	levels := t.factor.Levels()
	var b block
	for lv := first; lv < len(levels); lv++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			if t.factor.Code(i) == lv {
				col[i] = 1
			}
		}
		b.names = append(b.names, t.name+levels[lv])
		b.cols = append(b.cols, col)
	}
	return b, nil
}

type interTerm struct {
	a, b Term
}

// Interaction is the product term of two model terms. Columns are the
// pairwise elementwise products of the component columns, named "a:b".
func Interaction(a, b Term) Term {
	return &interTerm{a: a, b: b}
}

func (t *interTerm) label() string { return t.a.label() + ":" + t.b.label() }

func (t *interTerm) expand(n int) (block, error) {
	if t.a.label() == t.b.label() {
		return block{}, errors.NewValueError("design.Interaction", "cannot interact term "+t.a.label()+" with itself")
	}
	ba, err := t.a.expand(n)
	if err != nil {
		return block{}, err
	}
	bb, err := t.b.expand(n)
	if err != nil {
		return block{}, err
	}

	var out block
	for ia, ca := range ba.cols {
		for ib, cb := range bb.cols {
			col := make([]float64, n)
			for i := 0; i < n; i++ {
				col[i] = ca[i] * cb[i]
			}
			out.names = append(out.names, ba.names[ia]+":"+bb.names[ib])
			out.cols = append(out.cols, col)
		}
	}
	return out, nil
}

// Builder assembles a design matrix for n observations.
type Builder struct {
	n         int
	intercept bool
	terms     []Term
}

// NewBuilder creates a builder with an intercept column.
func NewBuilder(n int) *Builder {
	return &Builder{n: n, intercept: true}
}

// NewBuilderNoIntercept creates a builder without an intercept column, as
// required for cell-means coding.
func NewBuilderNoIntercept(n int) *Builder {
	return &Builder{n: n}
}

// Add appends a term. Terms expand to columns in the order they are added.
func (b *Builder) Add(terms ...Term) *Builder {
	b.terms = append(b.terms, terms...)
	return b
}

// Build expands all terms into the design matrix. Cell-means terms in a
// model with an intercept are rejected because the indicator columns would
// sum to the intercept column.
func (b *Builder) Build() (*Matrix, error) {
	if b.n == 0 {
		return nil, errors.NewModelError("design.Build", "empty data", errors.ErrEmptyData)
	}

	var names []string
	var cols [][]float64
	if b.intercept {
		ones := make([]float64, b.n)
		for i := range ones {
			ones[i] = 1
		}
		names = append(names, InterceptName)
		cols = append(cols, ones)
	}

	for _, term := range b.terms {
		if ct := cellMeansComponent(term); ct != nil && b.intercept {
			return nil, errors.NewValueError("design.Build",
				"cell-means coding of "+ct.name+" is aliased with the intercept; use NewBuilderNoIntercept")
		}
		blk, err := term.expand(b.n)
		if err != nil {
			return nil, err
		}
		names = append(names, blk.names...)
		cols = append(cols, blk.cols...)
	}

	if len(cols) == 0 {
		return nil, errors.NewValueError("design.Build", "model has no columns")
	}

	X := buildDense(b.n, cols)

	return &Matrix{X: X, Names: names}, nil
}

// cellMeansComponent returns the first cell-means factor term in t, walking
// interaction components. Cell-means coding parameterizes group means for
// no-intercept models, so it is rejected alongside an intercept even when
// nested in an interaction.
func cellMeansComponent(t Term) *catTerm {
	switch tt := t.(type) {
	case *catTerm:
		if tt.coding == CellMeans {
			return tt
		}
	case *interTerm:
		if ct := cellMeansComponent(tt.a); ct != nil {
			return ct
		}
		return cellMeansComponent(tt.b)
	}
	return nil
}

func buildDense(n int, cols [][]float64) *mat.Dense {
	X := mat.NewDense(n, len(cols), nil)
	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j, col := range cols {
				X.Set(i, j, col[i])
			}
		}
	})
	return X
}
