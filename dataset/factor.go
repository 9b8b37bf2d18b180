package dataset

import (
	"github.com/maduhu/lmfit/pkg/errors"
)

// Factor is a categorical variable with an ordered set of levels. The first
// level is the reference level used by treatment coding.
type Factor struct {
	levels []string
	index  map[string]int
	codes  []int
}

// NewFactor creates a factor from observed values. When levels is empty the
// level order is first appearance in values; otherwise the given order is
// used and any observed value outside it is an error.
func NewFactor(values []string, levels ...string) (*Factor, error) {
	if len(values) == 0 {
		return nil, errors.NewModelError("dataset.NewFactor", "empty data", errors.ErrEmptyData)
	}

	f := &Factor{index: make(map[string]int)}
	explicit := len(levels) > 0
	for _, lv := range levels {
		if _, ok := f.index[lv]; ok {
			return nil, errors.NewValueError("dataset.NewFactor", "duplicate level "+lv)
		}
		f.index[lv] = len(f.levels)
		f.levels = append(f.levels, lv)
	}

	f.codes = make([]int, len(values))
	for i, v := range values {
		code, ok := f.index[v]
		if !ok {
			if explicit {
				return nil, errors.NewValueError("dataset.NewFactor", "value "+v+" is not in the given levels")
			}
			code = len(f.levels)
			f.index[v] = code
			f.levels = append(f.levels, v)
		}
		f.codes[i] = code
	}
	return f, nil
}

// Len returns the number of observations.
func (f *Factor) Len() int { return len(f.codes) }

// Levels returns the level names in order. The returned slice must not be
// modified.
func (f *Factor) Levels() []string { return f.levels }

// NumLevels returns the number of levels.
func (f *Factor) NumLevels() int { return len(f.levels) }

// Code returns the level index of observation i.
func (f *Factor) Code(i int) int { return f.codes[i] }

// Value returns the level name of observation i.
func (f *Factor) Value(i int) string { return f.levels[f.codes[i]] }

// Reference returns the reference level (the first level).
func (f *Factor) Reference() string { return f.levels[0] }

// Relevel returns a copy of the factor with ref moved to the front of the
// level order, making it the reference level for treatment coding.
func (f *Factor) Relevel(ref string) (*Factor, error) {
	refIdx, ok := f.index[ref]
	if !ok {
		return nil, errors.NewValueError("Factor.Relevel", "level "+ref+" does not exist")
	}

	levels := make([]string, 0, len(f.levels))
	levels = append(levels, ref)
	for i, lv := range f.levels {
		if i != refIdx {
			levels = append(levels, lv)
		}
	}

	out := &Factor{
		levels: levels,
		index:  make(map[string]int, len(levels)),
		codes:  make([]int, len(f.codes)),
	}
	for i, lv := range levels {
		out.index[lv] = i
	}
	for i, code := range f.codes {
		out.codes[i] = out.index[f.levels[code]]
	}
	return out, nil
}

// Counts returns the number of observations at each level, ordered as
// Levels.
func (f *Factor) Counts() []int {
	counts := make([]int, len(f.levels))
	for _, code := range f.codes {
		counts[code]++
	}
	return counts
}
