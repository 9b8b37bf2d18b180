package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/maduhu/lmfit/pkg/errors"
)

// CSVOption configures ReadCSV.
type CSVOption func(*csvConfig)

type csvConfig struct {
	comma       rune
	forceFactor map[string]bool
	forceNum    map[string]bool
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(c rune) CSVOption {
	return func(cfg *csvConfig) {
		cfg.comma = c
	}
}

// WithFactorColumns forces the named columns to be read as factors even if
// every value parses as a number (e.g. numeric batch labels).
func WithFactorColumns(names ...string) CSVOption {
	return func(cfg *csvConfig) {
		for _, n := range names {
			cfg.forceFactor[n] = true
		}
	}
}

// WithNumericColumns forces the named columns to be read as numeric;
// unparseable cells become an error.
func WithNumericColumns(names ...string) CSVOption {
	return func(cfg *csvConfig) {
		for _, n := range names {
			cfg.forceNum[n] = true
		}
	}
}

// ReadCSV reads a delimited file with a header row into a Table. A column
// becomes numeric when every non-empty cell parses as a float, and a factor
// otherwise; empty cells in a numeric column are stored as NaN.
// WithFactorColumns and WithNumericColumns override the inference.
func ReadCSV(r io.Reader, opts ...CSVOption) (*Table, error) {
	cfg := &csvConfig{
		comma:       ',',
		forceFactor: make(map[string]bool),
		forceNum:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.comma
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "lmfit: ReadCSV: malformed input")
	}
	if len(records) < 2 {
		return nil, errors.NewModelError("dataset.ReadCSV", "no data rows", errors.ErrEmptyData)
	}

	header := records[0]
	rows := records[1:]
	n := len(rows)

	table := NewTable(n)
	for j, name := range header {
		name = strings.TrimSpace(name)
		raw := make([]string, n)
		numeric := !cfg.forceFactor[name]
		vals := make([]float64, n)
		for i, row := range rows {
			cell := strings.TrimSpace(row[j])
			raw[i] = cell
			if !numeric {
				continue
			}
			// Empty cells do not count against numeric inference; they
			// become NaN in a numeric column.
			if cell == "" {
				vals[i] = math.NaN()
				continue
			}
			v, convErr := strconv.ParseFloat(cell, 64)
			if convErr != nil {
				if cfg.forceNum[name] {
					return nil, errors.NewValueError("dataset.ReadCSV",
						"column "+name+" forced numeric but cell "+strconv.Itoa(i+1)+" is "+cell)
				}
				numeric = false
			} else {
				vals[i] = v
			}
		}

		if numeric {
			if err := table.AddNumeric(name, vals); err != nil {
				return nil, err
			}
			continue
		}
		f, err := NewFactor(raw)
		if err != nil {
			return nil, err
		}
		if err := table.AddFactor(name, f); err != nil {
			return nil, err
		}
	}
	return table, nil
}
