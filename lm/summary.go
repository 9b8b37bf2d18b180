package lm

import (
	"fmt"
	"strings"

	"github.com/maduhu/lmfit/pkg/errors"
)

// Coefficient is one row of a fitted model's coefficient table.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	TValue   float64
	PValue   float64
}

// Summary reports a fitted model the way R's summary.lm does: a coefficient
// table plus residual standard error and fit statistics.
type Summary struct {
	Coefficients []Coefficient
	N            int
	ResidualDF   int
	ResidualSE   float64
	R2           float64
	AdjR2        float64
}

// Summary builds the coefficient table for a fitted model.
func (m *OLS) Summary() (*Summary, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Summary")
	}

	s := &Summary{
		Coefficients: make([]Coefficient, m.p),
		N:            m.n,
		ResidualDF:   m.ResidualDF_,
		ResidualSE:   m.Sigma_,
	}
	for j := 0; j < m.p; j++ {
		s.Coefficients[j] = Coefficient{
			Name:     m.names[j],
			Estimate: m.Coef_.AtVec(j),
			StdErr:   m.StdErr_[j],
			TValue:   m.TValues_[j],
			PValue:   m.PValues_[j],
		}
	}
	if m.tss > 0 {
		s.R2 = 1 - m.rss/m.tss
		s.AdjR2 = 1 - (1-s.R2)*float64(m.n-1)/float64(m.ResidualDF_)
	}
	return s, nil
}

// String renders the summary as a fixed-width table.
func (s *Summary) String() string {
	var b strings.Builder

	nameWidth := len("Coefficient")
	for _, c := range s.Coefficients {
		if len(c.Name) > nameWidth {
			nameWidth = len(c.Name)
		}
	}

	fmt.Fprintf(&b, "%-*s  %10s  %10s  %8s  %8s\n", nameWidth, "Coefficient", "Estimate", "Std.Error", "t value", "Pr(>|t|)")
	for _, c := range s.Coefficients {
		fmt.Fprintf(&b, "%-*s  %10.4f  %10.4f  %8.3f  %8.4g\n", nameWidth, c.Name, c.Estimate, c.StdErr, c.TValue, c.PValue)
	}
	fmt.Fprintf(&b, "\nResidual standard error: %.4f on %d degrees of freedom\n", s.ResidualSE, s.ResidualDF)
	fmt.Fprintf(&b, "Multiple R-squared: %.4f, Adjusted R-squared: %.4f\n", s.R2, s.AdjR2)
	return b.String()
}
