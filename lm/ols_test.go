package lm

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/maduhu/lmfit/dataset"
	"github.com/maduhu/lmfit/design"
	"github.com/maduhu/lmfit/pkg/errors"
	"github.com/maduhu/lmfit/preprocessing"
	"github.com/maduhu/lmfit/stats"
)

const tol = 1e-9

func almost(a, b float64) bool {
	return math.Abs(a-b) < tol
}

// oneWayData is three groups with exact means A=2, B=5, C=7.
func oneWayData(t *testing.T) (*dataset.Factor, []float64) {
	t.Helper()
	f, err := dataset.NewFactor([]string{"A", "A", "A", "B", "B", "C", "C"})
	if err != nil {
		t.Fatalf("NewFactor: %v", err)
	}
	y := []float64{1, 2, 3, 4, 6, 5, 9}
	return f, y
}

func TestOLS_TreatmentCodingIsGroupMeanDifference(t *testing.T) {
	f, y := oneWayData(t)

	dm, err := design.NewBuilder(len(y)).Add(design.Cat("treatment", f, design.Treatment)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m := NewOLS()
	if err := m.Fit(dm, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	intercept, err := m.Coef(design.InterceptName)
	if err != nil {
		t.Fatalf("Coef: %v", err)
	}
	if !almost(intercept, 2) {
		t.Errorf("Expected intercept = mean(A) = 2, got %f", intercept)
	}

	// treatmentB estimates mean(B) - mean(A).
	coefB, err := m.Coef("treatmentB")
	if err != nil {
		t.Fatalf("Coef: %v", err)
	}
	if !almost(coefB, 3) {
		t.Errorf("Expected treatmentB = 5 - 2 = 3, got %f", coefB)
	}

	coefC, err := m.Coef("treatmentC")
	if err != nil {
		t.Fatalf("Coef: %v", err)
	}
	if !almost(coefC, 5) {
		t.Errorf("Expected treatmentC = 7 - 2 = 5, got %f", coefC)
	}
}

func TestOLS_CellMeansCodingIsGroupMeans(t *testing.T) {
	f, y := oneWayData(t)

	dm, err := design.NewBuilderNoIntercept(len(y)).Add(design.Cat("treatment", f, design.CellMeans)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m := NewOLS()
	if err := m.Fit(dm, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	want := map[string]float64{"treatmentA": 2, "treatmentB": 5, "treatmentC": 7}
	for name, mean := range want {
		got, err := m.Coef(name)
		if err != nil {
			t.Fatalf("Coef(%s): %v", name, err)
		}
		if !almost(got, mean) {
			t.Errorf("Expected %s = group mean %f, got %f", name, mean, got)
		}
	}

	// Differences between cell means reproduce the treatment-coded
	// contrasts.
	diff, err := m.ContrastNamed(map[string]float64{"treatmentB": 1, "treatmentA": -1})
	if err != nil {
		t.Fatalf("ContrastNamed: %v", err)
	}
	if !almost(diff.Value, 3) {
		t.Errorf("Expected mean(B) - mean(A) = 3, got %f", diff.Value)
	}
}

func TestOLS_CellMeansContrastsMatchTreatmentCoding(t *testing.T) {
	f, y := oneWayData(t)

	treat, err := design.NewBuilder(len(y)).Add(design.Cat("treatment", f, design.Treatment)).Build()
	if err != nil {
		t.Fatalf("Build treatment: %v", err)
	}
	cell, err := design.NewBuilderNoIntercept(len(y)).Add(design.Cat("treatment", f, design.CellMeans)).Build()
	if err != nil {
		t.Fatalf("Build cell-means: %v", err)
	}

	mTreat := NewOLS()
	if err := mTreat.Fit(treat, y); err != nil {
		t.Fatalf("Fit treatment: %v", err)
	}
	mCell := NewOLS()
	if err := mCell.Fit(cell, y); err != nil {
		t.Fatalf("Fit cell-means: %v", err)
	}

	for _, level := range []string{"B", "C"} {
		coded, err := mTreat.Coef("treatment" + level)
		if err != nil {
			t.Fatalf("Coef: %v", err)
		}
		diff, err := mCell.ContrastNamed(map[string]float64{"treatment" + level: 1, "treatmentA": -1})
		if err != nil {
			t.Fatalf("ContrastNamed: %v", err)
		}
		if !almost(coded, diff.Value) {
			t.Errorf("Level %s: treatment-coded coefficient %f != cell-means difference %f", level, coded, diff.Value)
		}
		// The two parameterizations describe the same fit, so the
		// standard errors agree too.
		seCoded := mTreat.StdErr_[indexOf(t, mTreat.Names(), "treatment"+level)]
		if math.Abs(seCoded-diff.StdErr) > 1e-8 {
			t.Errorf("Level %s: SE mismatch %f vs %f", level, seCoded, diff.StdErr)
		}
	}
}

func indexOf(t *testing.T, names []string, name string) int {
	t.Helper()
	for i, n := range names {
		if n == name {
			return i
		}
	}
	t.Fatalf("no coefficient named %s", name)
	return -1
}

func TestOLS_InteractionSimpleEffect(t *testing.T) {
	// Balanced 2x2 factorial, two replicates per cell with exact cell
	// means: ctl/b1=1, trt/b1=3, ctl/b2=2, trt/b2=7.
	treatment, err := dataset.NewFactor([]string{"ctl", "ctl", "trt", "trt", "ctl", "ctl", "trt", "trt"})
	if err != nil {
		t.Fatalf("NewFactor: %v", err)
	}
	batch, err := dataset.NewFactor([]string{"b1", "b1", "b1", "b1", "b2", "b2", "b2", "b2"})
	if err != nil {
		t.Fatalf("NewFactor: %v", err)
	}
	y := []float64{0.5, 1.5, 2.5, 3.5, 1.5, 2.5, 6.5, 7.5}

	dm, err := design.NewBuilder(len(y)).
		Add(
			design.Cat("treatment", treatment, design.Treatment),
			design.Cat("batch", batch, design.Treatment),
		).
		Add(design.Interaction(
			design.Cat("treatment", treatment, design.Treatment),
			design.Cat("batch", batch, design.Treatment),
		)).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m := NewOLS()
	if err := m.Fit(dm, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	mainEffect, err := m.Coef("treatmenttrt")
	if err != nil {
		t.Fatalf("Coef: %v", err)
	}
	interaction, err := m.Coef("treatmenttrt:batchb2")
	if err != nil {
		t.Fatalf("Coef: %v", err)
	}

	// Main effect is the treatment difference in the reference batch.
	if !almost(mainEffect, 2) {
		t.Errorf("Expected main effect 3 - 1 = 2, got %f", mainEffect)
	}

	// The simple effect of treatment in b2 is the main effect plus the
	// interaction coefficient.
	simple, err := m.ContrastNamed(map[string]float64{"treatmenttrt": 1, "treatmenttrt:batchb2": 1})
	if err != nil {
		t.Fatalf("ContrastNamed: %v", err)
	}
	if !almost(simple.Value, mainEffect+interaction) {
		t.Errorf("Expected simple effect %f + %f, got %f", mainEffect, interaction, simple.Value)
	}
	if !almost(simple.Value, 5) {
		t.Errorf("Expected simple effect 7 - 2 = 5, got %f", simple.Value)
	}
}

func TestOLS_StandardizedSlopeEqualsPearsonR(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7}
	y := []float64{2.1, 1.8, 4.0, 3.2, 6.3, 5.9, 7.4}

	r, err := stats.PearsonR(x, y)
	if err != nil {
		t.Fatalf("PearsonR: %v", err)
	}

	zx, err := preprocessing.StandardizeVector(x)
	if err != nil {
		t.Fatalf("StandardizeVector: %v", err)
	}
	zy, err := preprocessing.StandardizeVector(y)
	if err != nil {
		t.Fatalf("StandardizeVector: %v", err)
	}

	dm, err := design.NewBuilder(len(zx)).Add(design.Cont("zx", zx)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m := NewOLS()
	if err := m.Fit(dm, zy); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	slope, err := m.Coef("zx")
	if err != nil {
		t.Fatalf("Coef: %v", err)
	}
	if math.Abs(slope-r) > 1e-10 {
		t.Errorf("Expected standardized slope %f to equal pearson r %f", slope, r)
	}
}

func TestOLS_InferenceAgainstKnownFit(t *testing.T) {
	// Simple regression with a known closed-form solution: y = 1 + 2x plus
	// symmetric noise {0.1, -0.1, 0.1, -0.1}.
	x := []float64{1, 2, 3, 4}
	y := []float64{3.1, 4.9, 7.1, 8.9}

	dm, err := design.NewBuilder(4).Add(design.Cont("x", x)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m := NewOLS()
	if err := m.Fit(dm, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	slope, _ := m.Coef("x")
	// Slope = sum(dx*dy)/sum(dx^2) = 9.8/5 = 1.96.
	if !almost(slope, 1.96) {
		t.Errorf("Expected slope 1.96, got %f", slope)
	}
	if m.ResidualDF_ != 2 {
		t.Errorf("Expected 2 residual df, got %d", m.ResidualDF_)
	}

	summary, err := m.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Coefficients) != 2 {
		t.Fatalf("Expected 2 coefficient rows, got %d", len(summary.Coefficients))
	}
	for _, c := range summary.Coefficients {
		if c.StdErr <= 0 {
			t.Errorf("Coefficient %s has non-positive SE %f", c.Name, c.StdErr)
		}
		if c.PValue < 0 || c.PValue > 1 {
			t.Errorf("Coefficient %s has p-value %f outside [0,1]", c.Name, c.PValue)
		}
	}
	if summary.R2 <= 0.99 {
		t.Errorf("Expected near-perfect R2, got %f", summary.R2)
	}
}

func TestOLS_ExactFitInference(t *testing.T) {
	// y = 1 + 2x with no noise: RSS is zero and every standard error
	// collapses. The coefficients are perfectly determined, so they must
	// not be reported as insignificant.
	x := []float64{1, 2, 3, 4}
	y := []float64{3, 5, 7, 9}

	dm, err := design.NewBuilder(4).Add(design.Cont("x", x)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m := NewOLS()
	if err := m.Fit(dm, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	slope, _ := m.Coef("x")
	if !almost(slope, 2) {
		t.Errorf("Expected slope 2, got %f", slope)
	}

	// Floating point may leave the SE at zero or at rounding-noise scale;
	// either way the coefficient must come out massively significant, not
	// as t = 0, p = 1.
	j := indexOf(t, m.Names(), "x")
	if !(math.IsInf(m.TValues_[j], 1) || m.TValues_[j] > 1e6) {
		t.Errorf("Expected huge t value for an exactly-determined coefficient, got %f", m.TValues_[j])
	}
	if m.PValues_[j] > 1e-9 {
		t.Errorf("Expected near-zero p-value for an exact fit, got %g", m.PValues_[j])
	}

	// Same degenerate handling through a contrast.
	est, err := m.ContrastNamed(map[string]float64{"x": 1})
	if err != nil {
		t.Fatalf("ContrastNamed: %v", err)
	}
	if !(math.IsInf(est.TValue, 1) || est.TValue > 1e6) || est.PValue > 1e-9 {
		t.Errorf("Expected huge t and near-zero p from contrast, got t=%f p=%g", est.TValue, est.PValue)
	}
}

func TestTStatisticZeroSE(t *testing.T) {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: 2}

	tv, pv := tStatistic(2.5, 0, tDist)
	if !math.IsInf(tv, 1) || pv != 0 {
		t.Errorf("Expected +Inf t and zero p for positive estimate, got t=%f p=%f", tv, pv)
	}

	tv, pv = tStatistic(-2.5, 0, tDist)
	if !math.IsInf(tv, -1) || pv != 0 {
		t.Errorf("Expected -Inf t and zero p for negative estimate, got t=%f p=%f", tv, pv)
	}

	tv, pv = tStatistic(0, 0, tDist)
	if !math.IsNaN(tv) || !math.IsNaN(pv) {
		t.Errorf("Expected NaN t and p for an indeterminate estimate, got t=%f p=%f", tv, pv)
	}
}

func TestOLS_SingularDesign(t *testing.T) {
	// Two identical columns make X^T X exactly singular.
	x := []float64{1, 2, 3, 4, 5}
	dm, err := design.NewBuilder(5).Add(design.Cont("a", x), design.Cont("b", x)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m := NewOLS()
	err = m.Fit(dm, []float64{1, 2, 3, 4, 5})
	if err == nil {
		t.Fatal("Expected error for singular design")
	}
	if !errors.Is(err, errors.ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
	if m.IsFitted() {
		t.Error("Model must not be marked fitted after a failed fit")
	}
}

func TestOLS_NotFitted(t *testing.T) {
	m := NewOLS()

	if _, err := m.Summary(); err == nil {
		t.Error("Expected NotFittedError from Summary")
	}
	if _, err := m.Contrast([]float64{1}); err == nil {
		t.Error("Expected NotFittedError from Contrast")
	}

	var nf *errors.NotFittedError
	_, err := m.Residuals()
	if !errors.As(err, &nf) {
		t.Errorf("Expected NotFittedError, got %v", err)
	}
}

func TestOLS_DimensionChecks(t *testing.T) {
	dm, err := design.NewBuilder(3).Add(design.Cont("x", []float64{1, 2, 3})).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m := NewOLS()
	if err := m.Fit(dm, []float64{1, 2}); err == nil {
		t.Error("Expected dimension error for short response")
	}

	// Too few observations for inference.
	dm2, err := design.NewBuilder(2).Add(design.Cont("x", []float64{1, 2})).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := NewOLS().Fit(dm2, []float64{1, 2}); err == nil {
		t.Error("Expected error when n <= p")
	}
}
