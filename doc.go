// Package lmfit fits ordinary least squares linear models over categorical
// and continuous covariates, with the design-matrix machinery needed to
// interpret the coefficients.
//
// The library grew out of teaching linear models to bioinformatics
// practitioners: the point is not just the fit but what each coefficient
// means under a given coding of the categorical covariates. Treatment
// (reference-group) coding makes coefficients differences from a baseline
// group; cell-means coding makes them group means; interactions make simple
// effects sums of coefficients. Each of those identities is preserved and
// tested explicitly.
//
// # Packages
//
//   - dataset: rectangular in-memory tables, factors, CSV loading
//   - design: design matrix construction with treatment and cell-means coding
//   - lm: OLS fitting with standard errors, t statistics and p-values
//   - stats: Pearson correlation and its t test
//   - preprocessing: standardization of variables
//   - diagnostics: scatter-with-fit and residual plots
//
// # Quick start
//
//	f, _ := dataset.NewFactor([]string{"A", "A", "B", "B", "C", "C"})
//	dm, _ := design.NewBuilder(6).Add(design.Cat("treatment", f, design.Treatment)).Build()
//
//	fit := lm.NewOLS()
//	if err := fit.Fit(dm, y); err != nil {
//	    log.Fatal(err)
//	}
//	summary, _ := fit.Summary()
//	fmt.Print(summary)
package lmfit
