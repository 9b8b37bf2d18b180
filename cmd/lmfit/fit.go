// Fit command: build a design matrix from named columns and fit OLS.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maduhu/lmfit/dataset"
	"github.com/maduhu/lmfit/design"
	"github.com/maduhu/lmfit/lm"
	"github.com/maduhu/lmfit/pkg/log"
)

var (
	flagResponse     string
	flagTerms        []string
	flagInteractions []string
	flagCellMeans    bool
	flagRefs         []string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit an ordinary least squares model",
	Long: `Fit builds a design matrix from the named covariate columns and
fits an OLS model for the response column. Factor columns expand to
indicator columns under treatment (reference-group) coding, or under
cell-means coding with --cell-means, which drops the intercept so each
coefficient estimates its group mean directly.

Example:
  lmfit fit --csv expression.csv --response expression --terms treatment,logdose
  lmfit fit --csv expression.csv --response expression --terms treatment --cell-means
  lmfit fit --csv expression.csv --response expression --terms treatment,batch \
      --interaction treatment:batch --ref treatment=control`,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVar(&flagResponse, "response", "", "numeric response column (required)")
	fitCmd.Flags().StringSliceVar(&flagTerms, "terms", nil, "covariate columns (required)")
	fitCmd.Flags().StringSliceVar(&flagInteractions, "interaction", nil, "interaction terms as a:b")
	fitCmd.Flags().BoolVar(&flagCellMeans, "cell-means", false, "use cell-means coding (no intercept)")
	fitCmd.Flags().StringSliceVar(&flagRefs, "ref", nil, "reference level overrides as factor=level")
	_ = fitCmd.MarkFlagRequired("response")
	_ = fitCmd.MarkFlagRequired("terms")
}

func runFit(cmd *cobra.Command, args []string) error {
	logger := log.With("fit")

	table, err := loadTable()
	if err != nil {
		return err
	}

	for _, ref := range flagRefs {
		name, level, ok := strings.Cut(ref, "=")
		if !ok {
			return fmt.Errorf("invalid --ref %q (want factor=level)", ref)
		}
		if err := table.Relevel(name, level); err != nil {
			log.Err(logger.Error(), err).Msg("relevel failed")
			return err
		}
	}

	y, err := table.Numeric(flagResponse)
	if err != nil {
		return err
	}

	coding := design.Treatment
	builder := design.NewBuilder(table.NumRows())
	if flagCellMeans {
		coding = design.CellMeans
		builder = design.NewBuilderNoIntercept(table.NumRows())
	}

	terms := make(map[string]design.Term)
	for _, name := range flagTerms {
		term, err := columnTerm(table, name, coding)
		if err != nil {
			return err
		}
		terms[name] = term
		builder.Add(term)
	}

	for _, spec := range flagInteractions {
		a, b, ok := strings.Cut(spec, ":")
		if !ok {
			return fmt.Errorf("invalid --interaction %q (want a:b)", spec)
		}
		ta, ok := terms[a]
		if !ok {
			return fmt.Errorf("interaction term %q is not in --terms", a)
		}
		tb, ok := terms[b]
		if !ok {
			return fmt.Errorf("interaction term %q is not in --terms", b)
		}
		builder.Add(design.Interaction(ta, tb))
	}

	dm, err := builder.Build()
	if err != nil {
		log.Err(logger.Error(), err).Msg("design build failed")
		return err
	}
	logger.Debug().Int("rows", table.NumRows()).Int("columns", dm.NumColumns()).Msg("design matrix built")

	fit := lm.NewOLS()
	if err := fit.Fit(dm, y); err != nil {
		log.Err(logger.Error(), err).Msg("fit failed")
		return err
	}

	summary, err := fit.Summary()
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, summary.String())
	return nil
}

// columnTerm maps a table column to a design term by its type.
func columnTerm(table *dataset.Table, name string, coding design.Coding) (design.Term, error) {
	kind, err := table.Type(name)
	if err != nil {
		return nil, err
	}
	if kind == dataset.Categorical {
		f, err := table.Factor(name)
		if err != nil {
			return nil, err
		}
		return design.Cat(name, f, coding), nil
	}
	vals, err := table.Numeric(name)
	if err != nil {
		return nil, err
	}
	return design.Cont(name, vals), nil
}

func loadTable() (*dataset.Table, error) {
	if flagCSV == "" {
		return nil, fmt.Errorf("--csv is required")
	}
	f, err := os.Open(flagCSV)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", flagCSV, err)
	}
	defer f.Close()
	return dataset.ReadCSV(f)
}
