// Cor command: Pearson correlation with its t test.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maduhu/lmfit/stats"
)

var (
	flagCorX string
	flagCorY string
)

var corCmd = &cobra.Command{
	Use:   "cor",
	Short: "Test the correlation between two numeric columns",
	Long: `Cor computes the Pearson correlation between two numeric columns
and tests it against the null hypothesis of zero correlation using a t
distribution with n-2 degrees of freedom.

Example:
  lmfit cor --csv expression.csv --x dose --y expression`,
	RunE: runCor,
}

func init() {
	corCmd.Flags().StringVar(&flagCorX, "x", "", "first numeric column (required)")
	corCmd.Flags().StringVar(&flagCorY, "y", "", "second numeric column (required)")
	_ = corCmd.MarkFlagRequired("x")
	_ = corCmd.MarkFlagRequired("y")
}

func runCor(cmd *cobra.Command, args []string) error {
	table, err := loadTable()
	if err != nil {
		return err
	}

	x, err := table.Numeric(flagCorX)
	if err != nil {
		return err
	}
	y, err := table.Numeric(flagCorY)
	if err != nil {
		return err
	}

	test, err := stats.CorTest(x, y)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "cor\tt\tdf\tp-value\n")
	fmt.Fprintf(w, "%.4f\t%.3f\t%d\t%.4g\n", test.R, test.TValue, test.DF, test.PValue)
	return w.Flush()
}
