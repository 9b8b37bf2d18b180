// Root command for the lmfit CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/maduhu/lmfit/pkg/log"
)

// Global flag values.
var (
	flagCSV     string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lmfit",
	Short: "Fit linear models over CSV data",
	Long: `lmfit loads a delimited dataset, builds a design matrix from
categorical and continuous covariates, fits an ordinary least squares
model and prints the coefficient table with standard errors, t statistics
and p-values.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if flagVerbose {
			level = "debug"
		}
		log.Setup(level, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCSV, "csv", "", "path to the input CSV file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(corCmd)
	rootCmd.AddCommand(groupsCmd)
}
