// Package main provides the lmfit CLI: fit linear models over CSV data and
// print R-style coefficient tables from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
