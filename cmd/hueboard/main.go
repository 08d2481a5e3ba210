// Package main provides the hueboard CLI: inspect and maintain the
// local catalog storage (curated lists, processed images, saved
// swatches) from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
