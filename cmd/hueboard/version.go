// Version command for the hueboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hueboard/hueboard/pkg/storage"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hueboard version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hueboard", storage.Version)
	},
}
