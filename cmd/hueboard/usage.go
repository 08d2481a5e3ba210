// Usage command reports the advisory storage estimate.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hueboard/hueboard/internal/quota"
	"github.com/hueboard/hueboard/pkg/storage"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show storage usage against the quota",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(func(store *storage.Storage) error {
			est := store.Estimate()
			if flagJSON {
				return printJSON(est)
			}
			fmt.Println("quota:    ", quota.FormatSize(est.Quota))
			fmt.Println("used:     ", quota.FormatSize(est.Usage))
			fmt.Println("available:", quota.FormatSize(est.Available))
			return nil
		})
	},
}
