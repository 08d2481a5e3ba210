// Swatch commands manage saved colors.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hueboard/hueboard/pkg/storage"
	"github.com/hueboard/hueboard/pkg/types"
)

var swatchCmd = &cobra.Command{
	Use:   "swatch",
	Short: "Manage saved color swatches",
}

func init() {
	swatchCmd.AddCommand(swatchSaveCmd)
	swatchCmd.AddCommand(swatchLsCmd)
	swatchCmd.AddCommand(swatchDeleteCmd)
}

var swatchSaveCmd = &cobra.Command{
	Use:   "save <list> <product-id> <index> <hue> <saturation> <lightness>",
	Short: "Save a color under a product variant",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		color := types.HSLColor{}
		for i, dst := range []*int{&color.Hue, &color.Saturation, &color.Lightness} {
			n, err := strconv.Atoi(args[3+i])
			if err != nil {
				return fmt.Errorf("invalid color component %q", args[3+i])
			}
			*dst = n
		}

		return withStorage(func(store *storage.Storage) error {
			inserted, err := store.Swatches.Save(color, args[0], args[1], idx)
			if err != nil {
				return err
			}
			if inserted {
				fmt.Println("saved")
			} else {
				fmt.Println("already saved")
			}
			return nil
		})
	},
}

var swatchLsCmd = &cobra.Command{
	Use:   "ls <list> <product-id> <index>",
	Short: "List the swatches saved under a product variant",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		return withStorage(func(store *storage.Storage) error {
			swatches, err := store.Swatches.Load(args[0], args[1], idx)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(swatches)
			}
			for _, sw := range swatches {
				fmt.Printf("%d\thsl(%d, %d%%, %d%%)\t%s\n",
					sw.ID, sw.Hue, sw.Saturation, sw.Lightness, sw.Timestamp)
			}
			return nil
		})
	},
}

var swatchDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a swatch by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid swatch id %q", args[0])
		}
		return withStorage(func(store *storage.Storage) error {
			removed, err := store.Swatches.Delete(id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("swatch %d: %w", id, types.ErrNotFound)
			}
			fmt.Println("deleted", id)
			return nil
		})
	},
}
