// Image commands manage stored image payloads.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hueboard/hueboard/internal/sqlite"
	"github.com/hueboard/hueboard/pkg/storage"
	"github.com/hueboard/hueboard/pkg/types"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage stored images",
}

func init() {
	imageCmd.AddCommand(imagePutCmd)
	imageCmd.AddCommand(imageGetCmd)
	imageCmd.AddCommand(imageDeleteCmd)
}

var imagePutCmd = &cobra.Command{
	Use:   "put <data> [id]",
	Short: "Store an image payload, generating an id if omitted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := sqlite.NewImageID()
		if len(args) == 2 {
			id = args[1]
		}
		return withStorage(func(store *storage.Storage) error {
			if err := store.Images.Put(id, args[0]); err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		})
	},
}

var imageGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a stored image payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(func(store *storage.Storage) error {
			data, err := store.Images.Get(args[0])
			if err != nil {
				return err
			}
			if data == "" {
				return fmt.Errorf("image %q: %w", args[0], types.ErrNotFound)
			}
			fmt.Println(data)
			return nil
		})
	},
}

var imageDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(func(store *storage.Storage) error {
			removed, err := store.Images.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("image %q: %w", args[0], types.ErrNotFound)
			}
			fmt.Println("deleted", args[0])
			return nil
		})
	},
}
