// List commands manage the curated product lists.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hueboard/hueboard/pkg/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage curated product lists",
}

func init() {
	listCmd.AddCommand(listLsCmd)
	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listCreateCmd)
	listCmd.AddCommand(listDeleteCmd)
	listCmd.AddCommand(listRemoveProductCmd)
	listCmd.AddCommand(listRemoveVariantCmd)
}

var listLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all lists in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(func(store *storage.Storage) error {
			order := store.Lists.Order()
			if flagJSON {
				return printJSON(order)
			}
			state := store.Lists.Lists()
			for _, name := range order {
				fmt.Printf("%s (%d products)\n", name, len(state[name]))
			}
			return nil
		})
	},
}

var listShowCmd = &cobra.Command{
	Use:   "show <list>",
	Short: "Show the products in a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(func(store *storage.Storage) error {
			state := store.Lists.Lists()
			products, ok := state[args[0]]
			if !ok {
				return fmt.Errorf("list %q not found", args[0])
			}
			return printJSON(products)
		})
	},
}

var listCreateCmd = &cobra.Command{
	Use:   "create <list>",
	Short: "Create an empty list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(func(store *storage.Storage) error {
			if err := store.Lists.CreateList(args[0]); err != nil {
				return err
			}
			fmt.Println("created", args[0])
			return nil
		})
	},
}

var listDeleteCmd = &cobra.Command{
	Use:   "delete <list>",
	Short: "Delete a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(func(store *storage.Storage) error {
			if err := store.Lists.DeleteList(args[0]); err != nil {
				return err
			}
			fmt.Println("deleted", args[0])
			return nil
		})
	},
}

var listRemoveProductCmd = &cobra.Command{
	Use:   "remove-product <list> <product-id>",
	Short: "Remove a product from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(func(store *storage.Storage) error {
			return store.Lists.RemoveProduct(args[0], args[1])
		})
	},
}

var listRemoveVariantCmd = &cobra.Command{
	Use:   "remove-variant <list> <product-id> <index>",
	Short: "Remove a color variant, cascading to its swatches",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		return withStorage(func(store *storage.Storage) error {
			return store.Lists.RemoveVariant(args[0], args[1], idx)
		})
	},
}
