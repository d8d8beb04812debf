package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listStoreType string
	listStoreURL  string
)

func init() {
	listCmd.Flags().StringVarP(&listStoreType, "store", "", "", "store type: sqlite3 or postgresql")
	listCmd.Flags().StringVarP(&listStoreURL, "storeurl", "", "", "store url: /path/to/apikeys.db or postgresql://...")

	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list provisioned api keys",
	RunE:  doList,
}

func doList(cmd *cobra.Command, args []string) error {
	store, err := initStore(listStoreType, listStoreURL)
	if err != nil {
		return err
	}

	keys, err := store.ListKeys(context.Background())
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}

	fmt.Printf("ID\tKey\tOrigin\tDescription\tCreated\n")
	for _, k := range keys {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n", k.ID, k.Key, k.Origin, k.Description, k.CreatedAt.Format("2006-01-02"))
	}

	return nil
}
