package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/smartcover/quote-api/internal/apikey"
)

var (
	addStoreType   string
	addStoreURL    string
	addOrigin      string
	addDescription string
)

func init() {
	addCmd.Flags().StringVarP(&addStoreType, "store", "", "", "store type: sqlite3 or postgresql")
	addCmd.Flags().StringVarP(&addStoreURL, "storeurl", "", "", "store url: /path/to/apikeys.db or postgresql://...")
	addCmd.Flags().StringVarP(&addOrigin, "origin", "", "", "origin the key is allowed to call from")
	addCmd.Flags().StringVarP(&addDescription, "desc", "", "", "who or what this key is for")

	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add [key]",
	Short: "provision an api key. A key is generated when none is given",
	RunE:  doAdd,
}

func doAdd(cmd *cobra.Command, args []string) error {
	if addOrigin == "" {
		return fmt.Errorf("must provide --origin")
	}

	key := uuid.New().String()
	if len(args) > 0 {
		key = args[0]
	}

	store, err := initStore(addStoreType, addStoreURL)
	if err != nil {
		return err
	}

	created, err := store.CreateKey(context.Background(), apikey.Key{
		Key:         key,
		Origin:      addOrigin,
		Description: addDescription,
	})
	if err != nil {
		return fmt.Errorf("create key: %w", err)
	}

	fmt.Printf("id: %s\nkey: %s\norigin: %s\n", created.ID, created.Key, created.Origin)
	return nil
}
