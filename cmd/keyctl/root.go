package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcover/quote-api/internal/apikey"
	"github.com/smartcover/quote-api/internal/apikey/repo/pg"
	"github.com/smartcover/quote-api/internal/apikey/repo/sqlite"
)

var (
	verbose bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

var rootCmd = &cobra.Command{
	Use:   "keyctl",
	Short: "quote api key store CLI",
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func initStore(storeType, storeURL string) (apikey.Repo, error) {
	switch storeType {
	case "sqlite3":
		return sqlite.New(storeURL)
	case "postgresql":
		return pg.New(storeURL)
	default:
		return nil, fmt.Errorf("unknown store type %q: must be sqlite3 or postgresql", storeType)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
