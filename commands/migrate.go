package commands

import (
	"github.com/spf13/cobra"

	"github.com/yeremiapane/bar-pos/database"
)

var (
	seed       bool
	seedTables int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB()
		if err != nil {
			return err
		}
		if seed {
			return database.Seed(db, seedTables)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seed, "seed", false, "insert demo tables and products into an empty database")
	migrateCmd.Flags().IntVar(&seedTables, "tables", 10, "number of tables to seed")
}
