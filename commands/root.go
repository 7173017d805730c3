package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yeremiapane/bar-pos/config"
	"github.com/yeremiapane/bar-pos/database"
	"github.com/yeremiapane/bar-pos/utils"
)

var rootCmd = &cobra.Command{
	Use:   "pos",
	Short: "Front-of-house point of sale backend",
	Long: `pos serves the floor plan, table sessions, orders and invoices of a
bar or restaurant over a JSON API.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// openDB loads configuration, opens the database and migrates the schema.
func openDB() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
