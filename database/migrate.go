package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/bar-pos/models"
	"github.com/yeremiapane/bar-pos/utils"
)

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Product{},
		&models.Table{},
		&models.Session{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

var seedProducts = []models.Product{
	{Name: "Espresso", Price: 250, Category: "Coffee"},
	{Name: "Cappuccino", Price: 350, Category: "Coffee"},
	{Name: "Draft Beer", Price: 500, Category: "Beer"},
	{Name: "House Red", Price: 650, Category: "Wine"},
	{Name: "Lemonade", Price: 300, Category: "Soft Drinks"},
	{Name: "Cheesecake", Price: 550, Category: "Dessert"},
}

// Seed fills an empty database with a floor of tables 1..tables and a small
// menu. It does nothing if any table or product already exists.
func Seed(db *gorm.DB, tables int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var nTables, nProducts int64
		if err := tx.Model(&models.Table{}).Count(&nTables).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).Count(&nProducts).Error; err != nil {
			return err
		}
		if nTables > 0 || nProducts > 0 {
			utils.InfoLogger.Println("Seed skipped, database is not empty")
			return nil
		}

		for i := 1; i <= tables; i++ {
			n := i
			if err := tx.Create(&models.Table{Number: n, ActiveNumber: &n, Status: models.TableFree}).Error; err != nil {
				return fmt.Errorf("seed table %d: %w", i, err)
			}
		}
		for _, p := range seedProducts {
			p.IsActive = true
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed product %s: %w", p.Name, err)
			}
		}

		utils.InfoLogger.Printf("Seeded %d tables and %d products", tables, len(seedProducts))
		return nil
	})
}
