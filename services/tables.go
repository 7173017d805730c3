package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/bar-pos/models"
	"github.com/yeremiapane/bar-pos/utils"
)

type TableRegistry struct {
	DB      *gorm.DB
	locks   *KeyedMutex
	numbers *KeyedMutex
}

// ListTables returns every non-deleted table whatever its status. Hiding
// disabled tables is up to the floor plan view.
func (r *TableRegistry) ListTables(ctx context.Context) ([]models.Table, error) {
	tables := []models.Table{}
	if err := r.DB.WithContext(ctx).Order("number ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (r *TableRegistry) CreateTable(ctx context.Context, number int) (*models.Table, error) {
	if number <= 0 {
		return nil, validationErrorf("table number must be a positive integer")
	}

	unlock := r.numbers.Lock(uint(number))
	defer unlock()

	table := models.Table{Number: number, ActiveNumber: &number, Status: models.TableFree}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Table{}).Where("number = ?", number).Count(&count).Error; err != nil {
			return fmt.Errorf("check table number: %w", err)
		}
		if count > 0 {
			return conflictf("table number %d already exists", number)
		}
		if err := tx.Create(&table).Error; err != nil {
			// another process took the number after the count
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflictf("table number %d already exists", number)
			}
			return fmt.Errorf("create table: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithField("table_id", table.ID).Infof("Table #%d created", number)
	return &table, nil
}

// SetTableStatus moves a table between FREE and DISABLED. OCCUPIED only comes
// from opening a session.
func (r *TableRegistry) SetTableStatus(ctx context.Context, id uint, status models.TableStatus) (*models.Table, error) {
	if !status.Valid() {
		return nil, validationErrorf("unknown table status %q", status)
	}
	if status == models.TableOccupied {
		return nil, invalidTransitionf("a table becomes OCCUPIED only by opening a session")
	}

	unlock := r.locks.Lock(id)
	defer unlock()

	var table models.Table
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadTable(tx, id, &table); err != nil {
			return err
		}
		if !table.Status.CanSetManually(status) {
			return invalidTransitionf("table #%d is %s and cannot be set to %s", table.Number, table.Status, status)
		}
		if table.Status == status {
			return nil
		}
		return bumpTable(tx, &table, map[string]interface{}{"status": status})
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithField("table_id", id).Infof("Table #%d status set to %s", table.Number, table.Status)
	return &table, nil
}

// GetTable returns the table and, when occupied, its open session with every
// order and line. The session total is recomputed from the lines.
func (r *TableRegistry) GetTable(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadTable(tx, id, &table); err != nil {
			return err
		}
		if table.CurrentSessionID == nil {
			return nil
		}

		var session models.Session
		if err := withLines(tx).First(&session, *table.CurrentSessionID).Error; err != nil {
			return fmt.Errorf("load session %d: %w", *table.CurrentSessionID, err)
		}
		session.TotalAmount = session.ComputeTotal()
		table.CurrentSession = &session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// DeleteTable soft deletes a table that has no open session. Its sessions stay
// in the history and its number may be reused.
func (r *TableRegistry) DeleteTable(ctx context.Context, id uint) error {
	unlock := r.locks.Lock(id)
	defer unlock()

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := loadTable(tx, id, &table); err != nil {
			return err
		}
		if table.Status == models.TableOccupied {
			return invalidStatef("table #%d has an open session", table.Number)
		}
		if err := bumpTable(tx, &table, map[string]interface{}{"active_number": nil}); err != nil {
			return err
		}
		if err := tx.Delete(&table).Error; err != nil {
			return fmt.Errorf("delete table %d: %w", id, err)
		}
		return nil
	})
}

func loadTable(tx *gorm.DB, id uint, table *models.Table) error {
	if err := tx.First(table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("table %d not found", id)
		}
		return fmt.Errorf("load table %d: %w", id, err)
	}
	return nil
}

// bumpTable applies updates only if nobody else wrote the row since it was
// loaded, and advances the version. table is refreshed in place on success.
func bumpTable(tx *gorm.DB, table *models.Table, updates map[string]interface{}) error {
	updates["version"] = gorm.Expr("version + 1")

	res := tx.Model(&models.Table{}).
		Where("id = ? AND version = ?", table.ID, table.Version).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update table %d: %w", table.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return invalidStatef("table #%d was modified concurrently", table.Number)
	}

	var fresh models.Table
	if err := tx.First(&fresh, table.ID).Error; err != nil {
		return fmt.Errorf("reload table %d: %w", table.ID, err)
	}
	*table = fresh
	return nil
}

// withLines preloads orders and lines in intake order. Products and tables are
// loaded including soft deleted rows so history stays readable.
func withLines(tx *gorm.DB) *gorm.DB {
	unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
	return tx.
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("orders.id ASC") }).
		Preload("Orders.Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Orders.Items.Product", unscoped).
		Preload("Table", unscoped)
}
