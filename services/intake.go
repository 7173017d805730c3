package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yeremiapane/bar-pos/models"
	"github.com/yeremiapane/bar-pos/utils"
)

// MaxQuantity bounds a single line so MaxMoney * MaxQuantity still fits an int64.
const MaxQuantity = 10000

type OrderIntake struct {
	DB    *gorm.DB
	locks *KeyedMutex
	now   func() time.Time
}

type ItemRequest struct {
	ProductID uint
	Quantity  int
}

type AddItemsResult struct {
	SessionID uint         `json:"sessionId"`
	Order     models.Order `json:"order"`
	Total     models.Money `json:"total"`
}

// AddItems records one order on the open session of an occupied table. Every
// line captures the product's price at this instant. The whole batch is
// rejected if any entry is invalid.
func (o *OrderIntake) AddItems(ctx context.Context, tableID uint, items []ItemRequest) (*AddItemsResult, error) {
	if len(items) == 0 {
		return nil, validationErrorf("at least one item is required")
	}
	for i, it := range items {
		if it.Quantity <= 0 {
			return nil, validationErrorf("item %d: quantity must be a positive integer", i+1)
		}
		if it.Quantity > MaxQuantity {
			return nil, validationErrorf("item %d: quantity must not exceed %d", i+1, MaxQuantity)
		}
		if it.ProductID == 0 {
			return nil, validationErrorf("item %d: productId is required", i+1)
		}
	}

	ctx = context.WithoutCancel(ctx)

	unlock := o.locks.Lock(tableID)
	defer unlock()

	var result AddItemsResult
	err := o.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := loadTable(tx, tableID, &table); err != nil {
			return err
		}
		if table.Status != models.TableOccupied || table.CurrentSessionID == nil {
			return invalidStatef("table #%d has no open session", table.Number)
		}
		sessionID := *table.CurrentSessionID

		products, err := activeProducts(tx, items)
		if err != nil {
			return err
		}

		now := o.now()
		order := models.Order{SessionID: sessionID, CreatedAt: now}
		for _, it := range items {
			p := products[it.ProductID]
			order.Items = append(order.Items, models.OrderItem{
				ProductID:    p.ID,
				ProductName:  p.Name,
				Quantity:     it.Quantity,
				PriceAtOrder: p.Price,
				CreatedAt:    now,
			})
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		// fails if a close slipped in between load and insert on another node
		if err := bumpTable(tx, &table, map[string]interface{}{}); err != nil {
			return err
		}

		total, err := sessionTotal(tx, sessionID)
		if err != nil {
			return err
		}

		result = AddItemsResult{SessionID: sessionID, Order: order, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id":   tableID,
		"session_id": result.SessionID,
		"order_id":   result.Order.ID,
		"lines":      len(items),
		"total":      result.Total.String(),
	}).Info("Order added")
	return &result, nil
}

func activeProducts(tx *gorm.DB, items []ItemRequest) (map[uint]models.Product, error) {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	var found []models.Product
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || !p.IsActive {
			return nil, notFoundf("product %d not found or inactive", id)
		}
	}
	return byID, nil
}

func sessionTotal(tx *gorm.DB, sessionID uint) (models.Money, error) {
	var total int64
	err := tx.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.session_id = ?", sessionID).
		Select("COALESCE(SUM(order_items.price_at_order * order_items.quantity), 0)").
		Row().Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum session %d: %w", sessionID, err)
	}
	return models.Money(total), nil
}
