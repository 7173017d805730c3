package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yeremiapane/bar-pos/models"
)

type Catalog struct {
	DB *gorm.DB
}

type ProductInput struct {
	Name     string
	Price    models.Money
	Category string
	// nil means active
	IsActive *bool
}

type ProductUpdate struct {
	Name     *string
	Price    *models.Money
	Category *string
	IsActive *bool
}

// ListProducts returns non-deleted products ordered by category then name.
func (c *Catalog) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	q := c.DB.WithContext(ctx).Order("category ASC").Order("name ASC").Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	products := []models.Product{}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *Catalog) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := c.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("product %d not found", id)
		}
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	return &p, nil
}

func (c *Catalog) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if err := validateProduct(name, in.Price, category); err != nil {
		return nil, err
	}

	p := models.Product{
		Name:     name,
		Price:    in.Price,
		Category: category,
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if err := c.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// UpdateProduct changes catalog data only. Lines already ordered keep the
// name and price they captured.
func (c *Catalog) UpdateProduct(ctx context.Context, id uint, upd ProductUpdate) (*models.Product, error) {
	p, err := c.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		p.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Category != nil {
		p.Category = strings.TrimSpace(*upd.Category)
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	if err := validateProduct(p.Name, p.Price, p.Category); err != nil {
		return nil, err
	}

	err = c.DB.WithContext(ctx).Model(p).Select("name", "price", "category", "is_active").Updates(p).Error
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

// DeleteProduct deactivates and soft deletes. Order lines keep referencing the row.
func (c *Catalog) DeleteProduct(ctx context.Context, id uint) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("product %d not found", id)
			}
			return fmt.Errorf("load product %d: %w", id, err)
		}
		if err := tx.Model(&p).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate product %d: %w", id, err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		return nil
	})
}

func validateProduct(name string, price models.Money, category string) error {
	if name == "" {
		return validationErrorf("product name is required")
	}
	if price < 0 {
		return validationErrorf("product price must not be negative")
	}
	if price > models.MaxMoney {
		return validationErrorf("product price must not exceed %s", models.MaxMoney)
	}
	if category == "" {
		return validationErrorf("product category is required")
	}
	return nil
}
