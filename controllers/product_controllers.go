package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/bar-pos/models"
	"github.com/yeremiapane/bar-pos/services"
	"github.com/yeremiapane/bar-pos/utils"
)

type ProductController struct {
	Catalog *services.Catalog
}

func NewProductController(svc *services.Services) *ProductController {
	return &ProductController{Catalog: svc.Catalog}
}

// GetAllProducts -> ?active=true limits to orderable products
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	products, err := pc.Catalog.ListProducts(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	p, err := pc.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", p)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req struct {
		Name     string        `json:"name" binding:"required"`
		Price    *models.Money `json:"price" binding:"required"`
		Category string        `json:"category" binding:"required"`
		IsActive *bool         `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := pc.Catalog.CreateProduct(c.Request.Context(), services.ProductInput{
		Name:     req.Name,
		Price:    *req.Price,
		Category: req.Category,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", p)
}

// UpdateProduct -> partial update, only the fields present in the body
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	var req struct {
		Name     *string       `json:"name"`
		Price    *models.Money `json:"price"`
		Category *string       `json:"category"`
		IsActive *bool         `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := pc.Catalog.UpdateProduct(c.Request.Context(), id, services.ProductUpdate{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", p)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	if err := pc.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
