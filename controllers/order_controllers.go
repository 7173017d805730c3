package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/bar-pos/services"
	"github.com/yeremiapane/bar-pos/utils"
)

type OrderController struct {
	Orders *services.OrderIntake
}

func NewOrderController(svc *services.Services) *OrderController {
	return &OrderController{Orders: svc.Orders}
}

// AddItems -> one order on the table's open session
func (oc *OrderController) AddItems(c *gin.Context) {
	tableID, ok := paramID(c, "table_id")
	if !ok {
		return
	}

	type ItemReq struct {
		ProductID uint `json:"productId"`
		Quantity  int  `json:"quantity"`
	}
	var body struct {
		Items []ItemReq `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	items := make([]services.ItemRequest, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, services.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	result, err := oc.Orders.AddItems(c.Request.Context(), tableID, items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", result)
}
