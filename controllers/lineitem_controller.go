package controllers

import (
	"net/http"

	"backoffice-service/middlewares"
	"backoffice-service/models"
	"backoffice-service/services"

	"github.com/gin-gonic/gin"
)

type LineItemController struct {
	items *services.LineItemService
}

func NewLineItemController(items *services.LineItemService) *LineItemController {
	return &LineItemController{items: items}
}

func (ctl *LineItemController) Create(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("line_item_create", status)
	}()

	var req models.CreateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lineItem, err := ctl.items.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Order line item created successfully", lineItem)
}

func (ctl *LineItemController) GetAll(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	orderID := queryInt(c, "order_id", 0)

	items, pagination, err := ctl.items.List(c.Request.Context(), page, limit, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Order line items fetched successfully", items, pagination)
}

func (ctl *LineItemController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	lineItem, err := ctl.items.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Order line item fetched successfully", lineItem)
}

func (ctl *LineItemController) Update(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("line_item_update", status)
	}()

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req models.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lineItem, err := ctl.items.Update(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Order line item updated successfully", lineItem)
}

func (ctl *LineItemController) Delete(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("line_item_delete", status)
	}()

	id, ok := paramID(c)
	if !ok {
		return
	}

	lineItem, err := ctl.items.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Order line item deleted successfully", lineItem)
}
