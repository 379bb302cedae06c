package controllers

import (
	"net/http"

	"backoffice-service/middlewares"
	"backoffice-service/models"
	"backoffice-service/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (ctl *OrderController) Create(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("create", status)
	}()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := ctl.orders.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Order created successfully", order)
}

func (ctl *OrderController) GetAll(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("list", status)
	}()

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	username := c.Query("username")

	orders, pagination, err := ctl.orders.List(c.Request.Context(), page, limit, username)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Orders fetched successfully", orders, pagination)
}

func (ctl *OrderController) Get(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("details", status)
	}()

	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := ctl.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Order fetched successfully", order)
}

func (ctl *OrderController) Delete(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("delete", status)
	}()

	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := ctl.orders.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Order deleted successfully", order)
}
