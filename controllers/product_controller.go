package controllers

import (
	"net/http"

	"backoffice-service/models"
	"backoffice-service/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (ctl *ProductController) Create(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctl.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Product created successfully", product)
}

func (ctl *ProductController) GetAll(c *gin.Context) {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", 10)
	name := c.Query("name")
	categoryID := queryInt(c, "category_id", 0)

	products, pagination, err := ctl.products.List(c.Request.Context(), page, size, name, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Products fetched successfully", products, pagination)
}

func (ctl *ProductController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	product, err := ctl.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Product fetched successfully", product)
}

func (ctl *ProductController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctl.products.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Product updated successfully", product)
}

func (ctl *ProductController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctl.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Product deleted successfully", nil)
}
