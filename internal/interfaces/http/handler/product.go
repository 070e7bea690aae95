package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/podstore/backoffice/internal/application/catalog"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
)

// ProductHandler handles the dashboard product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create a product
// @Description  Create a product owned by the signed-in user, or by userId when given
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.GetAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetByID godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID de producto inválido")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update godoc
// @Summary      Update a product
// @Description  Partial update; absent fields are left untouched
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        request body catalogapp.UpdateProductRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID de producto inválido")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete a product
// @Description  Returns the removed product
// @Tags         products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID de producto inválido")
		return
	}

	product, err := h.productService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
