// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.productService.CreateProduct(c.Request.Context(), email, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// GET /products?vendorEmail=
func (h *ProductHandler) GetVendorProducts(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	products, err := h.productService.GetVendorProducts(c.Request.Context(), email, c.Query("vendorEmail"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if !bindJSON(c, &fields) {
		return
	}

	result, err := h.productService.UpdateProduct(c.Request.Context(), email, c.Param("id"), fields)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	result, err := h.productService.DeleteProduct(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// PATCH /products/approve/:id
func (h *ProductHandler) ApproveProduct(c *gin.Context) {
	result, err := h.productService.ApproveProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// PATCH /products/reject/:id
func (h *ProductHandler) RejectProduct(c *gin.Context) {
	var req services.RejectProductRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.productService.RejectProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /all-products?sort=&startDate=&endDate=&status=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var params services.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "query"), err.Error())
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), &params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}
