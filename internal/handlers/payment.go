// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	orderService   *services.OrderService
}

func NewPaymentHandler(paymentService *services.PaymentService, orderService *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orderService:   orderService,
	}
}

// POST /create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req services.CreatePaymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.paymentService.CreatePaymentIntent(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, response)
}

// POST /order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var payload map[string]interface{}
	if !bindJSON(c, &payload) {
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), payload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// GET /orders
func (h *PaymentHandler) GetOrders(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetOrders(c.Request.Context(), email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}
