// internal/services/payment_service.go
package services

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/repository"
)

type PaymentService struct {
	products repository.ProductRepository
	gateway  PaymentGateway
	currency string
}

type CreatePaymentIntentRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func NewPaymentService(products repository.ProductRepository, gateway PaymentGateway, currency string) *PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{
		products: products,
		gateway:  gateway,
		currency: currency,
	}
}

// CreatePaymentIntent charges quantity times the stored unit price. The
// product is resolved before the gateway is contacted.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	oid, err := parseObjectID(req.ProductID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return nil, storeError("find product", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}

	unitPrice, ok := models.NumericPrice(product.Price)
	if !ok {
		return nil, invalid(i18n.KeyProductInvalidPrice)
	}

	amount := MinorUnits(req.Quantity, unitPrice)
	if amount <= 0 {
		return nil, invalid(i18n.KeyProductInvalidPrice)
	}

	clientSecret, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": req.ProductID,
		"amount":     amount,
		"currency":   s.currency,
	}).Info("Payment intent created")

	return &PaymentIntentResponse{ClientSecret: clientSecret}, nil
}

// MinorUnits converts a decimal total to cents, rounding half away from zero.
func MinorUnits(quantity, unitPrice float64) int64 {
	return int64(math.Round(quantity * unitPrice * 100))
}
