// internal/services/product_service.go
package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/freshcart/freshcart-backend/internal/cache"
	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/repository"
)

// Fields a vendor may never set through PUT /products/:id.
var protectedProductFields = []string{"_id", "vendorEmail", "status", "rejectionFeedback", "created_at"}

type ProductService struct {
	products repository.ProductRepository
	listings cache.ListingCache
}

type CreateProductRequest struct {
	Name        string      `json:"name" validate:"required"`
	MarketName  string      `json:"marketName,omitempty"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	Category    string      `json:"category,omitempty"`
	Price       interface{} `json:"price"`
	Date        string      `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VendorName  string      `json:"vendorName,omitempty"`
}

type RejectProductRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

type ListProductsParams struct {
	Sort      string `form:"sort"`
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
}

func NewProductService(products repository.ProductRepository, listings cache.ListingCache) *ProductService {
	if listings == nil {
		listings = cache.NoopListingCache{}
	}
	return &ProductService{
		products: products,
		listings: listings,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, vendorEmail string, req *CreateProductRequest) (*models.WriteResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, ok := models.NumericPrice(req.Price); !ok {
		return nil, invalid(i18n.KeyProductInvalidPrice)
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	product := &models.Product{
		Name:        req.Name,
		MarketName:  req.MarketName,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Price:       req.Price,
		Date:        date,
		VendorEmail: vendorEmail,
		VendorName:  req.VendorName,
		Status:      models.ProductStatusPending,
		CreatedAt:   models.NowISO(),
	}

	result, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, storeError("create product", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}

	s.invalidateListings(ctx)
	return result, nil
}

// GetVendorProducts lists the caller's products. A vendorEmail naming
// someone else is refused rather than silently rewritten.
func (s *ProductService) GetVendorProducts(ctx context.Context, callerEmail, vendorEmail string) ([]models.Product, error) {
	if vendorEmail != "" && vendorEmail != callerEmail {
		return nil, forbidden()
	}

	products, err := s.products.FindByVendor(ctx, callerEmail)
	if err != nil {
		return nil, storeError("list vendor products", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return nil, storeError("find product", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, callerEmail, id string, fields map[string]interface{}) (*models.WriteResult, error) {
	product, err := s.ownedProduct(ctx, callerEmail, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{}
	for key, value := range fields {
		// Operator or dotted keys would reach into $set as paths.
		if key == "" || strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
			return nil, invalid(i18n.KeyValidationInvalid)
		}
		update[key] = value
	}
	for _, key := range protectedProductFields {
		delete(update, key)
	}
	if len(update) == 0 {
		return nil, invalid(i18n.KeyValidationInvalid)
	}
	if price, ok := update["price"]; ok {
		if _, valid := models.NumericPrice(price); !valid {
			return nil, invalid(i18n.KeyProductInvalidPrice)
		}
	}

	result, err := s.products.Update(ctx, product.ID, update)
	if err != nil {
		return nil, storeError("update product", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}

	s.invalidateListings(ctx)
	return result, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, callerEmail, id string) (*models.WriteResult, error) {
	product, err := s.ownedProduct(ctx, callerEmail, id)
	if err != nil {
		return nil, err
	}

	result, err := s.products.Delete(ctx, product.ID)
	if err != nil {
		return nil, storeError("delete product", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}

	s.invalidateListings(ctx)
	return result, nil
}

// ListProducts serves /all-products, from the listing cache when possible.
func (s *ProductService) ListProducts(ctx context.Context, params *ListProductsParams) ([]models.Product, error) {
	if err := validateRequest(params); err != nil {
		return nil, err
	}

	query := models.ProductQuery{
		Sort:      strings.TrimSpace(params.Sort),
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Status:    models.ProductStatus(params.Status),
	}

	cached, version, ok := s.listings.Get(ctx, query)
	if ok {
		return cached, nil
	}

	products, err := s.products.List(ctx, query)
	if err != nil {
		return nil, storeError("list products", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}

	s.listings.Set(ctx, version, query, products)
	return products, nil
}

// ApproveProduct moves pending or rejected products to approved. Approving
// an approved product matches without modifying.
func (s *ProductService) ApproveProduct(ctx context.Context, id string) (*models.WriteResult, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.products.Approve(ctx, product.ID)
	if err != nil {
		return nil, storeError("approve product", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}

	s.invalidateListings(ctx)
	return result, nil
}

// RejectProduct refuses approved products with a conflict: approval is final.
func (s *ProductService) RejectProduct(ctx context.Context, id string, req *RejectProductRequest) (*models.WriteResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Status == models.ProductStatusApproved {
		return nil, conflict(i18n.KeyProductAlreadyApproved)
	}

	result, err := s.products.Reject(ctx, product.ID, req.Feedback)
	if err != nil {
		return nil, storeError("reject product", err, i18n.KeyProductNotFound, i18n.KeyResourceConflict)
	}
	// Approved between the read and the write.
	if result.MatchedCount == 0 {
		return nil, conflict(i18n.KeyProductAlreadyApproved)
	}

	s.invalidateListings(ctx)
	return result, nil
}

func (s *ProductService) ownedProduct(ctx context.Context, callerEmail, id string) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.VendorEmail != callerEmail {
		return nil, forbidden()
	}
	return product, nil
}

func (s *ProductService) invalidateListings(ctx context.Context) {
	if err := s.listings.Invalidate(ctx); err != nil {
		logrus.WithError(err).Error("Failed to invalidate product listing cache")
	}
}
