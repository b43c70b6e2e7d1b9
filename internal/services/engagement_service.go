// internal/services/engagement_service.go
package services

import (
	"context"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/repository"
)

type WatchlistService struct {
	watchlist repository.WatchlistRepository
}

type WatchlistRequest struct {
	ProductID string `json:"productId" form:"productId" validate:"required"`
	UserEmail string `json:"userEmail" form:"userEmail" validate:"required,email"`
}

func NewWatchlistService(watchlist repository.WatchlistRepository) *WatchlistService {
	return &WatchlistService{watchlist: watchlist}
}

func (s *WatchlistService) IsWatched(ctx context.Context, req *WatchlistRequest) (bool, error) {
	if err := validateRequest(req); err != nil {
		return false, err
	}

	exists, err := s.watchlist.Exists(ctx, req.ProductID, req.UserEmail)
	if err != nil {
		return false, storeError("check watchlist", err, i18n.KeyWatchlistNotFound, i18n.KeyWatchlistDuplicate)
	}
	return exists, nil
}

// AddToWatchlist relies on the unique (productId, userEmail) index for
// duplicates, so concurrent adds cannot both succeed.
func (s *WatchlistService) AddToWatchlist(ctx context.Context, req *WatchlistRequest) (*models.WriteResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.watchlist.Add(ctx, &models.WatchlistEntry{
		ProductID: req.ProductID,
		UserEmail: req.UserEmail,
		CreatedAt: models.NowISO(),
	})
	if err != nil {
		return nil, storeError("add to watchlist", err, i18n.KeyWatchlistNotFound, i18n.KeyWatchlistDuplicate)
	}
	return result, nil
}

func (s *WatchlistService) GetWatchlist(ctx context.Context, callerEmail, email string) ([]models.WatchlistEntry, error) {
	if email != callerEmail {
		return nil, forbidden()
	}

	entries, err := s.watchlist.FindByUser(ctx, callerEmail)
	if err != nil {
		return nil, storeError("list watchlist", err, i18n.KeyWatchlistNotFound, i18n.KeyWatchlistDuplicate)
	}
	return entries, nil
}

func (s *WatchlistService) RemoveFromWatchlist(ctx context.Context, callerEmail, id string) (*models.WriteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	entry, err := s.watchlist.FindByID(ctx, oid)
	if err != nil {
		return nil, storeError("find watchlist entry", err, i18n.KeyWatchlistNotFound, i18n.KeyWatchlistDuplicate)
	}
	if entry.UserEmail != callerEmail {
		return nil, forbidden()
	}

	result, err := s.watchlist.Delete(ctx, oid)
	if err != nil {
		return nil, storeError("remove from watchlist", err, i18n.KeyWatchlistNotFound, i18n.KeyWatchlistDuplicate)
	}
	return result, nil
}

type ReviewService struct {
	reviews repository.ReviewRepository
}

type CreateReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	UserName  string `json:"userName,omitempty"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

func NewReviewService(reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) AddReview(ctx context.Context, req *CreateReviewRequest) (*models.WriteResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.reviews.Add(ctx, &models.Review{
		ProductID: req.ProductID,
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: models.NowISO(),
	})
	if err != nil {
		return nil, storeError("add review", err, i18n.KeyResourceNotFound, i18n.KeyReviewDuplicate)
	}
	return result, nil
}

// GetProductReviews returns reviews newest first.
func (s *ReviewService) GetProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, storeError("list reviews", err, i18n.KeyResourceNotFound, i18n.KeyReviewDuplicate)
	}
	return reviews, nil
}

type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// CreateOrder stores the client payload as-is, stamped with created_at.
func (s *OrderService) CreateOrder(ctx context.Context, payload map[string]interface{}) (*models.WriteResult, error) {
	if len(payload) == 0 {
		return nil, invalid(i18n.KeyValidationInvalid)
	}

	order := models.Order{}
	for k, v := range payload {
		order[k] = v
	}
	delete(order, "_id")
	order["created_at"] = models.NowISO()

	result, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, storeError("create order", err, i18n.KeyResourceNotFound, i18n.KeyResourceConflict)
	}
	return result, nil
}

func (s *OrderService) GetOrders(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := s.orders.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError("list orders", err, i18n.KeyResourceNotFound, i18n.KeyResourceConflict)
	}
	return orders, nil
}
