// internal/repository/interface.go
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshcart/freshcart-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	// Upsert inserts the user when the email is new, otherwise only refreshes last_loggedIn.
	Upsert(ctx context.Context, user *models.User) (*models.WriteResult, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.WriteResult, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.WriteResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByVendor(ctx context.Context, vendorEmail string) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.WriteResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error)
	Approve(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error)
	Reject(ctx context.Context, id primitive.ObjectID, feedback string) (*models.WriteResult, error)
	List(ctx context.Context, query models.ProductQuery) ([]models.Product, error)
}

type AdvertisementRepository interface {
	Create(ctx context.Context, ad *models.Advertisement) (*models.WriteResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Advertisement, error)
	FindAll(ctx context.Context) ([]models.Advertisement, error)
	FindByStatus(ctx context.Context, status models.AdvertisementStatus) ([]models.Advertisement, error)
	FindByVendor(ctx context.Context, vendorEmail string) ([]models.Advertisement, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.WriteResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AdvertisementStatus) (*models.WriteResult, error)
}

type WatchlistRepository interface {
	// Add returns ErrDuplicate when the (productId, userEmail) pair already exists.
	Add(ctx context.Context, entry *models.WatchlistEntry) (*models.WriteResult, error)
	Exists(ctx context.Context, productID, userEmail string) (bool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.WatchlistEntry, error)
	FindByUser(ctx context.Context, userEmail string) ([]models.WatchlistEntry, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error)
}

type ReviewRepository interface {
	// Add returns ErrDuplicate when the user already reviewed the product.
	Add(ctx context.Context, review *models.Review) (*models.WriteResult, error)
	FindByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (*models.WriteResult, error)
	FindByEmail(ctx context.Context, email string) ([]models.Order, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}
