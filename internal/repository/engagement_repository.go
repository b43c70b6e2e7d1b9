// internal/repository/engagement_repository.go
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshcart/freshcart-backend/internal/database"
	"github.com/freshcart/freshcart-backend/internal/models"
)

type MongoWatchlistRepository struct {
	collection *mongo.Collection
}

func NewWatchlistRepository(db *mongo.Database) *MongoWatchlistRepository {
	return &MongoWatchlistRepository{
		collection: db.Collection(database.WatchlistsCollection),
	}
}

func (r *MongoWatchlistRepository) Add(ctx context.Context, entry *models.WatchlistEntry) (*models.WriteResult, error) {
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, translateError("insert watchlist entry", err)
	}
	return insertResult(res), nil
}

func (r *MongoWatchlistRepository) Exists(ctx context.Context, productID, userEmail string) (bool, error) {
	filter := bson.M{"productId": productID, "userEmail": userEmail}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, translateError("check watchlist", err)
	}
	return count > 0, nil
}

func (r *MongoWatchlistRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WatchlistEntry, error) {
	var entry models.WatchlistEntry
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, translateError("find watchlist entry", err)
	}
	return &entry, nil
}

func (r *MongoWatchlistRepository) FindByUser(ctx context.Context, userEmail string) ([]models.WatchlistEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userEmail": userEmail}, opts)
	if err != nil {
		return nil, translateError("list watchlist", err)
	}
	entries, err := decodeAll[models.WatchlistEntry](ctx, cursor)
	return entries, translateError("decode watchlist", err)
}

func (r *MongoWatchlistRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, translateError("delete watchlist entry", err)
	}
	return deleteResult(res), nil
}

type MongoReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{
		collection: db.Collection(database.ReviewsCollection),
	}
}

func (r *MongoReviewRepository) Add(ctx context.Context, review *models.Review) (*models.WriteResult, error) {
	res, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return nil, translateError("insert review", err)
	}
	return insertResult(res), nil
}

func (r *MongoReviewRepository) FindByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, translateError("list reviews", err)
	}
	reviews, err := decodeAll[models.Review](ctx, cursor)
	return reviews, translateError("decode reviews", err)
}

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection(database.OrdersCollection),
	}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order models.Order) (*models.WriteResult, error) {
	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return nil, translateError("insert order", err)
	}
	return insertResult(res), nil
}

func (r *MongoOrderRepository) FindByEmail(ctx context.Context, email string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, translateError("list orders", err)
	}
	orders, err := decodeAll[models.Order](ctx, cursor)
	return orders, translateError("decode orders", err)
}

type MongoAuditLogRepository struct {
	collection *mongo.Collection
}

func NewAuditLogRepository(db *mongo.Database) *MongoAuditLogRepository {
	return &MongoAuditLogRepository{
		collection: db.Collection(database.AuditLogsCollection),
	}
}

func (r *MongoAuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return translateError("insert audit log", err)
}
