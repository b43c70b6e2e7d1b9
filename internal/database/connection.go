// internal/database/connection.go
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshcart/freshcart-backend/internal/config"
)

// Collection names
const (
	UsersCollection          = "users"
	ProductsCollection       = "products"
	AdvertisementsCollection = "advertisements"
	WatchlistsCollection     = "watchlists"
	ReviewsCollection        = "reviews"
	OrdersCollection         = "orders"
	AuditLogsCollection      = "audit_logs"
)

func Initialize(cfg config.DatabaseConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeoutDuration())
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetTimeout(cfg.QueryTimeoutDuration())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logrus.WithField("database", cfg.Name).Info("Database connection established successfully")
	return client, client.Database(cfg.Name), nil
}

func Close(client *mongo.Client, cfg config.DatabaseConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeoutDuration())
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
		return
	}
	logrus.Info("Database connection closed successfully")
}

// Ping reports whether the deployment answers within ctx.
func Ping(ctx context.Context, db *mongo.Database) error {
	return db.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the unique constraints the handlers rely on for
// conflict detection, plus the lookup indexes used by listings.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	logrus.Info("Ensuring database indexes...")

	for collection, models := range indexModels() {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}

	logrus.Info("Database indexes are in place")
	return nil
}

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
			},
		},
		ProductsCollection: {
			{
				Keys:    bson.D{{Key: "vendorEmail", Value: 1}},
				Options: options.Index().SetName("idx_products_vendor"),
			},
			{
				Keys:    bson.D{{Key: "date", Value: -1}},
				Options: options.Index().SetName("idx_products_date"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_products_status"),
			},
		},
		AdvertisementsCollection: {
			{
				Keys:    bson.D{{Key: "vendorEmail", Value: 1}},
				Options: options.Index().SetName("idx_advertisements_vendor"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_advertisements_status"),
			},
		},
		WatchlistsCollection: {
			{
				Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "userEmail", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_watchlists_product_user"),
			},
			{
				Keys:    bson.D{{Key: "userEmail", Value: 1}},
				Options: options.Index().SetName("idx_watchlists_user"),
			},
		},
		ReviewsCollection: {
			{
				Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "userEmail", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_reviews_product_user"),
			},
			{
				Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_reviews_product_recent"),
			},
		},
		OrdersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("idx_orders_email"),
			},
		},
		AuditLogsCollection: {
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_audit_logs_created"),
			},
		},
	}
}
