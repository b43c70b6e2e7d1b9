// internal/repository/product_repository.go
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

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection(database.ProductsCollection),
	}
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) (*models.WriteResult, error) {
	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return nil, translateError("insert product", err)
	}
	return insertResult(res), nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translateError("find product", err)
	}
	return &product, nil
}

func (r *MongoProductRepository) FindByVendor(ctx context.Context, vendorEmail string) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"vendorEmail": vendorEmail}, opts)
	if err != nil {
		return nil, translateError("list vendor products", err)
	}
	products, err := decodeAll[models.Product](ctx, cursor)
	return products, translateError("decode products", err)
}

func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.WriteResult, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, translateError("update product", err)
	}
	return updateResult(res), nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, translateError("delete product", err)
	}
	return deleteResult(res), nil
}

func (r *MongoProductRepository) Approve(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	update := bson.M{
		"$set":   bson.M{"status": models.ProductStatusApproved},
		"$unset": bson.M{"rejectionFeedback": ""},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, translateError("approve product", err)
	}
	return updateResult(res), nil
}

// Reject only matches products that are not approved yet.
func (r *MongoProductRepository) Reject(ctx context.Context, id primitive.ObjectID, feedback string) (*models.WriteResult, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": models.ProductStatusApproved},
	}
	update := bson.M{"$set": bson.M{
		"status":            models.ProductStatusRejected,
		"rejectionFeedback": feedback,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, translateError("reject product", err)
	}
	return updateResult(res), nil
}

func (r *MongoProductRepository) List(ctx context.Context, query models.ProductQuery) ([]models.Product, error) {
	cursor, err := r.collection.Aggregate(ctx, BuildListingPipeline(query))
	if err != nil {
		return nil, translateError("aggregate products", err)
	}
	products, err := decodeAll[models.Product](ctx, cursor)
	return products, translateError("decode products", err)
}
