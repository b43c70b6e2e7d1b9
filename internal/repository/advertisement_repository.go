// internal/repository/advertisement_repository.go
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

type MongoAdvertisementRepository struct {
	collection *mongo.Collection
}

func NewAdvertisementRepository(db *mongo.Database) *MongoAdvertisementRepository {
	return &MongoAdvertisementRepository{
		collection: db.Collection(database.AdvertisementsCollection),
	}
}

func (r *MongoAdvertisementRepository) Create(ctx context.Context, ad *models.Advertisement) (*models.WriteResult, error) {
	res, err := r.collection.InsertOne(ctx, ad)
	if err != nil {
		return nil, translateError("insert advertisement", err)
	}
	return insertResult(res), nil
}

func (r *MongoAdvertisementRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		return nil, translateError("find advertisement", err)
	}
	return &ad, nil
}

func (r *MongoAdvertisementRepository) FindAll(ctx context.Context) ([]models.Advertisement, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoAdvertisementRepository) FindByStatus(ctx context.Context, status models.AdvertisementStatus) ([]models.Advertisement, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *MongoAdvertisementRepository) FindByVendor(ctx context.Context, vendorEmail string) ([]models.Advertisement, error) {
	return r.find(ctx, bson.M{"vendorEmail": vendorEmail})
}

func (r *MongoAdvertisementRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.WriteResult, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, translateError("update advertisement", err)
	}
	return updateResult(res), nil
}

func (r *MongoAdvertisementRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, translateError("delete advertisement", err)
	}
	return deleteResult(res), nil
}

func (r *MongoAdvertisementRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AdvertisementStatus) (*models.WriteResult, error) {
	return r.Update(ctx, id, bson.M{"status": status})
}

func (r *MongoAdvertisementRepository) find(ctx context.Context, filter bson.M) ([]models.Advertisement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError("list advertisements", err)
	}
	ads, err := decodeAll[models.Advertisement](ctx, cursor)
	return ads, translateError("decode advertisements", err)
}
