// internal/repository/user_repository.go
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

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(database.UsersCollection),
	}
}

func (r *MongoUserRepository) Upsert(ctx context.Context, user *models.User) (*models.WriteResult, error) {
	onInsert := bson.M{
		"role":       user.Role,
		"created_at": user.CreatedAt,
	}
	if user.Name != "" {
		onInsert["name"] = user.Name
	}
	if user.Photo != "" {
		onInsert["photo"] = user.Photo
	}

	update := bson.M{
		"$set":         bson.M{"last_loggedIn": user.LastLoggedIn},
		"$setOnInsert": onInsert,
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"email": user.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		// Two concurrent first logins race on the unique index; the loser is an update.
		if mongo.IsDuplicateKeyError(err) {
			res, err = r.collection.UpdateOne(ctx, bson.M{"email": user.Email}, bson.M{"$set": bson.M{"last_loggedIn": user.LastLoggedIn}})
		}
		if err != nil {
			return nil, translateError("upsert user", err)
		}
	}
	return updateResult(res), nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translateError("find user", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, translateError("list users", err)
	}
	users, err := decodeAll[models.User](ctx, cursor)
	return users, translateError("decode users", err)
}

func (r *MongoUserRepository) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.WriteResult, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return nil, translateError("update user role", err)
	}
	return updateResult(res), nil
}
