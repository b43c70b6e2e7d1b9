// internal/repository/mongo.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshcart/freshcart-backend/internal/models"
)

// translateError maps driver errors onto the package sentinels and wraps the rest.
func translateError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("failed to %s: %w", op, ErrDuplicate)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

func insertResult(res *mongo.InsertOneResult) *models.WriteResult {
	out := &models.WriteResult{Acknowledged: true}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.InsertedID = &id
	}
	return out
}

func updateResult(res *mongo.UpdateResult) *models.WriteResult {
	out := &models.WriteResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = &id
	}
	return out
}

func deleteResult(res *mongo.DeleteResult) *models.WriteResult {
	return &models.WriteResult{
		Acknowledged: true,
		DeletedCount: res.DeletedCount,
	}
}

// decodeAll drains a cursor into a slice that is never nil, so empty
// listings serialize as [] rather than null.
func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
