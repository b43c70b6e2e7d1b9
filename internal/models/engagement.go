// internal/models/engagement.go
package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WatchlistEntry is unique per (ProductID, UserEmail).
type WatchlistEntry struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID string             `json:"productId" bson:"productId"`
	UserEmail string             `json:"userEmail" bson:"userEmail"`
	CreatedAt string             `json:"created_at" bson:"created_at"`
}

// Review is unique per (ProductID, UserEmail) and never updated.
type Review struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID string             `json:"productId" bson:"productId"`
	UserEmail string             `json:"userEmail" bson:"userEmail"`
	UserName  string             `json:"userName,omitempty" bson:"userName,omitempty"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt string             `json:"createdAt" bson:"createdAt"`
}

// Order is stored verbatim as the client posted it.
type Order = bson.M
