// internal/models/advertisement.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Advertisement struct {
	ID          primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description" bson:"description"`
	Image       string              `json:"image" bson:"image"`
	Status      AdvertisementStatus `json:"status" bson:"status"`
	VendorEmail string              `json:"vendorEmail" bson:"vendorEmail"`
	CreatedAt   string              `json:"created_at" bson:"created_at"`
}
