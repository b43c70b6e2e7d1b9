// internal/models/product.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a vendor listing. Price is kept as stored: older documents carry
// it as text, so it is only coerced when sorting or charging.
type Product struct {
	ID                primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	MarketName        string             `json:"marketName,omitempty" bson:"marketName,omitempty"`
	Description       string             `json:"description,omitempty" bson:"description,omitempty"`
	Image             string             `json:"image,omitempty" bson:"image,omitempty"`
	Category          string             `json:"category,omitempty" bson:"category,omitempty"`
	Price             interface{}        `json:"price" bson:"price"`
	Date              string             `json:"date,omitempty" bson:"date,omitempty"`
	VendorEmail       string             `json:"vendorEmail" bson:"vendorEmail"`
	VendorName        string             `json:"vendorName,omitempty" bson:"vendorName,omitempty"`
	Status            ProductStatus      `json:"status" bson:"status"`
	RejectionFeedback string             `json:"rejectionFeedback,omitempty" bson:"rejectionFeedback,omitempty"`
	CreatedAt         string             `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// Listing sort orders accepted by /all-products.
const (
	SortLowToHigh = "lowToHigh"
	SortHighToLow = "highToLow"
)

type ProductQuery struct {
	Sort      string
	StartDate string
	EndDate   string
	Status    ProductStatus
}

func (q ProductQuery) HasDateRange() bool {
	return q.StartDate != "" && q.EndDate != ""
}
