// internal/models/common.go
package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timestamps are stored as ISO-8601 strings so documents written by earlier
// clients compare the same way as ours.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// WriteResult mirrors the acknowledgement the driver returns for single-document writes.
type WriteResult struct {
	Acknowledged  bool                `json:"acknowledged"`
	InsertedID    *primitive.ObjectID `json:"insertedId,omitempty"`
	MatchedCount  int64               `json:"matchedCount"`
	ModifiedCount int64               `json:"modifiedCount"`
	DeletedCount  int64               `json:"deletedCount"`
	UpsertedCount int64               `json:"upsertedCount"`
	UpsertedID    *primitive.ObjectID `json:"upsertedId,omitempty"`
}

// NumericPrice coerces a stored price (number or numeric text) to a float.
// It reports false for anything the listing pipeline would treat as missing.
func NumericPrice(v interface{}) (float64, bool) {
	var f float64
	switch p := v.(type) {
	case float64:
		f = p
	case float32:
		f = float64(p)
	case int:
		f = float64(p)
	case int32:
		f = float64(p)
	case int64:
		f = float64(p)
	case bool:
		if p {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(p.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Enums
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
)

type AdvertisementStatus string

const (
	AdvertisementStatusPending  AdvertisementStatus = "pending"
	AdvertisementStatusApproved AdvertisementStatus = "approved"
	AdvertisementStatusRejected AdvertisementStatus = "rejected"
)

func (s AdvertisementStatus) Valid() bool {
	switch s {
	case AdvertisementStatusPending, AdvertisementStatusApproved, AdvertisementStatusRejected:
		return true
	}
	return false
}
