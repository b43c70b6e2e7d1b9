// internal/repository/listing.go
package repository

import (
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshcart/freshcart-backend/internal/models"
)

const (
	numericPriceField = "numericPrice"
	priceMissingField = "priceMissing"
)

// BuildListingPipeline shapes the public product listing: optional inclusive
// date range (string comparison on ISO dates), a derived numeric price used
// only for sorting, then the derived fields are dropped again. Prices that
// do not convert sort after every valid price in either direction.
func BuildListingPipeline(query models.ProductQuery) mongo.Pipeline {
	match := bson.D{}
	if query.HasDateRange() {
		match = append(match, bson.E{Key: "date", Value: bson.D{
			{Key: "$gte", Value: query.StartDate},
			{Key: "$lte", Value: query.EndDate},
		}})
	}
	if query.Status != "" {
		match = append(match, bson.E{Key: "status", Value: query.Status})
	}

	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: numericPriceField, Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$price"},
				{Key: "to", Value: "double"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: priceMissingField, Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$or", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$" + numericPriceField, nil}}},
					bson.D{{Key: "$eq", Value: bson.A{"$" + numericPriceField, math.NaN()}}},
					bson.D{{Key: "$eq", Value: bson.A{"$" + numericPriceField, math.Inf(1)}}},
					bson.D{{Key: "$eq", Value: bson.A{"$" + numericPriceField, math.Inf(-1)}}},
				}}},
				1,
				0,
			}}}},
		}}},
		bson.D{{Key: "$sort", Value: listingSort(query.Sort)}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: numericPriceField, Value: 0},
			{Key: priceMissingField, Value: 0},
		}}},
	)

	return pipeline
}

func listingSort(sort string) bson.D {
	switch sort {
	case models.SortLowToHigh:
		return bson.D{{Key: priceMissingField, Value: 1}, {Key: numericPriceField, Value: 1}, {Key: "_id", Value: 1}}
	case models.SortHighToLow:
		return bson.D{{Key: priceMissingField, Value: 1}, {Key: numericPriceField, Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}
	}
}
