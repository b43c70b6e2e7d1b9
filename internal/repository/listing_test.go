// internal/repository/listing_test.go
package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshcart/freshcart-backend/internal/models"
)

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestBuildListingPipelineWithoutFilters(t *testing.T) {
	p := BuildListingPipeline(models.ProductQuery{})

	assert.Equal(t, []string{"$addFields", "$addFields", "$sort", "$project"}, stageNames(p))
	assert.Equal(t, bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}, p[2][0].Value)
}

func TestBuildListingPipelineDateRangeNeedsBothBounds(t *testing.T) {
	p := BuildListingPipeline(models.ProductQuery{StartDate: "2024-01-01"})
	assert.NotContains(t, stageNames(p), "$match")

	p = BuildListingPipeline(models.ProductQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.Equal(t, "$match", p[0][0].Key)

	match := p[0][0].Value.(bson.D)
	assert.Equal(t, bson.D{{Key: "date", Value: bson.D{
		{Key: "$gte", Value: "2024-01-01"},
		{Key: "$lte", Value: "2024-01-31"},
	}}}, match)
}

func TestBuildListingPipelineStatusFilter(t *testing.T) {
	p := BuildListingPipeline(models.ProductQuery{Status: models.ProductStatusApproved})
	require.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, bson.D{{Key: "status", Value: models.ProductStatusApproved}}, p[0][0].Value)
}

func TestBuildListingPipelineSortOrders(t *testing.T) {
	low := BuildListingPipeline(models.ProductQuery{Sort: models.SortLowToHigh})
	assert.Equal(t, bson.D{
		{Key: priceMissingField, Value: 1},
		{Key: numericPriceField, Value: 1},
		{Key: "_id", Value: 1},
	}, low[2][0].Value)

	high := BuildListingPipeline(models.ProductQuery{Sort: models.SortHighToLow})
	assert.Equal(t, bson.D{
		{Key: priceMissingField, Value: 1},
		{Key: numericPriceField, Value: -1},
		{Key: "_id", Value: 1},
	}, high[2][0].Value)
}

func TestBuildListingPipelineCoercesWithoutFailing(t *testing.T) {
	p := BuildListingPipeline(models.ProductQuery{Sort: models.SortLowToHigh})

	addFields := p[0][0].Value.(bson.D)
	convert := addFields[0].Value.(bson.D)[0]
	require.Equal(t, "$convert", convert.Key)

	args := convert.Value.(bson.D).Map()
	assert.Equal(t, "$price", args["input"])
	assert.Equal(t, "double", args["to"])
	assert.Contains(t, args, "onError")
	assert.Nil(t, args["onError"])

	project := p[len(p)-1][0].Value.(bson.D)
	assert.Equal(t, bson.D{{Key: numericPriceField, Value: 0}, {Key: priceMissingField, Value: 0}}, project)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError("op", nil))
	assert.ErrorIs(t, translateError("op", mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translateError("insert", dup), ErrDuplicate)

	other := errors.New("connection reset")
	err := translateError("insert", other)
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "failed to insert")
}
