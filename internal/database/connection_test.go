// internal/database/connection_test.go
package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexModelsDeclareUniqueConstraints(t *testing.T) {
	models := indexModels()

	unique := map[string]bson.D{}
	for collection, indexes := range models {
		for _, idx := range indexes {
			if idx.Options != nil && idx.Options.Unique != nil && *idx.Options.Unique {
				unique[collection] = idx.Keys.(bson.D)
			}
		}
	}

	require.Len(t, unique, 3)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, unique[UsersCollection])
	assert.Equal(t, bson.D{{Key: "productId", Value: 1}, {Key: "userEmail", Value: 1}}, unique[WatchlistsCollection])
	assert.Equal(t, bson.D{{Key: "productId", Value: 1}, {Key: "userEmail", Value: 1}}, unique[ReviewsCollection])
}

func TestIndexModelsAreNamed(t *testing.T) {
	for collection, indexes := range indexModels() {
		for _, idx := range indexes {
			require.NotNil(t, idx.Options, collection)
			require.NotNil(t, idx.Options.Name, collection)
			assert.NotEmpty(t, *idx.Options.Name)
		}
	}
}
