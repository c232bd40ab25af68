package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductV1(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		productSchema, err := avro.Parse(ProductSchemaTextV1)
		require.NoError(t, err)

		vMarshal := ProductV1{
			ID:         "amul-butter",
			Name:       "Amul Butter",
			Price:      56,
			Stock:      0,
			Category:   "Dairy",
			Brand:      "Amul",
			Attributes: []string{"veg"},
		}

		data, err := avro.Marshal(productSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ProductV1
		err = avro.Unmarshal(productSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal, vUnmarshal)
	})

	t.Run("NilAttributes", func(t *testing.T) {
		productSchema, err := avro.Parse(ProductSchemaTextV1)
		require.NoError(t, err)

		vMarshal := ProductV1{
			ID: "plain", Name: "Plain", Price: 10, Stock: 3,
			Category: "Misc", Brand: "NoName",
		}

		data, err := avro.Marshal(productSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ProductV1
		err = avro.Unmarshal(productSchema, data, &vUnmarshal)
		require.NoError(t, err)
		assert.Empty(t, vUnmarshal.Attributes)
	})
}

func TestProductRecallV1(t *testing.T) {
	recallSchema, err := avro.Parse(ProductRecallSchemaTextV1)
	require.NoError(t, err)

	vMarshal := ProductRecallV1{ProductID: "amul-butter", Recalled: true}

	data, err := avro.Marshal(recallSchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal ProductRecallV1
	err = avro.Unmarshal(recallSchema, data, &vUnmarshal)
	require.NoError(t, err)
	assert.Equal(t, vMarshal, vUnmarshal)
}
