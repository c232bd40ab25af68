package catalog_test

import (
	"testing"

	"github.com/shopsmart/substitution/internal/core/catalog"
	"github.com/shopsmart/substitution/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() domain.CatalogData {
	return domain.CatalogData{
		Products: []domain.Product{
			{
				ID: "amul-butter", Name: "Amul Butter", Price: 56, Stock: 0,
				Category: "Dairy", Brand: "Amul", Attributes: []string{"veg"},
			},
			{
				ID: "md-butter", Name: "Mother Dairy Butter", Price: 54, Stock: 12,
				Category: "Dairy", Brand: "Mother Dairy", Attributes: []string{"veg"},
			},
			{
				ID: "nutralite-spread", Name: "Nutralite Fat Spread", Price: 45, Stock: 8,
				Category: "Spreads", Brand: "Nutralite", Attributes: []string{"veg", "low-fat"},
			},
		},
		Relations: []domain.CategoryRelation{
			{CategoryA: "Dairy", CategoryB: "Spreads", Weight: 0.8},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		s, err := catalog.Build(testData())
		require.NoError(t, err)
		assert.Equal(t, 3, s.Size())
	})

	t.Run("DuplicateProductID", func(t *testing.T) {
		data := testData()
		data.Products = append(data.Products, data.Products[0])
		_, err := catalog.Build(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	})

	t.Run("MissingCategory", func(t *testing.T) {
		data := testData()
		data.Products[0].Category = ""
		_, err := catalog.Build(data)
		assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		data := testData()
		data.Products[1].Price = -1
		_, err := catalog.Build(data)
		assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	})

	t.Run("DanglingRelationEndpoint", func(t *testing.T) {
		data := testData()
		data.Relations = append(data.Relations, domain.CategoryRelation{
			CategoryA: "Dairy", CategoryB: "Frozen", Weight: 0.5,
		})
		_, err := catalog.Build(data)
		assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	})

	t.Run("SelfRelation", func(t *testing.T) {
		data := testData()
		data.Relations = append(data.Relations, domain.CategoryRelation{
			CategoryA: "Dairy", CategoryB: "Dairy", Weight: 0.5,
		})
		_, err := catalog.Build(data)
		assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	})

	t.Run("DuplicatePairEitherDirection", func(t *testing.T) {
		data := testData()
		data.Relations = append(data.Relations, domain.CategoryRelation{
			CategoryA: "Spreads", CategoryB: "Dairy", Weight: 0.3,
		})
		_, err := catalog.Build(data)
		assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	})

	t.Run("WeightOutOfRange", func(t *testing.T) {
		for _, w := range []float64{0, -0.2, 1.01} {
			data := testData()
			data.Relations[0].Weight = w
			_, err := catalog.Build(data)
			assert.ErrorIs(t, err, domain.ErrDataIntegrity, "weight %v", w)
		}
	})
}

func TestStoreQueries(t *testing.T) {
	s, err := catalog.Build(testData())
	require.NoError(t, err)

	t.Run("ProductByID", func(t *testing.T) {
		p, err := s.ProductByID("amul-butter")
		require.NoError(t, err)
		assert.Equal(t, "Amul Butter", p.Name)
		assert.False(t, p.InStock())

		_, err = s.ProductByID("missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("StructuralLookups", func(t *testing.T) {
		cat, err := s.CategoryOf("md-butter")
		require.NoError(t, err)
		assert.Equal(t, "Dairy", cat)

		brand, err := s.BrandOf("md-butter")
		require.NoError(t, err)
		assert.Equal(t, "Mother Dairy", brand)

		attrs, err := s.AttributesOf("nutralite-spread")
		require.NoError(t, err)
		assert.Contains(t, attrs, "veg")
		assert.Contains(t, attrs, "low-fat")

		_, err = s.CategoryOf("missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ProductsInOrderedByID", func(t *testing.T) {
		ps := s.ProductsIn("Dairy")
		require.Len(t, ps, 2)
		assert.Equal(t, "amul-butter", ps[0].ID)
		assert.Equal(t, "md-butter", ps[1].ID)

		assert.Empty(t, s.ProductsIn("Frozen"))
	})

	t.Run("RelatedCategoriesSymmetric", func(t *testing.T) {
		fromDairy := s.RelatedCategories("Dairy")
		require.Len(t, fromDairy, 1)
		assert.Equal(t, "Spreads", fromDairy[0].Name)
		assert.Equal(t, 0.8, fromDairy[0].Weight)

		fromSpreads := s.RelatedCategories("Spreads")
		require.Len(t, fromSpreads, 1)
		assert.Equal(t, "Dairy", fromSpreads[0].Name)
		assert.Equal(t, 0.8, fromSpreads[0].Weight)
	})

	t.Run("RelatedCategoriesOrdering", func(t *testing.T) {
		data := testData()
		data.Products = append(data.Products,
			domain.Product{
				ID: "oat-drink", Name: "Oat Drink", Price: 90, Stock: 3,
				Category: "Beverages", Brand: "Oatly",
			},
			domain.Product{
				ID: "soy-drink", Name: "Soy Drink", Price: 80, Stock: 3,
				Category: "Alternatives", Brand: "Sofit",
			},
		)
		data.Relations = append(data.Relations,
			domain.CategoryRelation{CategoryA: "Dairy", CategoryB: "Beverages", Weight: 0.4},
			domain.CategoryRelation{CategoryA: "Dairy", CategoryB: "Alternatives", Weight: 0.4},
		)
		s, err := catalog.Build(data)
		require.NoError(t, err)

		got := s.RelatedCategories("Dairy")
		require.Len(t, got, 3)
		assert.Equal(t, "Spreads", got[0].Name)
		// Equal weights fall back to name order.
		assert.Equal(t, "Alternatives", got[1].Name)
		assert.Equal(t, "Beverages", got[2].Name)
	})

	t.Run("ProductsOrderedByID", func(t *testing.T) {
		ps := s.Products()
		require.Len(t, ps, 3)
		assert.Equal(t, "amul-butter", ps[0].ID)
		assert.Equal(t, "md-butter", ps[1].ID)
		assert.Equal(t, "nutralite-spread", ps[2].ID)
	})
}
