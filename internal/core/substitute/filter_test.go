package substitute_test

import (
	"testing"

	"github.com/shopsmart/substitution/internal/core/domain"
	"github.com/shopsmart/substitution/internal/core/substitute"
	"github.com/stretchr/testify/assert"
)

func attrSet(tags ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func TestCheckConstraints(t *testing.T) {
	candidate := domain.Product{
		ID: "md-butter", Name: "Mother Dairy Butter", Price: 54, Stock: 12,
		Category: "Dairy", Brand: "Mother Dairy", Attributes: []string{"veg"},
	}
	attrs := attrSet("veg")

	req := domain.SubstituteRequest{
		ProductID:    "amul-butter",
		MaxPrice:     60,
		RequiredTags: []string{"veg"},
	}

	t.Run("Eligible", func(t *testing.T) {
		got := substitute.CheckConstraints(candidate, attrs, req)
		assert.Equal(t, substitute.RejectNone, got)
	})

	t.Run("SelfMatch", func(t *testing.T) {
		self := req
		self.ProductID = candidate.ID
		got := substitute.CheckConstraints(candidate, attrs, self)
		assert.Equal(t, substitute.RejectSelfMatch, got)
	})

	t.Run("OutOfStock", func(t *testing.T) {
		c := candidate
		c.Stock = 0
		got := substitute.CheckConstraints(c, attrs, req)
		assert.Equal(t, substitute.RejectOutOfStock, got)
	})

	t.Run("OverBudget", func(t *testing.T) {
		tight := req
		tight.MaxPrice = 53.99
		got := substitute.CheckConstraints(candidate, attrs, tight)
		assert.Equal(t, substitute.RejectOverBudget, got)
	})

	t.Run("NegativeMaxPriceIsZeroBudget", func(t *testing.T) {
		negative := req
		negative.MaxPrice = -5
		got := substitute.CheckConstraints(candidate, attrs, negative)
		assert.Equal(t, substitute.RejectOverBudget, got)

		free := candidate
		free.Price = 0
		got = substitute.CheckConstraints(free, attrs, negative)
		assert.Equal(t, substitute.RejectNone, got)
	})

	t.Run("MissingTags", func(t *testing.T) {
		strict := req
		strict.RequiredTags = []string{"veg", "organic"}
		got := substitute.CheckConstraints(candidate, attrs, strict)
		assert.Equal(t, substitute.RejectMissingTags, got)
	})

	t.Run("EmptyRequiredTagsAlwaysSatisfied", func(t *testing.T) {
		loose := req
		loose.RequiredTags = nil
		got := substitute.CheckConstraints(candidate, attrSet(), loose)
		assert.Equal(t, substitute.RejectNone, got)
	})
}
