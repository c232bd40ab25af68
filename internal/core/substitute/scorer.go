package substitute

import (
	"math"

	"github.com/shopsmart/substitution/internal/core/domain"
)

// Scoring weights. Category match dominates, brand match is secondary and
// price acts as a minor tiebreaker; this ordering is part of the contract.
const (
	WeightCategory = 10.0
	WeightBrand    = 5.0
	WeightPrice    = 1.0
)

// SameCategoryDistance is the category distance of a candidate in the
// requested product's own category. Related categories always map to a
// strictly larger distance.
const SameCategoryDistance = 1.0

// fallbackDistance guards against a non-positive similarity weight sneaking
// past catalog validation.
const fallbackDistance = 2.0

// A DistanceFunc derives a category distance from a similarity weight in
// (0, 1]. The exact transform is configurable; the search uses
// [InverseWeightDistance] unless told otherwise.
type DistanceFunc func(weight float64) float64

// InverseWeightDistance maps a similarity weight w to the distance 1/w, so a
// stronger similarity yields a smaller distance and a higher score
// contribution.
func InverseWeightDistance(weight float64) float64 {
	if weight <= 0 {
		return fallbackDistance
	}
	return 1 / weight
}

// Score computes the ranking score of an eligible candidate:
//
//	score = W_CAT x (1/d_cat) + W_BRAND x m_brand + W_PRICE x (1 - p_ratio)
//
// The brand term applies only when a preferred brand was requested. Without
// a positive max price the price ratio is defined as 1, granting no price
// credit. The result is rounded to two decimals so repeated searches stay
// byte-identical.
func Score(
	candidate domain.Product,
	req domain.SubstituteRequest,
	categoryDistance float64,
) float64 {
	categoryScore := WeightCategory * (1 / categoryDistance)

	var brandMatch float64
	if req.PreferredBrand != "" && candidate.Brand == req.PreferredBrand {
		brandMatch = 1
	}

	priceRatio := 1.0
	if req.MaxPrice > 0 {
		priceRatio = candidate.Price / req.MaxPrice
	}

	total := categoryScore + WeightBrand*brandMatch + WeightPrice*(1-priceRatio)
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
