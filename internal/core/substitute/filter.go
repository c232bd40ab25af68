// Package substitute implements the product substitution search: a hard
// constraint filter, a weighted scorer, a rule-based explanation table and
// the staged search that ties them together over a catalog snapshot.
package substitute

import "github.com/shopsmart/substitution/internal/core/domain"

// RejectReason classifies why a candidate failed the constraint filter.
// Rejection is a normal outcome, not an error: failing candidates are
// dropped silently from the result set.
type RejectReason string

const (
	// RejectNone means the candidate passed every check.
	RejectNone RejectReason = ""

	RejectSelfMatch   RejectReason = "self_match"
	RejectOutOfStock  RejectReason = "out_of_stock"
	RejectOverBudget  RejectReason = "over_budget"
	RejectMissingTags RejectReason = "missing_tags"
)

// CheckConstraints applies the hard eligibility rules to a candidate. All
// checks are mandatory; they short-circuit in a fixed order but the order
// does not affect the result. A negative max price is treated as a zero
// budget.
func CheckConstraints(
	candidate domain.Product,
	candidateAttrs map[string]struct{},
	req domain.SubstituteRequest,
) RejectReason {
	if candidate.ID == req.ProductID {
		return RejectSelfMatch
	}
	if !candidate.InStock() {
		return RejectOutOfStock
	}

	budget := req.MaxPrice
	if budget < 0 {
		budget = 0
	}
	if candidate.Price > budget {
		return RejectOverBudget
	}

	for _, tag := range req.RequiredTags {
		if _, ok := candidateAttrs[tag]; !ok {
			return RejectMissingTags
		}
	}
	return RejectNone
}
