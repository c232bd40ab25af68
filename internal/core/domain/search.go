package domain

// A SubstituteRequest carries the four request fields collected by the
// rendering layer. PreferredBrand and RequiredTags are optional.
type SubstituteRequest struct {
	ProductID      string
	MaxPrice       float64
	RequiredTags   []string
	PreferredBrand string
}

// ResultKind discriminates the three terminal outcomes of a search.
type ResultKind string

const (
	// KindExactMatch means the requested product itself is in stock and no
	// substitutes were computed.
	KindExactMatch ResultKind = "exact_match"

	// KindSubstitutes means the requested product is out of stock and at
	// least one eligible substitute was found.
	KindSubstitutes ResultKind = "substitutes"

	// KindNoResults means the requested product is out of stock and no
	// candidate survived the constraint filter. This is a normal outcome,
	// not an error.
	KindNoResults ResultKind = "no_results"
)

type (
	// A RankedSubstitute is one eligible candidate together with its score,
	// the tags of every explanation rule that matched, and the explanation
	// text of the best rule.
	RankedSubstitute struct {
		Product     Product
		Score       float64
		MatchedTags []string
		Explanation string
	}

	// A SearchResult is the single response value of a substitute search.
	// Product is set only for KindExactMatch; Items only for KindSubstitutes.
	SearchResult struct {
		Kind    ResultKind
		Product Product
		Items   []RankedSubstitute
	}
)
