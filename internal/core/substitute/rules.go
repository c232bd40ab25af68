package substitute

import "github.com/shopsmart/substitution/internal/core/domain"

// Explanation rule tags.
const (
	TagSameCatSameBrand      = "same_cat_same_brand"
	TagSameCatAllTags        = "same_cat_all_tags"
	TagRelatedCatAllTags     = "related_cat_all_tags"
	TagCheaperOption         = "cheaper_option"
	TagDiffBrandPerfectMatch = "diff_brand_perfect_match"
)

// DefaultExplanation is returned when no explanation rule matches.
const DefaultExplanation = "Meets your basic requirements."

// cheaperFraction is the price fraction below which a candidate counts as a
// much cheaper option.
const cheaperFraction = 0.7

// A RuleContext carries everything the explanation predicates look at for
// one candidate.
type RuleContext struct {
	Candidate      domain.Product
	CandidateAttrs map[string]struct{}
	Requested      domain.Product
	SameCategory   bool
	RequiredTags   []string
	PreferredBrand string
}

func (rc RuleContext) allTagsMatched() bool {
	for _, tag := range rc.RequiredTags {
		if _, ok := rc.CandidateAttrs[tag]; !ok {
			return false
		}
	}
	return true
}

// A Rule is one row of the explanation decision table.
type Rule struct {
	Tag         string
	Priority    int
	Explanation string
	Matches     func(RuleContext) bool
}

// explanationRules is the fixed decision table, ordered by ascending
// priority number (1 = highest). Order and priorities are part of the
// observable contract and must not be reordered.
var explanationRules = []Rule{
	{
		Tag:         TagSameCatSameBrand,
		Priority:    1,
		Explanation: "This is from the same category and the brand you prefer.",
		Matches: func(rc RuleContext) bool {
			return rc.SameCategory &&
				rc.PreferredBrand != "" &&
				rc.Candidate.Brand == rc.PreferredBrand
		},
	},
	{
		Tag:         TagSameCatAllTags,
		Priority:    2,
		Explanation: "Best fit: Same product type and meets all your dietary requirements.",
		Matches: func(rc RuleContext) bool {
			return rc.SameCategory &&
				len(rc.RequiredTags) > 0 &&
				rc.allTagsMatched()
		},
	},
	{
		Tag:         TagRelatedCatAllTags,
		Priority:    3,
		Explanation: "Highly related product category that meets all your must-have tags.",
		Matches: func(rc RuleContext) bool {
			return !rc.SameCategory &&
				len(rc.RequiredTags) > 0 &&
				rc.allTagsMatched()
		},
	},
	{
		Tag:         TagCheaperOption,
		Priority:    4,
		Explanation: "A much cheaper option that still meets your needs.",
		Matches: func(rc RuleContext) bool {
			return rc.Requested.Price > 0 &&
				rc.Candidate.Price <= cheaperFraction*rc.Requested.Price
		},
	},
	{
		Tag:         TagDiffBrandPerfectMatch,
		Priority:    5,
		Explanation: "Same product category, different brand, and fully meets your requirements.",
		Matches: func(rc RuleContext) bool {
			return rc.SameCategory &&
				rc.Candidate.Brand != rc.Requested.Brand &&
				rc.allTagsMatched()
		},
	},
}

// Rules returns a copy of the explanation decision table in priority order,
// so each rule can be inspected and tested independently.
func Rules() []Rule {
	rs := make([]Rule, len(explanationRules))
	copy(rs, explanationRules)
	return rs
}

// Explain evaluates every rule predicate against the candidate (no
// short-circuiting: all matching tags are collected for diagnostics) and
// returns the explanation text of the matching rule with the lowest
// priority number. Without any match it returns [DefaultExplanation] and an
// empty tag list.
func Explain(rc RuleContext) (explanation string, matchedTags []string) {
	// The table is kept in priority order, so collected tags come out
	// sorted by priority already.
	for _, rule := range explanationRules {
		if rule.Matches(rc) {
			matchedTags = append(matchedTags, rule.Tag)
		}
	}

	if len(matchedTags) == 0 {
		return DefaultExplanation, nil
	}

	for _, rule := range explanationRules {
		if rule.Tag == matchedTags[0] {
			return rule.Explanation, matchedTags
		}
	}
	return DefaultExplanation, matchedTags
}
