package substitute

import (
	"sort"

	"github.com/shopsmart/substitution/internal/core/catalog"
	"github.com/shopsmart/substitution/internal/core/domain"
)

// DefaultMaxResults bounds the ranked substitute list.
const DefaultMaxResults = 3

// An Engine runs the staged substitute search over a catalog snapshot. It
// holds only configuration, no catalog state, so one Engine serves any
// number of snapshots and requests.
type Engine struct {
	maxResults int
	distance   DistanceFunc
}

// An Option configures an Engine.
type Option func(*Engine)

// WithMaxResults overrides the result list bound. Values below one fall
// back to [DefaultMaxResults].
func WithMaxResults(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxResults = n
		}
	}
}

// WithDistanceFunc overrides the similarity-weight-to-distance transform
// used for related categories.
func WithDistanceFunc(fn DistanceFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.distance = fn
		}
	}
}

// NewEngine creates a search engine with the default top-3 bound and the
// inverse-weight distance transform.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxResults: DefaultMaxResults,
		distance:   InverseWeightDistance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindSubstitutes runs the staged search for the requested product.
//
// Stage 1 looks the product up (a wrapped [domain.ErrNotFound] if absent)
// and terminates with an exact match when it is in stock. Stage 2 collects
// eligible candidates from the requested product's own category. Stage 3
// always follows for an out-of-stock product, widening the pool with every
// related category. Candidates are deduplicated by product id keeping the
// higher-scored occurrence, ranked by descending score (ties: ascending
// price, then product id) and truncated. An empty pool yields a distinct
// no-results outcome, not an error.
func (e *Engine) FindSubstitutes(
	store *catalog.Store, req domain.SubstituteRequest,
) (domain.SearchResult, error) {
	requested, err := store.ProductByID(req.ProductID)
	if err != nil {
		return domain.SearchResult{}, err
	}

	if requested.InStock() {
		return domain.SearchResult{
			Kind:    domain.KindExactMatch,
			Product: requested,
		}, nil
	}

	pool := make(map[string]domain.RankedSubstitute)

	e.collect(store, req, requested, requested.Category, SameCategoryDistance, pool)

	for _, rc := range store.RelatedCategories(requested.Category) {
		e.collect(store, req, requested, rc.Name, e.distance(rc.Weight), pool)
	}

	if len(pool) == 0 {
		return domain.SearchResult{Kind: domain.KindNoResults}, nil
	}

	return domain.SearchResult{
		Kind:  domain.KindSubstitutes,
		Items: e.rank(pool),
	}, nil
}

// collect filters, scores and explains every product of one category,
// merging survivors into the candidate pool.
func (e *Engine) collect(
	store *catalog.Store,
	req domain.SubstituteRequest,
	requested domain.Product,
	category string,
	categoryDistance float64,
	pool map[string]domain.RankedSubstitute,
) {
	for _, candidate := range store.ProductsIn(category) {
		attrs, err := store.AttributesOf(candidate.ID)
		if err != nil {
			continue
		}

		if reason := CheckConstraints(candidate, attrs, req); reason != RejectNone {
			continue
		}

		explanation, tags := Explain(RuleContext{
			Candidate:      candidate,
			CandidateAttrs: attrs,
			Requested:      requested,
			SameCategory:   category == requested.Category,
			RequiredTags:   req.RequiredTags,
			PreferredBrand: req.PreferredBrand,
		})

		entry := domain.RankedSubstitute{
			Product:     candidate,
			Score:       Score(candidate, req, categoryDistance),
			MatchedTags: tags,
			Explanation: explanation,
		}

		// A product reachable via multiple related categories keeps its
		// best distance.
		if prev, ok := pool[candidate.ID]; ok && prev.Score >= entry.Score {
			continue
		}
		pool[candidate.ID] = entry
	}
}

func (e *Engine) rank(
	pool map[string]domain.RankedSubstitute,
) []domain.RankedSubstitute {
	items := make([]domain.RankedSubstitute, 0, len(pool))
	for _, it := range pool {
		items = append(items, it)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if items[i].Product.Price != items[j].Product.Price {
			return items[i].Product.Price < items[j].Product.Price
		}
		return items[i].Product.ID < items[j].Product.ID
	})

	if len(items) > e.maxResults {
		items = items[:e.maxResults]
	}
	return items
}
