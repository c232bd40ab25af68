package domain

type (
	// A Product is a single sellable catalog item. Every product belongs to
	// exactly one category and one brand and carries zero or more boolean
	// attribute tags.
	Product struct {
		ID         string
		Name       string
		Price      float64
		Stock      int
		Category   string
		Brand      string
		Attributes []string
	}

	// A CategoryRelation links two distinct categories with a similarity
	// weight in (0, 1]. The relation is symmetric and stored once per
	// unordered pair.
	CategoryRelation struct {
		CategoryA string
		CategoryB string
		Weight    float64
	}

	// CatalogData is the raw catalog shape consumed from storage.
	// Category, brand and attribute vocabularies are implied by the
	// product records.
	CatalogData struct {
		Products  []Product
		Relations []CategoryRelation
	}
)

// InStock reports whether the product has at least one unit available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// A RecallRule marks a product as recalled. Recalled products are dropped
// from the ingestion stream before they reach the catalog.
type RecallRule struct {
	ProductID string
	Recalled  bool
}
