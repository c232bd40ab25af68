package httphandler

type (
	Product struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		Price      float64  `json:"price"`
		Stock      int      `json:"stock"`
		Category   string   `json:"category"`
		Brand      string   `json:"brand"`
		Attributes []string `json:"attributes"`
	}

	SubstituteRequest struct {
		ProductID      string   `json:"product_id"`
		MaxPrice       float64  `json:"max_price"`
		RequiredTags   []string `json:"required_tags"`
		PreferredBrand string   `json:"preferred_brand"`
	}

	RankedSubstitute struct {
		Product     Product  `json:"product"`
		Score       float64  `json:"score"`
		MatchedTags []string `json:"matched_tags"`
		Explanation string   `json:"explanation"`
	}

	SearchResult struct {
		Kind    string             `json:"kind"`
		Product *Product           `json:"product,omitempty"`
		Items   []RankedSubstitute `json:"items,omitempty"`
	}
)

type RecallRule struct {
	ProductID string `json:"product_id"`
	Recalled  bool   `json:"recalled"`
}
