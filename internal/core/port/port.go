package port

import (
	"context"

	"github.com/shopsmart/substitution/internal/core/domain"
)

// Inbound ports: what the HTTP surface calls on the core.
type (
	SubstituteFinder interface {
		FindSubstitutes(context.Context, domain.SubstituteRequest) (domain.SearchResult, error)
	}

	ProductReader interface {
		Product(ctx context.Context, id string) (domain.Product, error)
		Products(context.Context) ([]domain.Product, error)
	}

	ProductsSender interface {
		SendProducts(context.Context, []domain.Product) error
	}

	RecallSetter interface {
		SetRecall(context.Context, domain.RecallRule) error
	}

	// ProductsSaver is called by the ingestion consumer with products that
	// passed the recall gate.
	ProductsSaver interface {
		SaveProducts(context.Context, []domain.Product) error
	}
)

// Outbound ports: what the core requires from adapters.
type (
	ProductsProducer interface {
		ProduceProducts(context.Context, []domain.Product) error
	}

	RecallProducer interface {
		ProduceRecall(context.Context, domain.RecallRule) error
	}

	// CatalogRepository is the catalog's source of record.
	CatalogRepository interface {
		LoadCatalog(context.Context) (domain.CatalogData, error)
		StoreProducts(context.Context, []domain.Product) error
	}
)
