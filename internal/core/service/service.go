package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/shopsmart/substitution/internal/core/catalog"
	"github.com/shopsmart/substitution/internal/core/domain"
	"github.com/shopsmart/substitution/internal/core/port"
	"github.com/shopsmart/substitution/internal/core/substitute"
)

var _ port.SubstituteFinder = (*Service)(nil)
var _ port.ProductReader = (*Service)(nil)
var _ port.ProductsSender = (*Service)(nil)
var _ port.RecallSetter = (*Service)(nil)
var _ port.ProductsSaver = (*Service)(nil)

// ErrCatalogNotReady indicates no catalog snapshot has been loaded yet.
var ErrCatalogNotReady = errors.New("catalog snapshot is not loaded")

// Service is the core application service. It owns the current catalog
// snapshot behind an atomic pointer: searches read whatever snapshot is
// current when they start, reloads build a fresh store and swap the
// reference, so in-flight searches always observe a consistent catalog.
type Service struct {
	snapshot         atomic.Pointer[catalog.Store]
	engine           *substitute.Engine
	productsProducer port.ProductsProducer
	recallProducer   port.RecallProducer
	repo             port.CatalogRepository
}

func New(
	engine *substitute.Engine,
	productsProducer port.ProductsProducer,
	recallProducer port.RecallProducer,
	repo port.CatalogRepository,
) *Service {
	return &Service{
		engine:           engine,
		productsProducer: productsProducer,
		recallProducer:   recallProducer,
		repo:             repo,
	}
}

// Reload loads the catalog from the repository, validates it and atomically
// swaps the snapshot. On failure the previous snapshot stays live.
func (s *Service) Reload(ctx context.Context) error {
	const op = "Service.Reload"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := s.repo.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	store, err := catalog.Build(data)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.snapshot.Store(store)
	log.Info("catalog snapshot swapped", "nProducts", store.Size())
	return nil
}

func (s *Service) FindSubstitutes(
	ctx context.Context, req domain.SubstituteRequest,
) (domain.SearchResult, error) {
	const op = "Service.FindSubstitutes"

	if err := ctx.Err(); err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	store := s.snapshot.Load()
	if store == nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, ErrCatalogNotReady)
	}

	res, err := s.engine.FindSubstitutes(store, req)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *Service) Product(ctx context.Context, id string) (domain.Product, error) {
	const op = "Service.Product"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	store := s.snapshot.Load()
	if store == nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrCatalogNotReady)
	}

	p, err := store.ProductByID(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	store := s.snapshot.Load()
	if store == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrCatalogNotReady)
	}
	return store.Products(), nil
}

// SendProducts publishes product updates to the ingestion stream. They reach
// the catalog only after passing the recall gate and being persisted.
func (s *Service) SendProducts(ctx context.Context, ps []domain.Product) error {
	const op = "Service.SendProducts"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.productsProducer.ProduceProducts(ctx, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) SetRecall(ctx context.Context, r domain.RecallRule) error {
	const op = "Service.SetRecall"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.recallProducer.ProduceRecall(ctx, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SaveProducts persists sellable products and refreshes the snapshot so the
// next search sees them.
func (s *Service) SaveProducts(ctx context.Context, ps []domain.Product) error {
	const op = "Service.SaveProducts"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.StoreProducts(ctx, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.Reload(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
