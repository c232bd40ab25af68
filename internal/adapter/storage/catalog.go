package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopsmart/substitution/internal/core/domain"
	"github.com/shopsmart/substitution/internal/core/port"
)

var _ port.CatalogRepository = (*CatalogRepository)(nil)

type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

// LoadCatalog reads the full product set and the category relations in one
// pass. The caller validates the result before serving it.
func (r CatalogRepository) LoadCatalog(
	ctx context.Context,
) (domain.CatalogData, error) {
	const op = "CatalogRepository.LoadCatalog"

	if err := ctx.Err(); err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}

	products, err := r.loadProducts(ctx)
	if err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}

	relations, err := r.loadRelations(ctx)
	if err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.CatalogData{Products: products, Relations: relations}, nil
}

func (r CatalogRepository) loadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	query := `
		SELECT product_id, name, price, stock, category, brand, attributes
		FROM products
		ORDER BY product_id ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var vs []domain.Product
	for rows.Next() {
		var v domain.Product
		var attrsS string
		err := rows.Scan(
			&v.ID, &v.Name, &v.Price, &v.Stock,
			&v.Category, &v.Brand, &attrsS,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		v.Attributes = parseTextArray(attrsS)
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return vs, nil
}

func (r CatalogRepository) loadRelations(
	ctx context.Context,
) ([]domain.CategoryRelation, error) {
	query := `
		SELECT category_a, category_b, weight
		FROM category_relations
		ORDER BY category_a ASC, category_b ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query relations: %w", err)
	}
	defer rows.Close()

	var vs []domain.CategoryRelation
	for rows.Next() {
		var v domain.CategoryRelation
		if err := rows.Scan(&v.CategoryA, &v.CategoryB, &v.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan relation: %w", err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate relations: %w", err)
	}
	return vs, nil
}

func (r CatalogRepository) StoreProducts(
	ctx context.Context, vs []domain.Product,
) (storeErr error) {
	const op = "CatalogRepository.StoreProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO products (
			product_id, name, price, stock, category, brand, attributes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			category = EXCLUDED.category,
			brand = EXCLUDED.brand,
			attributes = EXCLUDED.attributes;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, v := range vs {
		_, err := stmt.ExecContext(ctx,
			v.ID, v.Name, v.Price, v.Stock,
			v.Category, v.Brand, formatTextArray(v.Attributes),
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

func (r CatalogRepository) StoreRelations(
	ctx context.Context, vs []domain.CategoryRelation,
) (storeErr error) {
	const op = "CatalogRepository.StoreRelations"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO category_relations (category_a, category_b, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (category_a, category_b) DO UPDATE SET
			weight = EXCLUDED.weight;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, v := range vs {
		_, err := stmt.ExecContext(ctx, v.CategoryA, v.CategoryB, v.Weight)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

// parseTextArray decodes a postgres text[] literal of plain identifiers.
// Attribute tags never contain quotes or commas.
func parseTextArray(s string) []string {
	s = strings.Trim(s, "{}")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func formatTextArray(vs []string) string {
	return "{" + strings.Join(vs, ",") + "}"
}
