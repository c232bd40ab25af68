// Package catalog holds the immutable product knowledge snapshot and answers
// the structural queries the substitute search is built on.
//
// A Store is constructed once from raw catalog data, validated for
// referential integrity, and never mutated afterwards. Reloads build a fresh
// Store and swap the reference, so concurrent readers always observe a
// consistent snapshot.
package catalog

import (
	"fmt"
	"sort"

	"github.com/shopsmart/substitution/internal/core/domain"
)

// A RelatedCategory is one neighbor of a category in the similarity graph.
type RelatedCategory struct {
	Name   string
	Weight float64
}

// A Store indexes products, categories, brands, attributes and category
// relations for O(1) structural lookups. All methods are pure reads and safe
// for concurrent use.
type Store struct {
	products   map[string]domain.Product
	attributes map[string]map[string]struct{}
	byCategory map[string][]string
	related    map[string][]RelatedCategory
	categories map[string]struct{}
}

// Build constructs a Store from raw catalog data. Category, brand and
// attribute vocabularies are derived from the product records. Duplicate
// product ids, blank identifiers, negative prices or stock, relation
// endpoints naming no known category, self-relations, duplicate unordered
// pairs and weights outside (0, 1] all fail with a wrapped
// [domain.ErrDataIntegrity]: this is the only place malformed input is
// rejected.
func Build(data domain.CatalogData) (*Store, error) {
	s := &Store{
		products:   make(map[string]domain.Product, len(data.Products)),
		attributes: make(map[string]map[string]struct{}, len(data.Products)),
		byCategory: make(map[string][]string),
		related:    make(map[string][]RelatedCategory),
		categories: make(map[string]struct{}),
	}

	for _, p := range data.Products {
		if err := s.addProduct(p); err != nil {
			return nil, err
		}
	}

	seenPairs := make(map[[2]string]struct{}, len(data.Relations))
	for _, r := range data.Relations {
		if err := s.addRelation(r, seenPairs); err != nil {
			return nil, err
		}
	}

	s.sortIndexes()
	return s, nil
}

func (s *Store) addProduct(p domain.Product) error {
	if p.ID == "" || p.Name == "" {
		return integrityErr("product %q: id and name are required", p.ID)
	}
	if _, ok := s.products[p.ID]; ok {
		return integrityErr("duplicate product id %q", p.ID)
	}
	if p.Category == "" || p.Brand == "" {
		return integrityErr("product %q: category and brand are required", p.ID)
	}
	if p.Price < 0 {
		return integrityErr("product %q: negative price", p.ID)
	}
	if p.Stock < 0 {
		return integrityErr("product %q: negative stock", p.ID)
	}

	attrs := make(map[string]struct{}, len(p.Attributes))
	for _, a := range p.Attributes {
		if a == "" {
			return integrityErr("product %q: empty attribute", p.ID)
		}
		attrs[a] = struct{}{}
	}

	s.products[p.ID] = p
	s.attributes[p.ID] = attrs
	s.byCategory[p.Category] = append(s.byCategory[p.Category], p.ID)
	s.categories[p.Category] = struct{}{}
	return nil
}

func (s *Store) addRelation(
	r domain.CategoryRelation, seenPairs map[[2]string]struct{},
) error {
	if r.CategoryA == r.CategoryB {
		return integrityErr("category %q: self-relation", r.CategoryA)
	}
	for _, c := range []string{r.CategoryA, r.CategoryB} {
		if _, ok := s.categories[c]; !ok {
			return integrityErr("relation endpoint %q: unknown category", c)
		}
	}
	if r.Weight <= 0 || r.Weight > 1 {
		return integrityErr(
			"relation %q-%q: weight %v outside (0, 1]",
			r.CategoryA, r.CategoryB, r.Weight,
		)
	}

	pair := orderedPair(r.CategoryA, r.CategoryB)
	if _, ok := seenPairs[pair]; ok {
		return integrityErr(
			"relation %q-%q: duplicate pair", r.CategoryA, r.CategoryB,
		)
	}
	seenPairs[pair] = struct{}{}

	// Stored in both directions so lookups stay symmetric.
	s.related[r.CategoryA] = append(
		s.related[r.CategoryA], RelatedCategory{r.CategoryB, r.Weight},
	)
	s.related[r.CategoryB] = append(
		s.related[r.CategoryB], RelatedCategory{r.CategoryA, r.Weight},
	)
	return nil
}

// sortIndexes fixes iteration order once so every query is deterministic.
func (s *Store) sortIndexes() {
	for _, ids := range s.byCategory {
		sort.Strings(ids)
	}
	for _, rcs := range s.related {
		sort.Slice(rcs, func(i, j int) bool {
			if rcs[i].Weight != rcs[j].Weight {
				return rcs[i].Weight > rcs[j].Weight
			}
			return rcs[i].Name < rcs[j].Name
		})
	}
}

// ProductByID returns the product with the given id or a wrapped
// [domain.ErrNotFound].
func (s *Store) ProductByID(id string) (domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, notFoundErr(id)
	}
	return p, nil
}

// CategoryOf returns the category of the given product.
func (s *Store) CategoryOf(productID string) (string, error) {
	p, ok := s.products[productID]
	if !ok {
		return "", notFoundErr(productID)
	}
	return p.Category, nil
}

// BrandOf returns the brand of the given product.
func (s *Store) BrandOf(productID string) (string, error) {
	p, ok := s.products[productID]
	if !ok {
		return "", notFoundErr(productID)
	}
	return p.Brand, nil
}

// AttributesOf returns the attribute set of the given product. The returned
// map is shared with the store and must not be mutated.
func (s *Store) AttributesOf(productID string) (map[string]struct{}, error) {
	attrs, ok := s.attributes[productID]
	if !ok {
		return nil, notFoundErr(productID)
	}
	return attrs, nil
}

// ProductsIn returns every product of the given category, ordered by product
// id. Unknown categories yield an empty slice.
func (s *Store) ProductsIn(category string) []domain.Product {
	ids := s.byCategory[category]
	ps := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		ps = append(ps, s.products[id])
	}
	return ps
}

// RelatedCategories returns the categories related to the given one, ordered
// by descending similarity weight with ties broken by category name.
func (s *Store) RelatedCategories(category string) []RelatedCategory {
	return s.related[category]
}

// Products returns every product in the catalog, ordered by product id.
func (s *Store) Products() []domain.Product {
	ids := make([]string, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ps := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		ps = append(ps, s.products[id])
	}
	return ps
}

// Size returns the number of products in the snapshot.
func (s *Store) Size() int {
	return len(s.products)
}

func orderedPair(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func integrityErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrDataIntegrity, fmt.Sprintf(format, args...))
}

func notFoundErr(id string) error {
	return fmt.Errorf("%w: %q", domain.ErrNotFound, id)
}
