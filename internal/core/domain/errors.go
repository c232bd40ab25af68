package domain

import "errors"

var (
	// ErrNotFound indicates the requested product id is absent from the
	// catalog. It is a request-level error, not a system failure.
	ErrNotFound = errors.New("product not found")

	// ErrDataIntegrity indicates the catalog input contains dangling
	// references or colliding identifiers. It is fatal to catalog
	// construction: the caller must not proceed with a partially built
	// catalog.
	ErrDataIntegrity = errors.New("catalog data integrity violation")
)
