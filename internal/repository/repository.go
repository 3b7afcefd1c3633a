package repository

import (
	"context"

	"github.com/robomart/toystore/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
// Implementations must discard malformed persisted records and report them
// as absent; a corrupt record is never surfaced to callers.
type CartRepository interface {
	// Get retrieves the cart for a session. Returns an error wrapping
	// apperrors.ErrNotFound when no (valid) record exists.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the full cart state, overwriting any existing record
	// for the session. The write completes before Save returns.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the persisted cart for a session.
	Delete(ctx context.Context, sessionID string) error
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Search *string
	Limit  int
	Offset int
}

// ProductRepository defines read access to the catalog.
type ProductRepository interface {
	// List returns products matching the filter plus the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// GetByID retrieves a product by its ID.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by its slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
}
