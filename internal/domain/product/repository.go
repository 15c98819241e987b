package product

import "context"

type Repository interface {
	// Upsert creates the product or replaces its name and attributes.
	Upsert(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, ownerID uint, id string) (*Product, error)
	GetByIDs(ctx context.Context, ownerID uint, ids []string) ([]*Product, error)
}
