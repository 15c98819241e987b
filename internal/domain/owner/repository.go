package owner

import "context"

// Repository persists owners. Lookups by key return a NotFoundError when
// the owner does not exist.
type Repository interface {
	Create(ctx context.Context, o *Owner) error
	Update(ctx context.Context, o *Owner) error
	GetByID(ctx context.Context, id uint) (*Owner, error)
	GetByKey(ctx context.Context, key string) (*Owner, error)
}
