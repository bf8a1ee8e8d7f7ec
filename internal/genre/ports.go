package genre

import (
	"context"
)

// Repository defines the contract for genre data storage.
type Repository interface {
	GetAll(ctx context.Context) ([]Genre, error)
	GetByID(ctx context.Context, id int64) (Genre, error)
	GetByName(ctx context.Context, name string) (Genre, error)
	GetOrCreateByName(ctx context.Context, name string) (Genre, error)
	Create(ctx context.Context, g *Genre) error
	Update(ctx context.Context, g *Genre) error
	Delete(ctx context.Context, id int64) error
	// DeleteIfOrphaned removes the genre only when no book_genres row
	// references it. It reports whether a row was deleted.
	DeleteIfOrphaned(ctx context.Context, id int64) (bool, error)
}
