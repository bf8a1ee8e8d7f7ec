package author

import (
	"context"
)

// Repository defines the contract for author data storage.
type Repository interface {
	GetAll(ctx context.Context) ([]Author, error)
	GetByID(ctx context.Context, id int64) (Author, error)
	GetByName(ctx context.Context, name string) (Author, error)
	GetOrCreateByName(ctx context.Context, name string) (Author, error)
	Create(ctx context.Context, a *Author) error
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id int64) error
	// DeleteIfOrphaned removes the author only when no book_authors row
	// references it. It reports whether a row was deleted.
	DeleteIfOrphaned(ctx context.Context, id int64) (bool, error)
}
