package book

import (
	"context"
	"log/slog"

	"bookstore/internal/author"
	"bookstore/internal/genre"
)

// OrphanReclaimer removes authors and genres left with zero linked books
// after a book delete. It runs after the book and its join rows are gone, so
// the "any other book?" check naturally excludes the deleted book.
type OrphanReclaimer struct {
	authors author.Repository
	genres  genre.Repository
	logger  *slog.Logger
}

func NewOrphanReclaimer(authors author.Repository, genres genre.Repository, logger *slog.Logger) *OrphanReclaimer {
	return &OrphanReclaimer{authors: authors, genres: genres, logger: logger}
}

// Reclaim checks each candidate independently. A failed check is logged and
// does not block the remaining candidates: the book delete has already
// succeeded, so reclamation is best-effort cleanup.
func (o *OrphanReclaimer) Reclaim(ctx context.Context, authorIDs, genreIDs []int64) {
	for _, id := range authorIDs {
		deleted, err := o.authors.DeleteIfOrphaned(ctx, id)
		if err != nil {
			o.logger.Error("reclaim orphaned author", slog.Int64("author_id", id), slog.Any("error", err))
			continue
		}
		if deleted {
			o.logger.Info("reclaimed orphaned author", slog.Int64("author_id", id))
		}
	}
	for _, id := range genreIDs {
		deleted, err := o.genres.DeleteIfOrphaned(ctx, id)
		if err != nil {
			o.logger.Error("reclaim orphaned genre", slog.Int64("genre_id", id), slog.Any("error", err))
			continue
		}
		if deleted {
			o.logger.Info("reclaimed orphaned genre", slog.Int64("genre_id", id))
		}
	}
}
