package book

import (
	"context"
	"fmt"

	"bookstore/internal/author"
	"bookstore/internal/genre"
)

// Reconciler turns the author/genre references of a request into the final
// set of ids to link. Ids must resolve to existing records; names are looked
// up by exact match and created when absent. The result is de-duplicated,
// so applying it as a full replacement is idempotent.
type Reconciler struct {
	authors author.Repository
	genres  genre.Repository
}

func NewReconciler(authors author.Repository, genres genre.Repository) *Reconciler {
	return &Reconciler{authors: authors, genres: genres}
}

// ResolveAuthors returns the deduplicated target author-id set. One missing
// id reference fails the whole resolution.
func (rc *Reconciler) ResolveAuthors(ctx context.Context, ids []int64, names []string) ([]int64, error) {
	target := make([]int64, 0, len(ids)+len(names))
	for _, id := range ids {
		if _, err := rc.authors.GetByID(ctx, id); err != nil {
			return nil, fmt.Errorf("author %d: %w", id, err)
		}
		target = append(target, id)
	}
	for _, name := range names {
		a, err := rc.authors.GetOrCreateByName(ctx, name)
		if err != nil {
			return nil, err
		}
		target = append(target, a.ID)
	}
	return dedupeIDs(target), nil
}

// ResolveGenres is the genre counterpart of ResolveAuthors.
func (rc *Reconciler) ResolveGenres(ctx context.Context, ids []int64, names []string) ([]int64, error) {
	target := make([]int64, 0, len(ids)+len(names))
	for _, id := range ids {
		if _, err := rc.genres.GetByID(ctx, id); err != nil {
			return nil, fmt.Errorf("genre %d: %w", id, err)
		}
		target = append(target, id)
	}
	for _, name := range names {
		g, err := rc.genres.GetOrCreateByName(ctx, name)
		if err != nil {
			return nil, err
		}
		target = append(target, g.ID)
	}
	return dedupeIDs(target), nil
}

// dedupeIDs collapses duplicates while preserving first-occurrence order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
