package book

import (
	"context"
	"errors"

	"bookstore/internal/httpx"
)

// Service orchestrates the book write pipeline: reference existence, ISBN
// uniqueness, the primary write, join-row reconciliation, and orphan
// reclamation on delete. Field validation happens at the handler boundary
// before any of this runs.
type Service struct {
	repo       Repository
	reconciler *Reconciler
	reclaimer  *OrphanReclaimer
}

func NewService(repo Repository, reconciler *Reconciler, reclaimer *OrphanReclaimer) *Service {
	return &Service{repo: repo, reconciler: reconciler, reclaimer: reclaimer}
}

// List returns all books.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.GetAll(ctx)
}

// Get returns a single book with its linked authors and genres.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates references, checks ISBN uniqueness, and inserts the book
// together with its join rows. Nothing is written when any check fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Book, error) {
	isbn := httpx.NormalizeISBN(req.ISBN)
	if err := s.checkISBNFree(ctx, isbn, 0); err != nil {
		return Book{}, err
	}

	authorIDs, err := s.reconciler.ResolveAuthors(ctx, req.AuthorIDs, req.Authors)
	if err != nil {
		return Book{}, err
	}
	genreIDs, err := s.reconciler.ResolveGenres(ctx, req.GenreIDs, req.Genres)
	if err != nil {
		return Book{}, err
	}

	b := Book{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Publisher:   req.Publisher,
		ISBN:        isbn,
		PubYear:     *req.PubYear,
		PageCount:   req.PageCount,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
	}
	if err := s.repo.Create(ctx, &b, authorIDs, genreIDs); err != nil {
		return Book{}, err
	}
	return s.repo.GetByID(ctx, b.ID)
}

// Update merges the incoming fields over the stored record, re-checks ISBN
// uniqueness when the ISBN changes, and fully replaces the linked
// author/genre sets when the request carries them. An absent list leaves
// the linked set unchanged.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Book, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}

	effective := merge(existing, req)
	effective.ISBN = httpx.NormalizeISBN(effective.ISBN)
	if effective.ISBN != existing.ISBN {
		if err := s.checkISBNFree(ctx, effective.ISBN, id); err != nil {
			return Book{}, err
		}
	}

	var authorIDs, genreIDs []int64
	if req.replacesAuthors() {
		authorIDs, err = s.reconciler.ResolveAuthors(ctx, req.AuthorIDs, req.Authors)
		if err != nil {
			return Book{}, err
		}
	}
	if req.replacesGenres() {
		genreIDs, err = s.reconciler.ResolveGenres(ctx, req.GenreIDs, req.Genres)
		if err != nil {
			return Book{}, err
		}
	}

	if err := s.repo.Update(ctx, &effective, authorIDs, genreIDs); err != nil {
		return Book{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the book and its join rows, then reclaims any author or
// genre left without books. Reclaim failures are logged, not returned: the
// delete itself has already succeeded.
func (s *Service) Delete(ctx context.Context, id int64) error {
	authorIDs, genreIDs, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.reclaimer.Reclaim(ctx, authorIDs, genreIDs)
	return nil
}

func (s *Service) checkISBNFree(ctx context.Context, isbn string, selfID int64) error {
	other, err := s.repo.GetByISBN(ctx, isbn)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return ErrDuplicateISBN
	}
	return nil
}
