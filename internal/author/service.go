package author

import (
	"context"
)

// Service provides author-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new author service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all authors.
func (s *Service) List(ctx context.Context) ([]Author, error) {
	return s.repo.GetAll(ctx)
}

// Get returns a single author by id.
func (s *Service) Get(ctx context.Context, id int64) (Author, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new author.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Author, error) {
	a := Author{Name: req.Name, Bio: req.Bio}
	if err := s.repo.Create(ctx, &a); err != nil {
		return Author{}, err
	}
	return a, nil
}

// Update merges the incoming fields over the stored record and writes the
// result back. Blank or absent fields keep the stored value.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Author, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Author{}, err
	}

	effective := merge(existing, req)
	if err := s.repo.Update(ctx, &effective); err != nil {
		return Author{}, err
	}
	return effective, nil
}

// Delete removes an author. Join rows referencing it are removed by the
// database's referential cleanup.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
