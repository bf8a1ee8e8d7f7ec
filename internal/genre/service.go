package genre

import (
	"context"
)

// Service provides genre-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new genre service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all genres.
func (s *Service) List(ctx context.Context) ([]Genre, error) {
	return s.repo.GetAll(ctx)
}

// Get returns a single genre by id.
func (s *Service) Get(ctx context.Context, id int64) (Genre, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new genre.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Genre, error) {
	g := Genre{Name: req.Name}
	if err := s.repo.Create(ctx, &g); err != nil {
		return Genre{}, err
	}
	return g, nil
}

// Update merges the incoming fields over the stored record. A blank or
// absent name keeps the stored value.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Genre, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Genre{}, err
	}

	effective := merge(existing, req)
	if err := s.repo.Update(ctx, &effective); err != nil {
		return Genre{}, err
	}
	return effective, nil
}

// Delete removes a genre. Join rows referencing it are removed by the
// database's referential cleanup.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
