package genre

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a genre is not found.
var ErrNotFound = errors.New("genre not found")

// Genre represents a genre entity. As with authors, name is a natural key
// used for implicit creation during book writes.
type Genre struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for POST /genres.
type CreateRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateRequest is the payload for PUT /genres/{id}. An absent or blank name
// keeps the stored value.
type UpdateRequest struct {
	Name *string `json:"name"`
}

func merge(existing Genre, req UpdateRequest) Genre {
	if req.Name != nil && *req.Name != "" {
		existing.Name = *req.Name
	}
	return existing
}
