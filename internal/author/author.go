package author

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an author is not found.
var ErrNotFound = errors.New("author not found")

// Author represents an author entity. Name acts as a natural key: book
// creation looks authors up by exact name and creates them when absent.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for POST /authors.
type CreateRequest struct {
	Name string `json:"name" validate:"required"`
	Bio  string `json:"bio"`
}

// UpdateRequest is the payload for PUT /authors/{id}. Absent fields keep
// their stored values.
type UpdateRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

// merge applies the keep-existing-if-blank update semantics field by field.
func merge(existing Author, req UpdateRequest) Author {
	if req.Name != nil && *req.Name != "" {
		existing.Name = *req.Name
	}
	if req.Bio != nil {
		existing.Bio = *req.Bio
	}
	return existing
}
