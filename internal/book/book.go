package book

import (
	"errors"
	"time"

	"bookstore/internal/author"
	"bookstore/internal/genre"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateISBN is returned when a book with the same normalized ISBN
// already exists. It is a distinct kind from a malformed ISBN.
var ErrDuplicateISBN = errors.New("isbn already exists")

// Book represents a book entity. ISBN is stored in normalized form (dashes
// and spaces stripped). Authors and Genres carry the linked records on
// detail reads.
type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle,omitempty"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Publisher   string          `json:"publisher,omitempty"`
	ISBN        string          `json:"isbn"`
	PubYear     int             `json:"pub_year"`
	PageCount   *int            `json:"page_count,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       float64         `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Authors     []author.Author `json:"authors,omitempty"`
	Genres      []genre.Genre   `json:"genres,omitempty"`
}

// CreateRequest is the payload for POST /books. Authors and genres may be
// referenced by id (must exist) or by name (created when absent); the
// combined set per relation must be non-empty.
type CreateRequest struct {
	Title       string   `json:"title" validate:"required"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Publisher   string   `json:"publisher"`
	ISBN        string   `json:"isbn" validate:"required,isbn"`
	PubYear     *int     `json:"pubYear" validate:"required,pubyear"`
	PageCount   *int     `json:"pageCount" validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	AuthorIDs   []int64  `json:"authorIds"`
	Authors     []string `json:"authors"`
	GenreIDs    []int64  `json:"genreIds"`
	Genres      []string `json:"genres"`
}

// ValidateRelations checks the author/genre reference lists and returns one
// message per violation, matching the accumulate-everything contract of the
// struct validation.
func (req CreateRequest) ValidateRelations() []string {
	var messages []string
	messages = append(messages, validateRelationLists("Author", req.AuthorIDs, req.Authors)...)
	messages = append(messages, validateRelationLists("Genre", req.GenreIDs, req.Genres)...)
	return messages
}

func validateRelationLists(label string, ids []int64, names []string) []string {
	var messages []string
	if len(ids)+len(names) == 0 {
		messages = append(messages, label+"s array cannot be empty.")
	}
	for _, id := range ids {
		if id < 1 {
			messages = append(messages, "Each "+label+" ID must be a positive number.")
			break
		}
	}
	for _, name := range names {
		if name == "" {
			messages = append(messages, label+" cannot be an empty string.")
			break
		}
	}
	return messages
}

// UpdateRequest is the payload for PUT /books/{id}. Absent or blank scalar
// fields keep the stored value; a supplied author/genre list is an
// authoritative replacement of the linked set, while a nil list means
// "no change".
type UpdateRequest struct {
	Title       *string  `json:"title"`
	Subtitle    *string  `json:"subtitle"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Publisher   *string  `json:"publisher"`
	ISBN        *string  `json:"isbn" validate:"omitempty,isbn"`
	PubYear     *int     `json:"pubYear" validate:"omitempty,pubyear"`
	PageCount   *int     `json:"pageCount" validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	AuthorIDs   []int64  `json:"authorIds"`
	Authors     []string `json:"authors"`
	GenreIDs    []int64  `json:"genreIds"`
	Genres      []string `json:"genres"`
}

// ValidateRelations applies the same list rules as CreateRequest, but only
// to the lists the request actually carries. A supplied-but-empty list is
// rejected rather than treated as "clear all links": a book must always
// keep at least one author and one genre.
func (req UpdateRequest) ValidateRelations() []string {
	var messages []string
	if req.replacesAuthors() {
		messages = append(messages, validateRelationLists("Author", req.AuthorIDs, req.Authors)...)
	}
	if req.replacesGenres() {
		messages = append(messages, validateRelationLists("Genre", req.GenreIDs, req.Genres)...)
	}
	return messages
}

// replacesAuthors reports whether the request carries an author list, i.e.
// the linked set must be replaced rather than left alone.
func (req UpdateRequest) replacesAuthors() bool {
	return req.AuthorIDs != nil || req.Authors != nil
}

func (req UpdateRequest) replacesGenres() bool {
	return req.GenreIDs != nil || req.Genres != nil
}

// merge applies the keep-existing-if-blank update semantics: a nil pointer,
// empty string, or zero number leaves the stored value untouched. Linked
// author/genre sets are handled separately as full replacements.
func merge(existing Book, req UpdateRequest) Book {
	if req.Title != nil && *req.Title != "" {
		existing.Title = *req.Title
	}
	if req.Subtitle != nil {
		existing.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.ImageURL != nil {
		existing.ImageURL = *req.ImageURL
	}
	if req.Publisher != nil {
		existing.Publisher = *req.Publisher
	}
	if req.ISBN != nil && *req.ISBN != "" {
		existing.ISBN = *req.ISBN
	}
	if req.PubYear != nil && *req.PubYear != 0 {
		existing.PubYear = *req.PubYear
	}
	if req.PageCount != nil && *req.PageCount != 0 {
		existing.PageCount = req.PageCount
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	return existing
}
