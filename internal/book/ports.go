package book

import (
	"context"

	"bookstore/internal/author"
	"bookstore/internal/genre"
)

// Repository defines the contract for book data storage, including the
// book_authors/book_genres join rows. Multi-statement operations run inside
// a single database transaction so a failure never leaves dangling join
// rows.
type Repository interface {
	GetAll(ctx context.Context) ([]Book, error)
	// GetByID returns the book with its linked authors and genres.
	GetByID(ctx context.Context, id int64) (Book, error)
	// GetByISBN looks a book up by normalized ISBN for uniqueness checks.
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	// Create inserts the book row and one join row per target id.
	Create(ctx context.Context, b *Book, authorIDs, genreIDs []int64) error
	// Update rewrites the book row. A non-nil id slice fully replaces the
	// corresponding join set; nil leaves it unchanged.
	Update(ctx context.Context, b *Book, authorIDs, genreIDs []int64) error
	// Delete removes the book and its join rows, returning the author and
	// genre ids that were linked so the caller can reclaim orphans.
	Delete(ctx context.Context, id int64) (authorIDs, genreIDs []int64, err error)
	AuthorsForBook(ctx context.Context, bookID int64) ([]author.Author, error)
	GenresForBook(ctx context.Context, bookID int64) ([]genre.Genre, error)
}

// SearchProvider is the external book-metadata collaborator behind
// GET /books/search.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// SearchResult is one candidate volume returned by the search provider.
type SearchResult struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Description   string   `json:"description,omitempty"`
	ISBN10        string   `json:"isbn10,omitempty"`
	ISBN13        string   `json:"isbn13,omitempty"`
	PageCount     int      `json:"pageCount,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Image         string   `json:"image,omitempty"`
}
