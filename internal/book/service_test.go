package book

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/author"
)

type serviceFixture struct {
	svc     *Service
	books   *fakeBookRepo
	authors *fakeAuthorRepo
	genres  *fakeGenreRepo
}

func newServiceFixture() *serviceFixture {
	authors := newFakeAuthorRepo()
	genres := newFakeGenreRepo()
	books := newFakeBookRepo(authors, genres)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(books, NewReconciler(authors, genres), NewOrphanReclaimer(authors, genres, logger))
	return &serviceFixture{svc: svc, books: books, authors: authors, genres: genres}
}

func validCreateRequest(authorID, genreID int64) CreateRequest {
	return CreateRequest{
		Title:     "X",
		ISBN:      "978-0-13-468599-1",
		PubYear:   intPtr(2020),
		Quantity:  intPtr(3),
		Price:     floatPtr(9.99),
		AuthorIDs: []int64{authorID},
		GenreIDs:  []int64{genreID},
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores normalized isbn and exact join sets", func(t *testing.T) {
		f := newServiceFixture()
		a := f.authors.add("Frank Herbert")
		g := f.genres.add("Science Fiction")

		b, err := f.svc.Create(ctx, validCreateRequest(a.ID, g.ID))
		require.NoError(t, err)

		assert.Equal(t, "9780134685991", b.ISBN)
		assert.Equal(t, []int64{a.ID}, f.books.authorLinks[b.ID])
		assert.Equal(t, []int64{g.ID}, f.books.genreLinks[b.ID])
		require.Len(t, b.Authors, 1)
		assert.Equal(t, "Frank Herbert", b.Authors[0].Name)
	})

	t.Run("implicitly creates authors and genres by name", func(t *testing.T) {
		f := newServiceFixture()
		req := CreateRequest{
			Title:    "X",
			ISBN:     "9780441172719",
			PubYear:  intPtr(1990),
			Quantity: intPtr(1),
			Price:    floatPtr(9.99),
			Authors:  []string{"Frank Herbert"},
			Genres:   []string{"Science Fiction"},
		}

		b, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"Frank Herbert"}, f.authors.created)
		assert.Equal(t, []string{"Science Fiction"}, f.genres.created)
		assert.Len(t, f.books.authorLinks[b.ID], 1)
	})

	t.Run("duplicate normalized isbn writes nothing", func(t *testing.T) {
		f := newServiceFixture()
		a := f.authors.add("Frank Herbert")
		g := f.genres.add("Science Fiction")
		_, err := f.svc.Create(ctx, validCreateRequest(a.ID, g.ID))
		require.NoError(t, err)

		req := validCreateRequest(a.ID, g.ID)
		req.ISBN = "9780134685991" // same as the first after normalization
		_, err = f.svc.Create(ctx, req)
		assert.True(t, errors.Is(err, ErrDuplicateISBN))
		assert.Len(t, f.books.books, 1)
	})

	t.Run("missing author reference writes nothing", func(t *testing.T) {
		f := newServiceFixture()
		g := f.genres.add("Science Fiction")

		_, err := f.svc.Create(ctx, validCreateRequest(999, g.ID))
		assert.True(t, errors.Is(err, author.ErrNotFound))
		assert.Empty(t, f.books.books)
	})

	t.Run("duplicate ids collapse to one join row", func(t *testing.T) {
		f := newServiceFixture()
		a := f.authors.add("Frank Herbert")
		g := f.genres.add("Science Fiction")
		req := validCreateRequest(a.ID, g.ID)
		req.AuthorIDs = []int64{a.ID, a.ID, a.ID}

		b, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []int64{a.ID}, f.books.authorLinks[b.ID])
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	seed := func(f *serviceFixture) Book {
		a := f.authors.add("Frank Herbert")
		g := f.genres.add("Science Fiction")
		b, err := f.svc.Create(ctx, validCreateRequest(a.ID, g.ID))
		if err != nil {
			panic(err)
		}
		return b
	}

	t.Run("omitted fields keep stored values", func(t *testing.T) {
		f := newServiceFixture()
		b := seed(f)

		got, err := f.svc.Update(ctx, b.ID, UpdateRequest{Quantity: intPtr(5)})
		require.NoError(t, err)
		assert.Equal(t, 5, got.Quantity)
		assert.Equal(t, b.Title, got.Title)
		assert.Equal(t, b.ISBN, got.ISBN)
		assert.Equal(t, b.Price, got.Price)
	})

	t.Run("absent lists leave links unchanged", func(t *testing.T) {
		f := newServiceFixture()
		b := seed(f)
		before := append([]int64(nil), f.books.authorLinks[b.ID]...)

		_, err := f.svc.Update(ctx, b.ID, UpdateRequest{Price: floatPtr(4.99)})
		require.NoError(t, err)
		assert.Equal(t, before, f.books.authorLinks[b.ID])
	})

	t.Run("supplied list fully replaces links", func(t *testing.T) {
		f := newServiceFixture()
		b := seed(f)
		other := f.authors.add("Jane Austen")

		_, err := f.svc.Update(ctx, b.ID, UpdateRequest{AuthorIDs: []int64{other.ID}})
		require.NoError(t, err)
		assert.Equal(t, []int64{other.ID}, f.books.authorLinks[b.ID])
	})

	t.Run("reapplying the same set is idempotent", func(t *testing.T) {
		f := newServiceFixture()
		b := seed(f)
		other := f.authors.add("Jane Austen")
		target := UpdateRequest{AuthorIDs: []int64{other.ID, other.ID}}

		_, err := f.svc.Update(ctx, b.ID, target)
		require.NoError(t, err)
		first := append([]int64(nil), f.books.authorLinks[b.ID]...)

		_, err = f.svc.Update(ctx, b.ID, target)
		require.NoError(t, err)
		assert.Equal(t, first, f.books.authorLinks[b.ID])
		assert.Len(t, f.books.authorLinks[b.ID], 1)
	})

	t.Run("keeping the same isbn is not a conflict", func(t *testing.T) {
		f := newServiceFixture()
		b := seed(f)

		_, err := f.svc.Update(ctx, b.ID, UpdateRequest{ISBN: strPtr("978-0-13-468599-1")})
		require.NoError(t, err)
	})

	t.Run("changing to a taken isbn is a conflict", func(t *testing.T) {
		f := newServiceFixture()
		b := seed(f)
		a := f.authors.add("Another Author")
		g := f.genres.add("Another Genre")
		req := validCreateRequest(a.ID, g.ID)
		req.ISBN = "9780441172719"
		_, err := f.svc.Create(ctx, req)
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, b.ID, UpdateRequest{ISBN: strPtr("978-0-441-17271-9")})
		assert.True(t, errors.Is(err, ErrDuplicateISBN))
	})

	t.Run("unknown book id", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.svc.Update(ctx, 999, UpdateRequest{Quantity: intPtr(1)})
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("reclaims sole-book authors and genres", func(t *testing.T) {
		f := newServiceFixture()
		a := f.authors.add("Frank Herbert")
		g := f.genres.add("Science Fiction")
		b, err := f.svc.Create(ctx, validCreateRequest(a.ID, g.ID))
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(ctx, b.ID))
		assert.Empty(t, f.books.books)
		assert.Equal(t, []int64{a.ID}, f.authors.reclaimed)
		assert.Equal(t, []int64{g.ID}, f.genres.reclaimed)
	})

	t.Run("author linked to another book survives", func(t *testing.T) {
		f := newServiceFixture()
		a := f.authors.add("Frank Herbert")
		g := f.genres.add("Science Fiction")
		b1, err := f.svc.Create(ctx, validCreateRequest(a.ID, g.ID))
		require.NoError(t, err)
		req := validCreateRequest(a.ID, g.ID)
		req.ISBN = "9780441172719"
		_, err = f.svc.Create(ctx, req)
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(ctx, b1.ID))
		assert.Empty(t, f.authors.reclaimed)
		assert.Empty(t, f.genres.reclaimed)
		_, err = f.authors.GetByID(ctx, a.ID)
		assert.NoError(t, err)
	})

	t.Run("one failed reclaim does not block the others", func(t *testing.T) {
		f := newServiceFixture()
		a1 := f.authors.add("Frank Herbert")
		a2 := f.authors.add("Jane Austen")
		g := f.genres.add("Science Fiction")
		req := validCreateRequest(a1.ID, g.ID)
		req.AuthorIDs = []int64{a1.ID, a2.ID}
		b, err := f.svc.Create(ctx, req)
		require.NoError(t, err)

		f.authors.orphanErr[a1.ID] = errors.New("storage hiccup")

		require.NoError(t, f.svc.Delete(ctx, b.ID))
		assert.Equal(t, []int64{a2.ID}, f.authors.reclaimed)
		assert.Equal(t, []int64{g.ID}, f.genres.reclaimed)
	})

	t.Run("unknown book id", func(t *testing.T) {
		f := newServiceFixture()
		err := f.svc.Delete(ctx, 999)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
