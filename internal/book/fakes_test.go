package book

import (
	"context"
	"sort"
	"time"

	"bookstore/internal/author"
	"bookstore/internal/genre"
)

// In-memory fakes implementing the repository ports. The author/genre fakes
// track how many books link each record so DeleteIfOrphaned behaves like the
// real thing.

type fakeAuthorRepo struct {
	nextID    int64
	records   map[int64]author.Author
	linkCount map[int64]int
	orphanErr map[int64]error
	reclaimed []int64
	created   []string
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{
		records:   make(map[int64]author.Author),
		linkCount: make(map[int64]int),
		orphanErr: make(map[int64]error),
	}
}

func (f *fakeAuthorRepo) add(name string) author.Author {
	f.nextID++
	a := author.Author{ID: f.nextID, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.records[a.ID] = a
	return a
}

func (f *fakeAuthorRepo) GetAll(ctx context.Context) ([]author.Author, error) {
	out := make([]author.Author, 0, len(f.records))
	for _, a := range f.records {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAuthorRepo) GetByID(ctx context.Context, id int64) (author.Author, error) {
	a, ok := f.records[id]
	if !ok {
		return author.Author{}, author.ErrNotFound
	}
	return a, nil
}

func (f *fakeAuthorRepo) GetByName(ctx context.Context, name string) (author.Author, error) {
	for _, a := range f.records {
		if a.Name == name {
			return a, nil
		}
	}
	return author.Author{}, author.ErrNotFound
}

func (f *fakeAuthorRepo) GetOrCreateByName(ctx context.Context, name string) (author.Author, error) {
	if a, err := f.GetByName(ctx, name); err == nil {
		return a, nil
	}
	f.created = append(f.created, name)
	return f.add(name), nil
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *author.Author) error {
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.records[a.ID] = *a
	return nil
}

func (f *fakeAuthorRepo) Update(ctx context.Context, a *author.Author) error {
	if _, ok := f.records[a.ID]; !ok {
		return author.ErrNotFound
	}
	a.UpdatedAt = time.Now()
	f.records[a.ID] = *a
	return nil
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return author.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAuthorRepo) DeleteIfOrphaned(ctx context.Context, id int64) (bool, error) {
	if err := f.orphanErr[id]; err != nil {
		return false, err
	}
	if _, ok := f.records[id]; !ok {
		return false, nil
	}
	if f.linkCount[id] > 0 {
		return false, nil
	}
	delete(f.records, id)
	f.reclaimed = append(f.reclaimed, id)
	return true, nil
}

type fakeGenreRepo struct {
	nextID    int64
	records   map[int64]genre.Genre
	linkCount map[int64]int
	orphanErr map[int64]error
	reclaimed []int64
	created   []string
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{
		records:   make(map[int64]genre.Genre),
		linkCount: make(map[int64]int),
		orphanErr: make(map[int64]error),
	}
}

func (f *fakeGenreRepo) add(name string) genre.Genre {
	f.nextID++
	g := genre.Genre{ID: f.nextID, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.records[g.ID] = g
	return g
}

func (f *fakeGenreRepo) GetAll(ctx context.Context) ([]genre.Genre, error) {
	out := make([]genre.Genre, 0, len(f.records))
	for _, g := range f.records {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGenreRepo) GetByID(ctx context.Context, id int64) (genre.Genre, error) {
	g, ok := f.records[id]
	if !ok {
		return genre.Genre{}, genre.ErrNotFound
	}
	return g, nil
}

func (f *fakeGenreRepo) GetByName(ctx context.Context, name string) (genre.Genre, error) {
	for _, g := range f.records {
		if g.Name == name {
			return g, nil
		}
	}
	return genre.Genre{}, genre.ErrNotFound
}

func (f *fakeGenreRepo) GetOrCreateByName(ctx context.Context, name string) (genre.Genre, error) {
	if g, err := f.GetByName(ctx, name); err == nil {
		return g, nil
	}
	f.created = append(f.created, name)
	return f.add(name), nil
}

func (f *fakeGenreRepo) Create(ctx context.Context, g *genre.Genre) error {
	f.nextID++
	g.ID = f.nextID
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	f.records[g.ID] = *g
	return nil
}

func (f *fakeGenreRepo) Update(ctx context.Context, g *genre.Genre) error {
	if _, ok := f.records[g.ID]; !ok {
		return genre.ErrNotFound
	}
	g.UpdatedAt = time.Now()
	f.records[g.ID] = *g
	return nil
}

func (f *fakeGenreRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return genre.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeGenreRepo) DeleteIfOrphaned(ctx context.Context, id int64) (bool, error) {
	if err := f.orphanErr[id]; err != nil {
		return false, err
	}
	if _, ok := f.records[id]; !ok {
		return false, nil
	}
	if f.linkCount[id] > 0 {
		return false, nil
	}
	delete(f.records, id)
	f.reclaimed = append(f.reclaimed, id)
	return true, nil
}

type fakeBookRepo struct {
	nextID      int64
	books       map[int64]Book
	authorLinks map[int64][]int64
	genreLinks  map[int64][]int64
	authors     *fakeAuthorRepo
	genres      *fakeGenreRepo
	createErr   error
}

func newFakeBookRepo(authors *fakeAuthorRepo, genres *fakeGenreRepo) *fakeBookRepo {
	return &fakeBookRepo{
		books:       make(map[int64]Book),
		authorLinks: make(map[int64][]int64),
		genreLinks:  make(map[int64][]int64),
		authors:     authors,
		genres:      genres,
	}
}

func (f *fakeBookRepo) setAuthorLinks(bookID int64, ids []int64) {
	for _, id := range f.authorLinks[bookID] {
		f.authors.linkCount[id]--
	}
	f.authorLinks[bookID] = append([]int64(nil), ids...)
	for _, id := range ids {
		f.authors.linkCount[id]++
	}
}

func (f *fakeBookRepo) setGenreLinks(bookID int64, ids []int64) {
	for _, id := range f.genreLinks[bookID] {
		f.genres.linkCount[id]--
	}
	f.genreLinks[bookID] = append([]int64(nil), ids...)
	for _, id := range ids {
		f.genres.linkCount[id]++
	}
}

func (f *fakeBookRepo) GetAll(ctx context.Context) ([]Book, error) {
	out := make([]Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	b, ok := f.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	var err error
	if b.Authors, err = f.AuthorsForBook(ctx, id); err != nil {
		return Book{}, err
	}
	if b.Genres, err = f.GenresForBook(ctx, id); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (f *fakeBookRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	for _, b := range f.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (f *fakeBookRepo) Create(ctx context.Context, b *Book, authorIDs, genreIDs []int64) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.books[b.ID] = *b
	f.setAuthorLinks(b.ID, authorIDs)
	f.setGenreLinks(b.ID, genreIDs)
	return nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *Book, authorIDs, genreIDs []int64) error {
	if _, ok := f.books[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now()
	f.books[b.ID] = *b
	if authorIDs != nil {
		f.setAuthorLinks(b.ID, authorIDs)
	}
	if genreIDs != nil {
		f.setGenreLinks(b.ID, genreIDs)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id int64) ([]int64, []int64, error) {
	if _, ok := f.books[id]; !ok {
		return nil, nil, ErrNotFound
	}
	authorIDs := append([]int64(nil), f.authorLinks[id]...)
	genreIDs := append([]int64(nil), f.genreLinks[id]...)
	f.setAuthorLinks(id, nil)
	f.setGenreLinks(id, nil)
	delete(f.authorLinks, id)
	delete(f.genreLinks, id)
	delete(f.books, id)
	return authorIDs, genreIDs, nil
}

func (f *fakeBookRepo) AuthorsForBook(ctx context.Context, bookID int64) ([]author.Author, error) {
	var out []author.Author
	for _, id := range f.authorLinks[bookID] {
		if a, ok := f.authors.records[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) GenresForBook(ctx context.Context, bookID int64) ([]genre.Genre, error) {
	var out []genre.Genre
	for _, id := range f.genreLinks[bookID] {
		if g, ok := f.genres.records[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}
