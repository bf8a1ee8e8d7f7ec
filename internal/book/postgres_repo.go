package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore/internal/author"
	"bookstore/internal/genre"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const bookColumns = "id, title, subtitle, description, image_url, publisher, isbn, pub_year, page_count, quantity, price, created_at, updated_at"

func scanBook(row pgx.Row, b *Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Subtitle, &b.Description, &b.ImageURL, &b.Publisher,
		&b.ISBN, &b.PubYear, &b.PageCount, &b.Quantity, &b.Price,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *PostgresRepo) GetAll(ctx context.Context) ([]Book, error) {
	rows, err := r.db.Query(ctx, "SELECT "+bookColumns+" FROM books ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	var b Book
	err := scanBook(r.db.QueryRow(ctx, "SELECT "+bookColumns+" FROM books WHERE id = $1", id), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}

	if b.Authors, err = r.AuthorsForBook(ctx, id); err != nil {
		return Book{}, err
	}
	if b.Genres, err = r.GenresForBook(ctx, id); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	var b Book
	err := scanBook(r.db.QueryRow(ctx, "SELECT "+bookColumns+" FROM books WHERE isbn = $1", isbn), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book, authorIDs, genreIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO books (title, subtitle, description, image_url, publisher, isbn, pub_year, page_count, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, query,
		b.Title, b.Subtitle, b.Description, b.ImageURL, b.Publisher,
		b.ISBN, b.PubYear, b.PageCount, b.Quantity, b.Price,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	if err := replaceLinks(ctx, tx, "book_authors", "author_id", b.ID, authorIDs); err != nil {
		return err
	}
	if err := replaceLinks(ctx, tx, "book_genres", "genre_id", b.ID, genreIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book, authorIDs, genreIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		UPDATE books
		SET title = $1, subtitle = $2, description = $3, image_url = $4, publisher = $5,
		    isbn = $6, pub_year = $7, page_count = $8, quantity = $9, price = $10,
		    updated_at = now()
		WHERE id = $11
		RETURNING updated_at`
	err = tx.QueryRow(ctx, query,
		b.Title, b.Subtitle, b.Description, b.ImageURL, b.Publisher,
		b.ISBN, b.PubYear, b.PageCount, b.Quantity, b.Price, b.ID,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	if authorIDs != nil {
		if err := replaceLinks(ctx, tx, "book_authors", "author_id", b.ID, authorIDs); err != nil {
			return err
		}
	}
	if genreIDs != nil {
		if err := replaceLinks(ctx, tx, "book_genres", "genre_id", b.ID, genreIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) ([]int64, []int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	authorIDs, err := linkedIDs(ctx, tx, "book_authors", "author_id", id)
	if err != nil {
		return nil, nil, err
	}
	genreIDs, err := linkedIDs(ctx, tx, "book_genres", "genre_id", id)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM book_authors WHERE book_id = $1", id); err != nil {
		return nil, nil, err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM book_genres WHERE book_id = $1", id); err != nil {
		return nil, nil, err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return nil, nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return authorIDs, genreIDs, nil
}

func (r *PostgresRepo) AuthorsForBook(ctx context.Context, bookID int64) ([]author.Author, error) {
	const query = `
		SELECT a.id, a.name, a.bio, a.created_at, a.updated_at
		FROM book_authors ba
		JOIN authors a ON ba.author_id = a.id
		WHERE ba.book_id = $1
		ORDER BY a.id`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []author.Author
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GenresForBook(ctx context.Context, bookID int64) ([]genre.Genre, error) {
	const query = `
		SELECT g.id, g.name, g.created_at, g.updated_at
		FROM book_genres bg
		JOIN genres g ON bg.genre_id = g.id
		WHERE bg.book_id = $1
		ORDER BY g.id`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []genre.Genre
	for rows.Next() {
		var g genre.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// replaceLinks makes the join rows for one book match the target id set:
// delete all, insert one row per unique id. The caller supplies an already
// de-duplicated set and runs this inside a transaction.
func replaceLinks(ctx context.Context, tx pgx.Tx, table, column string, bookID int64, ids []int64) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE book_id = $1", table), bookID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for _, id := range ids {
		insert := fmt.Sprintf("INSERT INTO %s (book_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", table, column)
		if _, err := tx.Exec(ctx, insert, bookID, id); err != nil {
			return fmt.Errorf("link %s %d: %w", column, id, err)
		}
	}
	return nil
}

func linkedIDs(ctx context.Context, tx pgx.Tx, table, column string, bookID int64) ([]int64, error) {
	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE book_id = $1", column, table), bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
