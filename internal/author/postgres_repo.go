package author

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const authorColumns = "id, name, bio, created_at, updated_at"

func scanAuthor(row pgx.Row, a *Author) error {
	return row.Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedAt, &a.UpdatedAt)
}

func (r *PostgresRepo) GetAll(ctx context.Context) ([]Author, error) {
	rows, err := r.db.Query(ctx, "SELECT "+authorColumns+" FROM authors ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Author, error) {
	var a Author
	err := scanAuthor(r.db.QueryRow(ctx, "SELECT "+authorColumns+" FROM authors WHERE id = $1", id), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return Author{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepo) GetByName(ctx context.Context, name string) (Author, error) {
	var a Author
	err := scanAuthor(r.db.QueryRow(ctx, "SELECT "+authorColumns+" FROM authors WHERE name = $1", name), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return Author{}, ErrNotFound
	}
	return a, err
}

// GetOrCreateByName looks an author up by exact name, creating it when
// absent. The name comparison is case and whitespace sensitive.
func (r *PostgresRepo) GetOrCreateByName(ctx context.Context, name string) (Author, error) {
	a, err := r.GetByName(ctx, name)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Author{}, err
	}

	a = Author{Name: name}
	if err := r.Create(ctx, &a); err != nil {
		return Author{}, fmt.Errorf("create author %q: %w", name, err)
	}
	return a, nil
}

func (r *PostgresRepo) Create(ctx context.Context, a *Author) error {
	const query = `
		INSERT INTO authors (name, bio)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query, a.Name, a.Bio).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *PostgresRepo) Update(ctx context.Context, a *Author) error {
	const query = `
		UPDATE authors
		SET name = $1, bio = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, a.Name, a.Bio, a.ID).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) DeleteIfOrphaned(ctx context.Context, id int64) (bool, error) {
	const query = `
		DELETE FROM authors a
		WHERE a.id = $1
		  AND NOT EXISTS (SELECT 1 FROM book_authors ba WHERE ba.author_id = a.id)`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
