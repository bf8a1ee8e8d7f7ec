package genre

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

const genreColumns = "id, name, created_at, updated_at"

func scanGenre(row pgx.Row, g *Genre) error {
	return row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
}

func (r *PostgresRepo) GetAll(ctx context.Context) ([]Genre, error) {
	rows, err := r.db.Query(ctx, "SELECT "+genreColumns+" FROM genres ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Genre
	for rows.Next() {
		var g Genre
		if err := scanGenre(rows, &g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Genre, error) {
	var g Genre
	err := scanGenre(r.db.QueryRow(ctx, "SELECT "+genreColumns+" FROM genres WHERE id = $1", id), &g)
	if errors.Is(err, pgx.ErrNoRows) {
		return Genre{}, ErrNotFound
	}
	return g, err
}

func (r *PostgresRepo) GetByName(ctx context.Context, name string) (Genre, error) {
	var g Genre
	err := scanGenre(r.db.QueryRow(ctx, "SELECT "+genreColumns+" FROM genres WHERE name = $1", name), &g)
	if errors.Is(err, pgx.ErrNoRows) {
		return Genre{}, ErrNotFound
	}
	return g, err
}

// GetOrCreateByName looks a genre up by exact name, creating it when absent.
func (r *PostgresRepo) GetOrCreateByName(ctx context.Context, name string) (Genre, error) {
	g, err := r.GetByName(ctx, name)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Genre{}, err
	}

	g = Genre{Name: name}
	if err := r.Create(ctx, &g); err != nil {
		return Genre{}, fmt.Errorf("create genre %q: %w", name, err)
	}
	return g, nil
}

func (r *PostgresRepo) Create(ctx context.Context, g *Genre) error {
	const query = `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query, g.Name).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *PostgresRepo) Update(ctx context.Context, g *Genre) error {
	const query = `
		UPDATE genres
		SET name = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, g.Name, g.ID).Scan(&g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM genres WHERE id = $1", id)
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
		DELETE FROM genres g
		WHERE g.id = $1
		  AND NOT EXISTS (SELECT 1 FROM book_genres bg WHERE bg.genre_id = g.id)`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
