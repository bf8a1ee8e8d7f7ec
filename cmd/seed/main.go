package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore/internal/platform/config"
)

type seedBook struct {
	title   string
	isbn    string
	pubYear int
	qty     int
	price   float64
	authors []string
	genres  []string
}

var seedBooks = []seedBook{
	{"The Go Programming Language", "9780134190440", 2015, 12, 39.99, []string{"Alan A. A. Donovan", "Brian W. Kernighan"}, []string{"Technology"}},
	{"The C Programming Language", "9780131103627", 1988, 7, 54.99, []string{"Brian W. Kernighan", "Dennis M. Ritchie"}, []string{"Technology"}},
	{"Dune", "9780441172719", 1990, 20, 9.99, []string{"Frank Herbert"}, []string{"Science Fiction"}},
	{"A Brief History of Time", "9780553380163", 1998, 5, 18.00, []string{"Stephen Hawking"}, []string{"Science"}},
	{"Pride and Prejudice", "9780141439518", 2002, 15, 7.99, []string{"Jane Austen"}, []string{"Fiction", "Romance"}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	for _, sb := range seedBooks {
		if err := insertBook(ctx, pool, sb); err != nil {
			log.Fatalf("Failed to seed %q: %v", sb.title, err)
		}
	}
	log.Printf("Seeded %d books", len(seedBooks))
}

func insertBook(ctx context.Context, pool *pgxpool.Pool, sb seedBook) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var bookID int64
	const bookSQL = `
		INSERT INTO books (title, isbn, pub_year, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (isbn) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id`
	if err := tx.QueryRow(ctx, bookSQL, sb.title, sb.isbn, sb.pubYear, sb.qty, sb.price).Scan(&bookID); err != nil {
		return err
	}

	for _, name := range sb.authors {
		var authorID int64
		const authorSQL = `
			INSERT INTO authors (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id`
		if err := tx.QueryRow(ctx, authorSQL, name).Scan(&authorID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", bookID, authorID); err != nil {
			return err
		}
	}

	for _, name := range sb.genres {
		var genreID int64
		const genreSQL = `
			INSERT INTO genres (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id`
		if err := tx.QueryRow(ctx, genreSQL, name).Scan(&genreID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", bookID, genreID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
