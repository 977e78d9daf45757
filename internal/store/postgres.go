package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/serroba/urlkurz/internal/shortener"
)

const uniqueViolation = "23505"

const schema = `
	CREATE TABLE IF NOT EXISTS shortenedurl (
		original_url TEXT NOT NULL,
		short_code   TEXT NOT NULL,
		CONSTRAINT shortenedurl_short_code_key PRIMARY KEY (short_code)
	)
`

// Querier is the subset of *pgxpool.Pool used by PostgresStore.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore creates a new PostgreSQL-backed URL store.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the shortenedurl table when it does not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}

func (p *PostgresStore) Create(ctx context.Context, shortURL *shortener.ShortenedURL) error {
	const op = "store.postgres.Create"

	query := `INSERT INTO shortenedurl (original_url, short_code) VALUES ($1, $2)`

	_, err := p.db.Exec(ctx, query, shortURL.OriginalURL.String(), shortURL.Code.String())

	return mapPostgresError(op, err)
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortenedURL, error) {
	const op = "store.postgres.GetByCode"

	query := `SELECT original_url, short_code FROM shortenedurl WHERE short_code = $1`

	var rawURL, rawCode string

	if err := p.db.QueryRow(ctx, query, code.String()).Scan(&rawURL, &rawCode); err != nil {
		return nil, mapPostgresError(op, err)
	}

	return decodeRecord(op, rawURL, rawCode)
}

// mapPostgresError translates pgx failures into the shortener error taxonomy.
// The insert touches a single table whose only unique index is the short code,
// so any unique violation is a code collision.
func mapPostgresError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return shortener.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shortener.ErrAlreadyExists
	}

	return shortener.NewBackendError(op, err)
}

// decodeRecord rebuilds a domain record from stored columns.
func decodeRecord(op, rawURL, rawCode string) (*shortener.ShortenedURL, error) {
	originalURL, err := shortener.NewOriginalURL(rawURL)
	if err != nil {
		return nil, shortener.NewBackendError(op, fmt.Errorf("corrupt record: %w", err))
	}

	code, err := shortener.NewCode(rawCode)
	if err != nil {
		return nil, shortener.NewBackendError(op, fmt.Errorf("corrupt record: %w", err))
	}

	return shortener.NewShortenedURL(originalURL, code), nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
