package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// schemaSQL creates the single table backing every collection. seq keeps
// insertion order so FetchAll matches the in-memory backend.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT        NOT NULL,
    id         TEXT        NOT NULL,
    seq        BIGSERIAL,
    data       JSONB       NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS records_collection_seq_idx ON records (collection, seq);
`

// Postgres stores records as JSONB rows in a single table.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// EnsureSchema creates the records table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (p *Postgres) FetchAll(ctx context.Context, collection string) ([]Record, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, data FROM records WHERE collection = $1 ORDER BY seq`,
		collection,
	)
	if err != nil {
		return nil, ioError("store.Postgres.FetchAll", collection, err)
	}
	defer rows.Close()

	recs := make([]Record, 0)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Data); err != nil {
			return nil, ioError("store.Postgres.FetchAll", collection, err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, ioError("store.Postgres.FetchAll", collection, err)
	}
	return recs, nil
}

func (p *Postgres) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO records (collection, id, data) VALUES ($1, $2, $3)`,
		collection, rec.ID, []byte(rec.Data),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Record{}, conflict("store.Postgres.Create", collection, rec.ID)
		}
		return Record{}, ioError("store.Postgres.Create", collection, err)
	}
	return rec, nil
}

func (p *Postgres) Update(ctx context.Context, collection, id string, rec Record) (Record, error) {
	var updated string
	err := p.pool.QueryRow(ctx,
		`UPDATE records SET data = $3, updated_at = NOW()
		 WHERE collection = $1 AND id = $2
		 RETURNING id`,
		collection, id, []byte(rec.Data),
	).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, notFound("store.Postgres.Update", collection, id)
		}
		return Record{}, ioError("store.Postgres.Update", collection, err)
	}
	rec.ID = updated
	return rec, nil
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM records WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return ioError("store.Postgres.Delete", collection, err)
	}
	return nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
