package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	createDatasetsTable = `
create table if not exists portfolio_datasets (
	name       text primary key,
	document   jsonb not null,
	updated_at timestamptz not null default now()
);`

	selectDocument = `select document::text from portfolio_datasets where name = $1;`

	upsertDocument = `
insert into portfolio_datasets (name, document)
values ($1, $2::jsonb)
on conflict (name) do update
set document = excluded.document, updated_at = now();`
)

// querier is the part of *pgxpool.Pool the source uses.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSource keeps each dataset as one jsonb row.
type PostgresSource struct {
	db querier
}

func NewPostgresSource(db querier) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Fetch(ctx context.Context, dataset string) ([]byte, error) {
	var doc string
	err := s.db.QueryRow(ctx, selectDocument, dataset).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, dataset)
	}
	if err != nil {
		return nil, fmt.Errorf("select dataset: %w", err)
	}
	return []byte(doc), nil
}

// EnsureSchema creates the datasets table when missing.
func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createDatasetsTable); err != nil {
		return fmt.Errorf("create portfolio_datasets: %w", err)
	}
	return nil
}

func (s *PostgresSource) Put(ctx context.Context, dataset string, doc []byte) error {
	if !knownDataset(dataset) {
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, dataset)
	}
	if _, err := s.db.Exec(ctx, upsertDocument, dataset, string(doc)); err != nil {
		return fmt.Errorf("upsert dataset: %w", err)
	}
	return nil
}
