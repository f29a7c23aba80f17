package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/ukaji3/recetario-go/pkg/recetario/models"
)

const schema = `
create table if not exists recetario_kv (
	key        text primary key,
	value      jsonb not null,
	updated_at timestamptz not null default now()
)`

// PostgresStore keeps the family list in a key/value table.
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore opens the database, checks the connection and creates
// the table when missing.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

// Save upserts the families under Key.
func (s *PostgresStore) Save(ctx context.Context, families []models.Family) error {
	data, err := encode(families)
	if err != nil {
		return err
	}
	const q = `
insert into recetario_kv(key, value)
values ($1, $2)
on conflict (key)
do update set value=excluded.value, updated_at=now()`
	if _, err := s.DB.ExecContext(ctx, q, Key, data); err != nil {
		return fmt.Errorf("failed to save families: %w", err)
	}
	return nil
}

// Load reads the families stored under Key.
func (s *PostgresStore) Load(ctx context.Context) ([]models.Family, error) {
	const q = `select value from recetario_kv where key=$1`
	var data []byte
	if err := s.DB.QueryRowContext(ctx, q, Key).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load families: %w", err)
	}
	return decode(data)
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	return s.DB.Close()
}
