package identity

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/sgshs/eventportal/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS allowed_users (
    mobile_number TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT ''
);
`

// InitPostgres opens a PostgreSQL connection, verifies it with a ping,
// and ensures the allow-list table exists.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// PostgresRepository loads allow-list entries from PostgreSQL. It is
// used instead of the CSV file when a database DSN is configured.
type PostgresRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRepository creates a new PostgresRepository with the given
// database connection.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// LoadEntries returns every row of the allowed_users table.
func (r *PostgresRepository) LoadEntries(ctx context.Context) ([]models.Identity, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT mobile_number, name FROM allowed_users`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Identity
	for rows.Next() {
		var e models.Identity
		if err := rows.Scan(&e.Phone, &e.Name); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
