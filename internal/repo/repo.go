package repo

import (
	"context"
	"database/sql"
	"time"
)

// Report is one exported PDF.
type Report struct {
	ID        int       `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
	FileName  string    `json:"file_name"`
	Inputs    string    `json:"inputs"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	RecordLogin(ctx context.Context, login string) error
	LastLogin(ctx context.Context, login string) (time.Time, bool, error)
	SaveReport(ctx context.Context, r Report) (int, error)
	ListReports(ctx context.Context, login string, limit int) ([]Report, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS logins (
		id SERIAL PRIMARY KEY,
		login TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS logins_login_idx ON logins (login, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id SERIAL PRIMARY KEY,
		login TEXT NOT NULL,
		name TEXT NOT NULL,
		mode TEXT NOT NULL,
		file_name TEXT NOT NULL,
		inputs TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS reports_login_idx ON reports (login, created_at DESC)`,
}

func (r *PostgresRepository) Migrate(ctx context.Context) error {
	for _, q := range schema {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) RecordLogin(ctx context.Context, login string) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO logins (login) VALUES ($1)", login)
	return err
}

func (r *PostgresRepository) LastLogin(ctx context.Context, login string) (time.Time, bool, error) {
	var at time.Time
	query := "SELECT created_at FROM logins WHERE login=$1 ORDER BY created_at DESC LIMIT 1"
	err := r.db.QueryRowContext(ctx, query, login).Scan(&at)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return at, true, nil
}

func (r *PostgresRepository) SaveReport(ctx context.Context, rep Report) (int, error) {
	var id int
	query := "INSERT INTO reports (login, name, mode, file_name, inputs) VALUES ($1, $2, $3, $4, $5) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, rep.Login, rep.Name, rep.Mode, rep.FileName, rep.Inputs).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListReports(ctx context.Context, login string, limit int) ([]Report, error) {
	query := `SELECT id, login, name, mode, file_name, inputs, created_at
		FROM reports WHERE login=$1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, login, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Report{}
	for rows.Next() {
		var rep Report
		if err := rows.Scan(&rep.ID, &rep.Login, &rep.Name, &rep.Mode, &rep.FileName, &rep.Inputs, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
