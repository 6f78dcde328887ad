package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	coolingload "Frostline/internal/calc/coolingload"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	CreateUser(ctx context.Context, login, email, passwordHash string) (int, error)
	// GetByLogin returns id 0 when the login is unknown.
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

// Project is a project file saved on the server by its owner.
type Project struct {
	ID        uuid.UUID          `json:"id"`
	UserID    int                `json:"-"`
	Name      string             `json:"name"`
	Fields    coolingload.Fields `json:"fields"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, userID int, name string, fields coolingload.Fields) (Project, error)
	ListProjects(ctx context.Context, userID int) ([]Project, error)
	GetProject(ctx context.Context, userID int, id uuid.UUID) (Project, error)
	UpdateProject(ctx context.Context, userID int, id uuid.UUID, name string, fields coolingload.Fields) (Project, error)
	DeleteProject(ctx context.Context, userID int, id uuid.UUID) error
}

// Open connects to Postgres. sslmode=require is added when the URL does not
// choose a mode.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			sep := "?"
			if strings.Contains(connStr, "?") {
				sep = "&"
			}
			connStr += sep + "sslmode=require"
		} else {
			connStr += " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
	id UUID PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	fields JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS projects_user_updated ON projects (user_id, updated_at DESC);
`

// Migrate creates the tables if they are missing.
func (r *Postgres) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

func (r *Postgres) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, passwordHash).Scan(&id)
	return id, err
}

func (r *Postgres) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string
	err := r.db.QueryRowContext(ctx, "SELECT id, password FROM users WHERE login=$1", login).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", err
	}
	return id, hash, nil
}

func (r *Postgres) CreateProject(ctx context.Context, userID int, name string, fields coolingload.Fields) (Project, error) {
	p := Project{ID: uuid.New(), UserID: userID, Name: name, Fields: fields, UpdatedAt: time.Now().UTC()}
	raw, err := json.Marshal(fields)
	if err != nil {
		return Project{}, fmt.Errorf("encoding fields: %w", err)
	}
	query := "INSERT INTO projects (id, user_id, name, fields, updated_at) VALUES ($1, $2, $3, $4, $5)"
	if _, err := r.db.ExecContext(ctx, query, p.ID, userID, name, raw, p.UpdatedAt); err != nil {
		return Project{}, fmt.Errorf("inserting project: %w", err)
	}
	return p, nil
}

func (r *Postgres) ListProjects(ctx context.Context, userID int) ([]Project, error) {
	query := "SELECT id, user_id, name, fields, updated_at FROM projects WHERE user_id=$1 ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Postgres) GetProject(ctx context.Context, userID int, id uuid.UUID) (Project, error) {
	query := "SELECT id, user_id, name, fields, updated_at FROM projects WHERE id=$1 AND user_id=$2"
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

func (r *Postgres) UpdateProject(ctx context.Context, userID int, id uuid.UUID, name string, fields coolingload.Fields) (Project, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return Project{}, fmt.Errorf("encoding fields: %w", err)
	}
	now := time.Now().UTC()
	query := "UPDATE projects SET name=$1, fields=$2, updated_at=$3 WHERE id=$4 AND user_id=$5"
	res, err := r.db.ExecContext(ctx, query, name, raw, now, id, userID)
	if err != nil {
		return Project{}, fmt.Errorf("updating project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Project{}, ErrNotFound
	}
	return Project{ID: id, UserID: userID, Name: name, Fields: fields, UpdatedAt: now}, nil
}

func (r *Postgres) DeleteProject(ctx context.Context, userID int, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=$1 AND user_id=$2", id, userID)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (Project, error) {
	var p Project
	var raw []byte
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &raw, &p.UpdatedAt); err != nil {
		return Project{}, err
	}
	if err := json.Unmarshal(raw, &p.Fields); err != nil {
		return Project{}, fmt.Errorf("decoding fields of %s: %w", p.ID, err)
	}
	return p, nil
}
