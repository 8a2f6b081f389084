package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/MNodiridev/xfit/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	// ErrEmptyName is returned when an insert is attempted without a name.
	ErrEmptyName = errors.New("guest name is empty")
	// ErrEmptyPhone is returned when an insert is attempted without a phone.
	ErrEmptyPhone = errors.New("guest phone is empty")
)

// Store persists guest-visit requests in a single SQLite table and issues
// their sequential ids. Ids come from the table's AUTOINCREMENT column, so a
// returned id always has a committed row behind it.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and brings
// its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids lock contention.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// InsertVisit records one accepted guest-visit request and returns its id.
// The phone must already be normalized; only non-emptiness is checked here.
func (s *Store) InsertVisit(ctx context.Context, name, phone string, userID int64, username string) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	if phone == "" {
		return 0, ErrEmptyPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO guest_visits (name, phone, tg_user_id, tg_username, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		name, phone, userID, username, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert guest visit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit most recent requests, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]models.VisitRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, tg_user_id, tg_username, created_at
		 FROM guest_visits ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query guest visits: %w", err)
	}
	defer rows.Close()

	var visits []models.VisitRequest
	for rows.Next() {
		var (
			v         models.VisitRequest
			userID    sql.NullInt64
			username  sql.NullString
			createdAt string
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &userID, &username, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan guest visit: %w", err)
		}
		v.UserID = userID.Int64
		v.Username = username.String
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			v.CreatedAt = t
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read guest visits: %w", err)
	}
	return visits, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
