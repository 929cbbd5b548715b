// Package store provides SQLite persistence for time blocks. Blocks are
// client-side only: they never reach the backend, but they survive
// restarts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dmoraes/agenda/internal/schedule"
)

// SQLite implements time-block storage on a local database file.
type SQLite struct {
	db *sql.DB
}

// Open creates the store and runs migrations.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS time_blocks (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			day        TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time   TEXT NOT NULL,
			title      TEXT NOT NULL,
			duration   TEXT NOT NULL DEFAULT '',
			color      TEXT NOT NULL DEFAULT '',
			emoji      TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating time_blocks table: %w", err)
	}
	return nil
}

// ListBlocks returns all stored blocks in insertion order.
func (s *SQLite) ListBlocks(ctx context.Context) ([]schedule.TimeBlock, error) {
	query := `
		SELECT id, day, start_time, end_time, title, duration, color, emoji
		FROM time_blocks
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying time blocks: %w", err)
	}
	defer rows.Close()

	var blocks []schedule.TimeBlock
	for rows.Next() {
		var b schedule.TimeBlock
		var day string
		if err := rows.Scan(&b.ID, &day, &b.Time, &b.EndTime, &b.Title, &b.Duration, &b.Color, &b.Emoji); err != nil {
			return nil, fmt.Errorf("scanning time block: %w", err)
		}
		b.Day = schedule.Day(day)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// CreateBlock inserts a block and sets its ID.
func (s *SQLite) CreateBlock(ctx context.Context, b *schedule.TimeBlock) error {
	query := `
		INSERT INTO time_blocks (day, start_time, end_time, title, duration, color, emoji, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		string(b.Day), b.Time, b.EndTime, b.Title, b.Duration, b.Color, b.Emoji,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time block: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	b.ID = id
	return nil
}

// DeleteBlock removes a block.
func (s *SQLite) DeleteBlock(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM time_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time block: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return schedule.ErrBlockNotFound
	}
	return nil
}

// UpdateBlockPlacement moves a block to a new day and time range, the
// block-side half of a drag reschedule.
func (s *SQLite) UpdateBlockPlacement(ctx context.Context, id int64, day schedule.Day, start, end string) error {
	query := `UPDATE time_blocks SET day = ?, start_time = ?, end_time = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, string(day), start, end, id)
	if err != nil {
		return fmt.Errorf("updating time block: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return schedule.ErrBlockNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
