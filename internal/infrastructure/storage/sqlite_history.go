package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"UXTester/internal/domain"
	"UXTester/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS check_history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    url        TEXT NOT NULL,
    score      INTEGER NOT NULL,
    status     TEXT NOT NULL,
    checked_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_check_history_url ON check_history (url, checked_at);`

// SQLiteHistory archives scheduled-check observations in a local sqlite file.
// The registry stays authoritative for current state; this is an append-only
// audit trail.
type SQLiteHistory struct {
	db *sql.DB
}

var _ ports.CheckHistory = (*SQLiteHistory)(nil)

// Open creates or opens the archive at path and ensures the schema.
func Open(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure history schema: %w", err)
	}

	return &SQLiteHistory{db: db}, nil
}

// Close releases the underlying database handle.
func (h *SQLiteHistory) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Record appends one check observation.
func (h *SQLiteHistory) Record(ctx context.Context, rec domain.CheckRecord) error {
	if h.db == nil {
		return nil
	}

	_, err := sq.Insert("check_history").
		Columns("url", "score", "status", "checked_at").
		Values(rec.URL, rec.Score, string(rec.Status), rec.CheckedAt.UTC()).
		RunWith(h.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert check record: %w", err)
	}

	return nil
}

// Recent returns up to limit observations for a URL, newest first.
func (h *SQLiteHistory) Recent(ctx context.Context, url string, limit int) ([]domain.CheckRecord, error) {
	if h.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := sq.Select("url", "score", "status", "checked_at").
		From("check_history").
		Where(sq.Eq{"url": url}).
		OrderBy("checked_at DESC", "id DESC").
		Limit(uint64(limit)).
		RunWith(h.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query check history: %w", err)
	}
	defer rows.Close()

	var records []domain.CheckRecord
	for rows.Next() {
		var (
			rec       domain.CheckRecord
			status    string
			checkedAt time.Time
		)
		if err := rows.Scan(&rec.URL, &rec.Score, &status, &checkedAt); err != nil {
			return nil, fmt.Errorf("scan check record: %w", err)
		}
		rec.Status = domain.SiteStatus(status)
		rec.CheckedAt = checkedAt
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}
