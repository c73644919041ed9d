package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/dx-portfolio/internal/domain/activity"
)

// ActivityRepository implements repository.ActivityRepository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new journal entry
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO activity_log (
			run_id, activity_type, subject, summary, details, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.RunID,
		entry.Type,
		nullString(entry.Subject),
		entry.Summary,
		nullString(entry.Details),
		createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}
	entry.CreatedAt = createdAt

	return nil
}

// List returns journal entries matching the given filters, newest first
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	query, args := listActivityQuery(opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}

func listActivityQuery(opts activity.ListOptions) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT id, run_id, activity_type, subject, summary, details, created_at FROM activity_log")

	var where []string
	var args []any
	if opts.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, opts.RunID)
	}
	if opts.Type != nil {
		where = append(where, "activity_type = ?")
		args = append(args, string(*opts.Type))
	}
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")

	// SQLite needs a LIMIT before OFFSET; -1 means unbounded.
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	b.WriteString(" LIMIT ?")
	args = append(args, limit)
	if opts.Offset > 0 {
		b.WriteString(" OFFSET ?")
		args = append(args, opts.Offset)
	}
	return b.String(), args
}

func scanEntry(rows *sql.Rows) (activity.Entry, error) {
	var entry activity.Entry
	var subject, details sql.NullString
	if err := rows.Scan(
		&entry.ID,
		&entry.RunID,
		&entry.Type,
		&subject,
		&entry.Summary,
		&details,
		&entry.CreatedAt,
	); err != nil {
		return activity.Entry{}, fmt.Errorf("failed to scan activity entry: %w", err)
	}
	entry.Subject = subject.String
	entry.Details = details.String
	return entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
