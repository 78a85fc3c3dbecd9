package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/event"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const eventColumns = "id, club_id, title, description, venue, starts_at, ends_at, status"

func scanEvent(row interface{ Scan(...any) error }) (domain.Event, error) {
	var entity domain.Event
	var startsAt string
	var endsAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.ClubID,
		&entity.Title,
		&entity.Description,
		&entity.Venue,
		&startsAt,
		&endsAt,
		&entity.Status,
	)
	if err != nil {
		return domain.Event{}, err
	}
	entity.StartsAt, _ = time.Parse(time.RFC3339, startsAt)
	if endsAt.Valid && endsAt.String != "" {
		entity.EndsAt, _ = time.Parse(time.RFC3339, endsAt.String)
	}
	return entity, nil
}

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM event WHERE id = ?", id)
	entity, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	return entity, err
}

// Save persists an Event to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	var endsAt any
	if !entity.EndsAt.IsZero() {
		endsAt = entity.EndsAt.Format(time.RFC3339)
	}
	query := `INSERT INTO event (id, club_id, title, description, venue, starts_at, ends_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, description=excluded.description, venue=excluded.venue,
			starts_at=excluded.starts_at, ends_at=excluded.ends_at, status=excluded.status`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ClubID,
		entity.Title,
		entity.Description,
		entity.Venue,
		entity.StartsAt.Format(time.RFC3339),
		endsAt,
		entity.Status,
	)
	return err
}

// List retrieves events matching the filter, newest first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM event WHERE 1=1"
	var args []any
	if filter.ClubID != "" {
		query += " AND club_id = ?"
		args = append(args, filter.ClubID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY starts_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		entity, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountByStatus returns event counts per status for one club.
// PRE: clubID is non-empty
// POST: Returns a map of status to count; absent statuses are not present
func (s *SQLiteStore) CountByStatus(ctx context.Context, clubID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM event WHERE club_id = ? GROUP BY status", clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
