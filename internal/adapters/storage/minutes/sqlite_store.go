package minutes

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/minutes"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new minutes store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const minutesColumns = "id, club_id, title, body, meeting_date, created_by, created_at, updated_at"

func scanMinutes(row interface{ Scan(...any) error }) (domain.Minutes, error) {
	var entity domain.Minutes
	var meetingDate, createdAt string
	var updatedAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.ClubID,
		&entity.Title,
		&entity.Body,
		&meetingDate,
		&entity.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Minutes{}, err
	}
	entity.MeetingDate, _ = time.Parse(time.RFC3339, meetingDate)
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid && updatedAt.String != "" {
		t, perr := time.Parse(time.RFC3339, updatedAt.String)
		if perr == nil {
			entity.UpdatedAt = &t
		}
	}
	return entity, nil
}

// GetByID retrieves Minutes by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Minutes, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+minutesColumns+" FROM minutes WHERE id = ?", id)
	entity, err := scanMinutes(row)
	if err == sql.ErrNoRows {
		return domain.Minutes{}, fmt.Errorf("minutes not found: %w", err)
	}
	return entity, err
}

// Save persists Minutes to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Minutes) error {
	var updatedAt any
	if entity.UpdatedAt != nil {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}
	query := `INSERT INTO minutes (id, club_id, title, body, meeting_date, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, body=excluded.body, meeting_date=excluded.meeting_date,
			updated_at=excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ClubID,
		entity.Title,
		entity.Body,
		entity.MeetingDate.Format(time.RFC3339),
		entity.CreatedBy,
		entity.CreatedAt.Format(time.RFC3339),
		updatedAt,
	)
	return err
}

// Delete removes Minutes from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM minutes WHERE id = ?", id)
	return err
}

// ListByClub retrieves minutes for a club, most recent meeting first.
// PRE: clubID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID string, limit, offset int) ([]domain.Minutes, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+minutesColumns+" FROM minutes WHERE club_id = ? ORDER BY meeting_date DESC LIMIT ? OFFSET ?",
		clubID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Minutes
	for rows.Next() {
		entity, err := scanMinutes(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
