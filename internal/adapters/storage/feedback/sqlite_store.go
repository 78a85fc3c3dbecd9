package feedback

import (
	"context"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/feedback"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new feedback store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Feedback entry.
// PRE: entity has been validated
// POST: Entity is inserted; feedback is append-only
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Feedback) error {
	anonymous := 0
	if entity.Anonymous {
		anonymous = 1
	}
	query := `INSERT INTO feedback (id, club_id, rating, comment, anonymous, submitted_by, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ClubID,
		entity.Rating,
		entity.Comment,
		anonymous,
		entity.SubmittedBy,
		entity.SubmittedAt.Format(time.RFC3339),
	)
	return err
}

// ListByClub retrieves feedback for a club, newest first.
// PRE: clubID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID string, limit, offset int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, club_id, rating, comment, anonymous, submitted_by, submitted_at
		FROM feedback WHERE club_id = ? ORDER BY submitted_at DESC LIMIT ? OFFSET ?`,
		clubID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Feedback
	for rows.Next() {
		var entity domain.Feedback
		var anonymous int
		var submittedAt string
		if err := rows.Scan(
			&entity.ID,
			&entity.ClubID,
			&entity.Rating,
			&entity.Comment,
			&anonymous,
			&entity.SubmittedBy,
			&submittedAt,
		); err != nil {
			return nil, err
		}
		entity.Anonymous = anonymous != 0
		entity.SubmittedAt, _ = time.Parse(time.RFC3339, submittedAt)
		results = append(results, entity)
	}
	return results, rows.Err()
}

// AverageRating returns the mean rating for a club, 0 with no entries.
// PRE: clubID is non-empty
// POST: Returns a value in [0, 5]
func (s *SQLiteStore) AverageRating(ctx context.Context, clubID string) (float64, error) {
	var avg float64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(rating), 0) FROM feedback WHERE club_id = ?", clubID).Scan(&avg)
	return avg, err
}
