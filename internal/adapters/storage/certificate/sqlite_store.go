package certificate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/certificate"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new certificate record store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const recordColumns = "id, club_id, member_name, event_name, issued_at, asset_url, status"

func scanRecord(row interface{ Scan(...any) error }) (domain.Record, error) {
	var entity domain.Record
	var issuedAt string
	err := row.Scan(
		&entity.ID,
		&entity.ClubID,
		&entity.MemberName,
		&entity.EventName,
		&issuedAt,
		&entity.AssetURL,
		&entity.Status,
	)
	if err != nil {
		return domain.Record{}, err
	}
	entity.IssuedAt, _ = time.Parse(time.RFC3339, issuedAt)
	return entity, nil
}

// GetByID retrieves a Record by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM certificate_record WHERE id = ?", id)
	entity, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return domain.Record{}, fmt.Errorf("certificate record not found: %w", err)
	}
	return entity, err
}

// Save persists a Record to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Record) error {
	query := `INSERT INTO certificate_record (id, club_id, member_name, event_name, issued_at, asset_url, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_name=excluded.member_name, event_name=excluded.event_name,
			asset_url=excluded.asset_url, status=excluded.status`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ClubID,
		entity.MemberName,
		entity.EventName,
		entity.IssuedAt.Format(time.RFC3339),
		entity.AssetURL,
		entity.Status,
	)
	return err
}

// SetAssetURL updates just the asset URL and status of a record. Used by
// the outbox when reconciling an upload that outlived its request.
// PRE: id is non-empty
// POST: Record points at the asset, or an error if the record is gone
func (s *SQLiteStore) SetAssetURL(ctx context.Context, id, assetURL, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE certificate_record SET asset_url = ?, status = ? WHERE id = ?",
		assetURL, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("certificate record not found: %s", id)
	}
	return nil
}

// ListByClub retrieves certificate records for a club, newest first.
// PRE: clubID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID string, limit, offset int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM certificate_record WHERE club_id = ? ORDER BY issued_at DESC LIMIT ? OFFSET ?",
		clubID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		entity, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountByClub returns the number of certificates issued by a club.
// POST: Returns count >= 0
func (s *SQLiteStore) CountByClub(ctx context.Context, clubID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM certificate_record WHERE club_id = ?", clubID).Scan(&count)
	return count, err
}
