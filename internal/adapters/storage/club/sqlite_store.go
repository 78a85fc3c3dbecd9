package club

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/club"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new club store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const clubColumns = "id, name, slug, category, status, advisor_email, created_at, verified_at, verified_by"

func scanClub(row interface{ Scan(...any) error }) (domain.Club, error) {
	var entity domain.Club
	var createdAt string
	var verifiedAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Slug,
		&entity.Category,
		&entity.Status,
		&entity.AdvisorEmail,
		&createdAt,
		&verifiedAt,
		&entity.VerifiedBy,
	)
	if err != nil {
		return domain.Club{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if verifiedAt.Valid && verifiedAt.String != "" {
		t, perr := time.Parse(time.RFC3339, verifiedAt.String)
		if perr == nil {
			entity.VerifiedAt = &t
		}
	}
	return entity, nil
}

// GetByID retrieves a Club by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Club, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+clubColumns+" FROM club WHERE id = ?", id)
	entity, err := scanClub(row)
	if err == sql.ErrNoRows {
		return domain.Club{}, fmt.Errorf("club not found: %w", err)
	}
	return entity, err
}

// GetBySlug retrieves a Club by its slug.
// PRE: slug is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (domain.Club, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+clubColumns+" FROM club WHERE slug = ?", slug)
	entity, err := scanClub(row)
	if err == sql.ErrNoRows {
		return domain.Club{}, fmt.Errorf("club not found: %w", err)
	}
	return entity, err
}

// Save persists a Club to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Club) error {
	var verifiedAt any
	if entity.VerifiedAt != nil {
		verifiedAt = entity.VerifiedAt.Format(time.RFC3339)
	}
	query := `INSERT INTO club (id, name, slug, category, status, advisor_email, created_at, verified_at, verified_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, slug=excluded.slug, category=excluded.category, status=excluded.status,
			advisor_email=excluded.advisor_email, verified_at=excluded.verified_at, verified_by=excluded.verified_by`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Slug,
		entity.Category,
		entity.Status,
		entity.AdvisorEmail,
		entity.CreatedAt.Format(time.RFC3339),
		verifiedAt,
		entity.VerifiedBy,
	)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR slug LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"name": "name", "slug": "slug",
		"category": "category", "status": "status", "created_at": "created_at",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY name ASC"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// Count returns the total number of clubs matching the filter.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM club"+where, args...).Scan(&count)
	return count, err
}

// List retrieves clubs matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Club, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + clubColumns + " FROM club" + where + sortClause(filter)

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

	var results []domain.Club
	for rows.Next() {
		entity, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
