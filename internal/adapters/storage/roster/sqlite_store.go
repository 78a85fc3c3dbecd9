package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/roster"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new roster store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const membershipColumns = "id, club_id, member_name, email, role, status, joined_at"

func scanMembership(row interface{ Scan(...any) error }) (domain.Membership, error) {
	var entity domain.Membership
	var joinedAt string
	err := row.Scan(
		&entity.ID,
		&entity.ClubID,
		&entity.MemberName,
		&entity.Email,
		&entity.Role,
		&entity.Status,
		&joinedAt,
	)
	if err != nil {
		return domain.Membership{}, err
	}
	entity.JoinedAt, _ = time.Parse(time.RFC3339, joinedAt)
	return entity, nil
}

// GetByID retrieves a Membership by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Membership, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+membershipColumns+" FROM membership WHERE id = ?", id)
	entity, err := scanMembership(row)
	if err == sql.ErrNoRows {
		return domain.Membership{}, fmt.Errorf("membership not found: %w", err)
	}
	return entity, err
}

// GetByClubAndEmail retrieves a Membership by club and member email.
// PRE: clubID and email are non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByClubAndEmail(ctx context.Context, clubID, email string) (domain.Membership, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+membershipColumns+" FROM membership WHERE club_id = ? AND email = ?", clubID, email)
	entity, err := scanMembership(row)
	if err == sql.ErrNoRows {
		return domain.Membership{}, fmt.Errorf("membership not found: %w", err)
	}
	return entity, err
}

// Save persists a Membership to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Membership) error {
	query := `INSERT INTO membership (id, club_id, member_name, email, role, status, joined_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_name=excluded.member_name, email=excluded.email,
			role=excluded.role, status=excluded.status`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ClubID,
		entity.MemberName,
		entity.Email,
		entity.Role,
		entity.Status,
		entity.JoinedAt.Format(time.RFC3339),
	)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.ClubID != "" {
		where += " AND club_id = ?"
		args = append(args, filter.ClubID)
	}
	if filter.Role != "" {
		where += " AND role = ?"
		args = append(args, filter.Role)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (member_name LIKE ? OR email LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"member_name": "member_name", "email": "email",
		"role": "role", "status": "status", "joined_at": "joined_at",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY member_name ASC"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// Count returns the number of memberships matching the filter.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM membership"+where, args...).Scan(&count)
	return count, err
}

// List retrieves memberships matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Membership, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + membershipColumns + " FROM membership" + where + sortClause(filter)

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

	var results []domain.Membership
	for rows.Next() {
		entity, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
