package election

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/election"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new election store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const electionColumns = "id, club_id, position, status, opens_at, closes_at"

func scanElection(row interface{ Scan(...any) error }) (domain.Election, error) {
	var entity domain.Election
	var opensAt, closesAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.ClubID,
		&entity.Position,
		&entity.Status,
		&opensAt,
		&closesAt,
	)
	if err != nil {
		return domain.Election{}, err
	}
	if opensAt.Valid && opensAt.String != "" {
		entity.OpensAt, _ = time.Parse(time.RFC3339, opensAt.String)
	}
	if closesAt.Valid && closesAt.String != "" {
		entity.ClosesAt, _ = time.Parse(time.RFC3339, closesAt.String)
	}
	return entity, nil
}

// GetByID retrieves an Election by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Election, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+electionColumns+" FROM election WHERE id = ?", id)
	entity, err := scanElection(row)
	if err == sql.ErrNoRows {
		return domain.Election{}, fmt.Errorf("election not found: %w", err)
	}
	return entity, err
}

// Save persists an Election to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Election) error {
	var opensAt, closesAt any
	if !entity.OpensAt.IsZero() {
		opensAt = entity.OpensAt.Format(time.RFC3339)
	}
	if !entity.ClosesAt.IsZero() {
		closesAt = entity.ClosesAt.Format(time.RFC3339)
	}
	query := `INSERT INTO election (id, club_id, position, status, opens_at, closes_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position=excluded.position, status=excluded.status,
			opens_at=excluded.opens_at, closes_at=excluded.closes_at`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID, entity.ClubID, entity.Position, entity.Status, opensAt, closesAt)
	return err
}

// ListByClub retrieves all elections for a club, newest first.
// PRE: clubID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID string) ([]domain.Election, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+electionColumns+" FROM election WHERE club_id = ? ORDER BY opens_at DESC", clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Election
	for rows.Next() {
		entity, err := scanElection(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// SaveCandidate persists a Candidate.
// PRE: value has a non-empty ID and election ID
// POST: Candidate is persisted (insert or update)
func (s *SQLiteStore) SaveCandidate(ctx context.Context, value domain.Candidate) error {
	query := `INSERT INTO candidate (id, election_id, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name`
	_, err := s.db.ExecContext(ctx, query, value.ID, value.ElectionID, value.Name)
	return err
}

// ListCandidates retrieves the candidates of an election in insertion order.
// PRE: electionID is non-empty
// POST: Returns matching candidates
func (s *SQLiteStore) ListCandidates(ctx context.Context, electionID string) ([]domain.Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, election_id, name FROM candidate WHERE election_id = ? ORDER BY rowid", electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// SaveBallot persists a Ballot. The unique (election_id, voter_email)
// constraint backs the one-ballot-per-voter invariant.
// PRE: value has non-empty IDs and voter email
// POST: Ballot is inserted, or an error on duplicate voter
func (s *SQLiteStore) SaveBallot(ctx context.Context, value domain.Ballot) error {
	query := `INSERT INTO ballot (id, election_id, candidate_id, voter_email, cast_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		value.ID, value.ElectionID, value.CandidateID, value.VoterEmail,
		value.CastAt.Format(time.RFC3339))
	return err
}

// HasVoted reports whether a voter already cast a ballot in an election.
// PRE: electionID and voterEmail are non-empty
// POST: Returns true if a ballot exists
func (s *SQLiteStore) HasVoted(ctx context.Context, electionID, voterEmail string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ballot WHERE election_id = ? AND voter_email = ?",
		electionID, voterEmail).Scan(&count)
	return count > 0, err
}

// ListBallots retrieves all ballots of an election.
// PRE: electionID is non-empty
// POST: Returns matching ballots
func (s *SQLiteStore) ListBallots(ctx context.Context, electionID string) ([]domain.Ballot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, election_id, candidate_id, voter_email, cast_at FROM ballot WHERE election_id = ?",
		electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Ballot
	for rows.Next() {
		var b domain.Ballot
		var castAt string
		if err := rows.Scan(&b.ID, &b.ElectionID, &b.CandidateID, &b.VoterEmail, &castAt); err != nil {
			return nil, err
		}
		b.CastAt, _ = time.Parse(time.RFC3339, castAt)
		results = append(results, b)
	}
	return results, rows.Err()
}
