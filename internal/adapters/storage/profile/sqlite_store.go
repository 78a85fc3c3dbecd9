package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/profile"
)

// SQLiteStore implements Store using SQLite. Values and avenues are stored
// as JSON arrays to keep their order.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new profile store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByClubID retrieves the stored profile details for a club. A club with
// no saved details yet gets an empty draft, not an error.
// PRE: clubID is non-empty
// POST: Returns the draft seeded with all stored fields
func (s *SQLiteStore) GetByClubID(ctx context.Context, clubID string) (domain.Draft, error) {
	query := `SELECT cover_image, profile_image, facebook, instagram, twitter, linkedin, website,
		email, phone, google_map_url, headquarters, club_values, avenues, about, mission
		FROM club_details WHERE club_id = ?`

	draft := domain.Draft{ClubID: clubID}
	var valuesJSON, avenuesJSON string
	err := s.db.QueryRowContext(ctx, query, clubID).Scan(
		&draft.Images.CoverImage,
		&draft.Images.ProfileImage,
		&draft.SocialMedia.Facebook,
		&draft.SocialMedia.Instagram,
		&draft.SocialMedia.Twitter,
		&draft.SocialMedia.LinkedIn,
		&draft.SocialMedia.Website,
		&draft.Contact.Email,
		&draft.Contact.Phone,
		&draft.Contact.GoogleMapURL,
		&draft.Contact.Headquarters,
		&valuesJSON,
		&avenuesJSON,
		&draft.Details.About,
		&draft.Details.Mission,
	)
	if err == sql.ErrNoRows {
		return draft, nil
	}
	if err != nil {
		return domain.Draft{}, err
	}
	if err := json.Unmarshal([]byte(valuesJSON), &draft.Details.Values); err != nil {
		return domain.Draft{}, fmt.Errorf("decode club values: %w", err)
	}
	if err := json.Unmarshal([]byte(avenuesJSON), &draft.Details.Avenues); err != nil {
		return domain.Draft{}, fmt.Errorf("decode avenues: %w", err)
	}
	return draft, nil
}

// Save persists the full draft as a single replace-fields upsert.
// PRE: value.ClubID is non-empty
// POST: Every stored field equals the draft's field; no partial apply
func (s *SQLiteStore) Save(ctx context.Context, value domain.Draft) error {
	if value.ClubID == "" {
		return fmt.Errorf("draft has no club id")
	}

	valuesJSON, err := json.Marshal(emptyAsList(value.Details.Values))
	if err != nil {
		return fmt.Errorf("encode club values: %w", err)
	}
	avenuesJSON, err := json.Marshal(emptyAsList(value.Details.Avenues))
	if err != nil {
		return fmt.Errorf("encode avenues: %w", err)
	}

	query := `INSERT INTO club_details (club_id, cover_image, profile_image, facebook, instagram,
		twitter, linkedin, website, email, phone, google_map_url, headquarters,
		club_values, avenues, about, mission, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(club_id) DO UPDATE SET
			cover_image=excluded.cover_image, profile_image=excluded.profile_image,
			facebook=excluded.facebook, instagram=excluded.instagram, twitter=excluded.twitter,
			linkedin=excluded.linkedin, website=excluded.website, email=excluded.email,
			phone=excluded.phone, google_map_url=excluded.google_map_url,
			headquarters=excluded.headquarters, club_values=excluded.club_values,
			avenues=excluded.avenues, about=excluded.about, mission=excluded.mission,
			updated_at=excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		value.ClubID,
		value.Images.CoverImage,
		value.Images.ProfileImage,
		value.SocialMedia.Facebook,
		value.SocialMedia.Instagram,
		value.SocialMedia.Twitter,
		value.SocialMedia.LinkedIn,
		value.SocialMedia.Website,
		value.Contact.Email,
		value.Contact.Phone,
		value.Contact.GoogleMapURL,
		value.Contact.Headquarters,
		string(valuesJSON),
		string(avenuesJSON),
		value.Details.About,
		value.Details.Mission,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// emptyAsList keeps nil slices encoding as [] rather than null.
func emptyAsList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
