package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS club (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		status TEXT NOT NULL,
		advisor_email TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		verified_at TEXT,
		verified_by TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS club_details (
		club_id TEXT PRIMARY KEY,
		cover_image TEXT NOT NULL DEFAULT '',
		profile_image TEXT NOT NULL DEFAULT '',
		facebook TEXT NOT NULL DEFAULT '',
		instagram TEXT NOT NULL DEFAULT '',
		twitter TEXT NOT NULL DEFAULT '',
		linkedin TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		google_map_url TEXT NOT NULL DEFAULT '',
		headquarters TEXT NOT NULL DEFAULT '',
		club_values TEXT NOT NULL DEFAULT '[]',
		avenues TEXT NOT NULL DEFAULT '[]',
		about TEXT NOT NULL DEFAULT '',
		mission TEXT NOT NULL DEFAULT '',
		updated_at TEXT,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS membership (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL,
		member_name TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		status TEXT NOT NULL,
		joined_at TEXT NOT NULL,
		UNIQUE (club_id, email),
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		venue TEXT NOT NULL DEFAULT '',
		starts_at TEXT NOT NULL,
		ends_at TEXT,
		status TEXT NOT NULL,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS election (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL,
		position TEXT NOT NULL,
		status TEXT NOT NULL,
		opens_at TEXT,
		closes_at TEXT,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS candidate (
		id TEXT PRIMARY KEY,
		election_id TEXT NOT NULL,
		name TEXT NOT NULL,
		FOREIGN KEY (election_id) REFERENCES election(id)
	);

	CREATE TABLE IF NOT EXISTS ballot (
		id TEXT PRIMARY KEY,
		election_id TEXT NOT NULL,
		candidate_id TEXT NOT NULL,
		voter_email TEXT NOT NULL,
		cast_at TEXT NOT NULL,
		UNIQUE (election_id, voter_email),
		FOREIGN KEY (election_id) REFERENCES election(id),
		FOREIGN KEY (candidate_id) REFERENCES candidate(id)
	);

	CREATE TABLE IF NOT EXISTS minutes (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		meeting_date TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		anonymous INTEGER NOT NULL DEFAULT 0,
		submitted_by TEXT NOT NULL DEFAULT '',
		submitted_at TEXT NOT NULL,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS certificate_record (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL,
		member_name TEXT NOT NULL,
		event_name TEXT NOT NULL,
		issued_at TEXT NOT NULL,
		asset_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_membership_club ON membership(club_id);
	CREATE INDEX IF NOT EXISTS idx_event_club ON event(club_id);
	CREATE INDEX IF NOT EXISTS idx_ballot_election ON ballot(election_id);
	CREATE INDEX IF NOT EXISTS idx_minutes_club ON minutes(club_id);
	CREATE INDEX IF NOT EXISTS idx_feedback_club ON feedback(club_id);
	CREATE INDEX IF NOT EXISTS idx_certificate_club ON certificate_record(club_id);
	CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox(status);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
