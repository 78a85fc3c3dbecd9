package certificate

import (
	"context"

	domain "clubsync/internal/domain/certificate"
)

// Store persists certificate issuance records.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Record, error)
	Save(ctx context.Context, value domain.Record) error
	SetAssetURL(ctx context.Context, id, assetURL, status string) error
	ListByClub(ctx context.Context, clubID string, limit, offset int) ([]domain.Record, error)
	CountByClub(ctx context.Context, clubID string) (int, error)
}
