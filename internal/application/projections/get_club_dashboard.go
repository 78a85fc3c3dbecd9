package projections

import (
	"context"

	"golang.org/x/sync/errgroup"

	certificateStore "clubsync/internal/adapters/storage/certificate"
	eventStore "clubsync/internal/adapters/storage/event"
	feedbackStore "clubsync/internal/adapters/storage/feedback"
	profileStore "clubsync/internal/adapters/storage/profile"
	rosterStore "clubsync/internal/adapters/storage/roster"
	"clubsync/internal/domain/roster"
)

// GetClubDashboardQuery carries input for the dashboard projection.
type GetClubDashboardQuery struct {
	ClubID string
}

// GetClubDashboardDeps holds dependencies for the dashboard projection.
type GetClubDashboardDeps struct {
	RosterStore      rosterStore.Store
	EventStore       eventStore.Store
	FeedbackStore    feedbackStore.Store
	CertificateStore certificateStore.Store
	ProfileStore     profileStore.Store
}

// GetClubDashboardResult carries the aggregated counters for one club.
type GetClubDashboardResult struct {
	ActiveMembers     int
	ExcomMembers      int
	EventsByStatus    map[string]int
	AverageRating     float64
	CertificatesCount int
	ProfileCompletion int // percent
}

// QueryGetClubDashboard aggregates counters across the club's stores.
// The independent reads run concurrently.
// PRE: ClubID is non-empty
// POST: Returns the full set of counters or the first store error
func QueryGetClubDashboard(ctx context.Context, query GetClubDashboardQuery, deps GetClubDashboardDeps) (GetClubDashboardResult, error) {
	var result GetClubDashboardResult

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := deps.RosterStore.Count(gctx, rosterStore.ListFilter{
			ClubID: query.ClubID,
			Status: roster.StatusActive,
		})
		if err != nil {
			return err
		}
		result.ActiveMembers = n
		return nil
	})

	g.Go(func() error {
		n, err := deps.RosterStore.Count(gctx, rosterStore.ListFilter{
			ClubID: query.ClubID,
			Role:   roster.RoleExcom,
			Status: roster.StatusActive,
		})
		if err != nil {
			return err
		}
		result.ExcomMembers = n
		return nil
	})

	g.Go(func() error {
		counts, err := deps.EventStore.CountByStatus(gctx, query.ClubID)
		if err != nil {
			return err
		}
		result.EventsByStatus = counts
		return nil
	})

	g.Go(func() error {
		avg, err := deps.FeedbackStore.AverageRating(gctx, query.ClubID)
		if err != nil {
			return err
		}
		result.AverageRating = avg
		return nil
	})

	g.Go(func() error {
		n, err := deps.CertificateStore.CountByClub(gctx, query.ClubID)
		if err != nil {
			return err
		}
		result.CertificatesCount = n
		return nil
	})

	g.Go(func() error {
		draft, err := deps.ProfileStore.GetByClubID(gctx, query.ClubID)
		if err != nil {
			return err
		}
		result.ProfileCompletion = draft.CompletionPercent()
		return nil
	})

	if err := g.Wait(); err != nil {
		return GetClubDashboardResult{}, err
	}
	if result.EventsByStatus == nil {
		result.EventsByStatus = map[string]int{}
	}
	return result, nil
}
