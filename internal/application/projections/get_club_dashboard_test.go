package projections

import (
	"context"
	"errors"
	"testing"

	eventStore "clubsync/internal/adapters/storage/event"
	rosterStore "clubsync/internal/adapters/storage/roster"
	"clubsync/internal/domain/certificate"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/feedback"
	"clubsync/internal/domain/profile"
	"clubsync/internal/domain/roster"
)

// Fixed-answer store fakes for the dashboard projection.

type fakeRosterStore struct{ counts map[string]int }

func (f *fakeRosterStore) GetByID(context.Context, string) (roster.Membership, error) {
	return roster.Membership{}, errors.New("not implemented")
}
func (f *fakeRosterStore) GetByClubAndEmail(context.Context, string, string) (roster.Membership, error) {
	return roster.Membership{}, errors.New("not implemented")
}
func (f *fakeRosterStore) Save(context.Context, roster.Membership) error { return nil }
func (f *fakeRosterStore) List(context.Context, rosterStore.ListFilter) ([]roster.Membership, error) {
	return nil, nil
}
func (f *fakeRosterStore) Count(_ context.Context, filter rosterStore.ListFilter) (int, error) {
	return f.counts[filter.Role], nil
}

type fakeEventStore struct {
	byStatus map[string]int
	err      error
}

func (f *fakeEventStore) GetByID(context.Context, string) (event.Event, error) {
	return event.Event{}, errors.New("not implemented")
}
func (f *fakeEventStore) Save(context.Context, event.Event) error { return nil }
func (f *fakeEventStore) List(context.Context, eventStore.ListFilter) ([]event.Event, error) {
	return nil, nil
}
func (f *fakeEventStore) CountByStatus(context.Context, string) (map[string]int, error) {
	return f.byStatus, f.err
}

type fakeFeedbackStore struct{ avg float64 }

func (f *fakeFeedbackStore) Save(context.Context, feedback.Feedback) error { return nil }
func (f *fakeFeedbackStore) ListByClub(context.Context, string, int, int) ([]feedback.Feedback, error) {
	return nil, nil
}
func (f *fakeFeedbackStore) AverageRating(context.Context, string) (float64, error) {
	return f.avg, nil
}

type fakeCertStore struct{ count int }

func (f *fakeCertStore) GetByID(context.Context, string) (certificate.Record, error) {
	return certificate.Record{}, errors.New("not implemented")
}
func (f *fakeCertStore) Save(context.Context, certificate.Record) error          { return nil }
func (f *fakeCertStore) SetAssetURL(context.Context, string, string, string) error { return nil }
func (f *fakeCertStore) ListByClub(context.Context, string, int, int) ([]certificate.Record, error) {
	return nil, nil
}
func (f *fakeCertStore) CountByClub(context.Context, string) (int, error) { return f.count, nil }

type fakeProfileStore struct{ draft profile.Draft }

func (f *fakeProfileStore) GetByClubID(context.Context, string) (profile.Draft, error) {
	return f.draft, nil
}
func (f *fakeProfileStore) Save(context.Context, profile.Draft) error { return nil }

func TestQueryGetClubDashboard(t *testing.T) {
	draft := profile.Draft{ClubID: "club-1"}
	draft.Contact.Email = "club@school.test"
	draft.Details.About = "About us"
	draft.AddValue("Service")
	draft.AddAvenue("Community")
	draft.Details.Mission = "Mission"

	deps := GetClubDashboardDeps{
		RosterStore:      &fakeRosterStore{counts: map[string]int{"": 24, roster.RoleExcom: 5}},
		EventStore:       &fakeEventStore{byStatus: map[string]int{event.StatusPublished: 2, event.StatusCompleted: 7}},
		FeedbackStore:    &fakeFeedbackStore{avg: 4.2},
		CertificateStore: &fakeCertStore{count: 31},
		ProfileStore:     &fakeProfileStore{draft: draft},
	}

	result, err := QueryGetClubDashboard(context.Background(), GetClubDashboardQuery{ClubID: "club-1"}, deps)
	if err != nil {
		t.Fatalf("QueryGetClubDashboard() error = %v", err)
	}
	if result.ActiveMembers != 24 {
		t.Errorf("ActiveMembers = %d, want 24", result.ActiveMembers)
	}
	if result.ExcomMembers != 5 {
		t.Errorf("ExcomMembers = %d, want 5", result.ExcomMembers)
	}
	if result.EventsByStatus[event.StatusCompleted] != 7 {
		t.Errorf("EventsByStatus = %v", result.EventsByStatus)
	}
	if result.AverageRating != 4.2 {
		t.Errorf("AverageRating = %v", result.AverageRating)
	}
	if result.CertificatesCount != 31 {
		t.Errorf("CertificatesCount = %d", result.CertificatesCount)
	}
	if result.ProfileCompletion != 50 {
		t.Errorf("ProfileCompletion = %d, want 50", result.ProfileCompletion)
	}
}

func TestQueryGetClubDashboardPropagatesStoreError(t *testing.T) {
	deps := GetClubDashboardDeps{
		RosterStore:      &fakeRosterStore{counts: map[string]int{}},
		EventStore:       &fakeEventStore{err: errors.New("db closed")},
		FeedbackStore:    &fakeFeedbackStore{},
		CertificateStore: &fakeCertStore{},
		ProfileStore:     &fakeProfileStore{draft: profile.Draft{ClubID: "club-1"}},
	}
	if _, err := QueryGetClubDashboard(context.Background(), GetClubDashboardQuery{ClubID: "club-1"}, deps); err == nil {
		t.Fatal("expected error from event store")
	}
}
