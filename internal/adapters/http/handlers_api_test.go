package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clubsync/internal/adapters/assethost"
	"clubsync/internal/adapters/email"
	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/adapters/render"
	clubStore "clubsync/internal/adapters/storage/club"
	eventStore "clubsync/internal/adapters/storage/event"
	rosterStore "clubsync/internal/adapters/storage/roster"
	"clubsync/internal/application/orchestrators"

	accountDomain "clubsync/internal/domain/account"
	certificateDomain "clubsync/internal/domain/certificate"
	clubDomain "clubsync/internal/domain/club"
	electionDomain "clubsync/internal/domain/election"
	eventDomain "clubsync/internal/domain/event"
	feedbackDomain "clubsync/internal/domain/feedback"
	minutesDomain "clubsync/internal/domain/minutes"
	outboxDomain "clubsync/internal/domain/outbox"
	profileDomain "clubsync/internal/domain/profile"
	rosterDomain "clubsync/internal/domain/roster"
)

// --- Mock stores ---

type mockAccountStore struct {
	accounts map[string]accountDomain.Account
}

// GetByID implements the mock AccountStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockAccountStore) GetByID(ctx context.Context, id string) (accountDomain.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

// GetByEmail implements the mock AccountStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockAccountStore) GetByEmail(ctx context.Context, addr string) (accountDomain.Account, error) {
	for _, a := range m.accounts {
		if a.Email == addr {
			return a, nil
		}
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

// Save implements the mock AccountStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockAccountStore) Save(ctx context.Context, a accountDomain.Account) error {
	m.accounts[a.ID] = a
	return nil
}

// Count implements the mock AccountStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockAccountStore) Count(ctx context.Context) (int, error) {
	return len(m.accounts), nil
}

type mockClubStore struct {
	clubs map[string]clubDomain.Club
}

// GetByID implements the mock ClubStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockClubStore) GetByID(ctx context.Context, id string) (clubDomain.Club, error) {
	if c, ok := m.clubs[id]; ok {
		return c, nil
	}
	return clubDomain.Club{}, sql.ErrNoRows
}

// GetBySlug implements the mock ClubStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockClubStore) GetBySlug(ctx context.Context, slug string) (clubDomain.Club, error) {
	for _, c := range m.clubs {
		if c.Slug == slug {
			return c, nil
		}
	}
	return clubDomain.Club{}, sql.ErrNoRows
}

// Save implements the mock ClubStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockClubStore) Save(ctx context.Context, c clubDomain.Club) error {
	m.clubs[c.ID] = c
	return nil
}

func (m *mockClubStore) matches(c clubDomain.Club, filter clubStore.ListFilter) bool {
	if filter.Status != "" && c.Status != filter.Status {
		return false
	}
	if filter.Category != "" && c.Category != filter.Category {
		return false
	}
	return true
}

// List implements the mock ClubStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockClubStore) List(ctx context.Context, filter clubStore.ListFilter) ([]clubDomain.Club, error) {
	var list []clubDomain.Club
	for _, c := range m.clubs {
		if m.matches(c, filter) {
			list = append(list, c)
		}
	}
	return list, nil
}

// Count implements the mock ClubStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockClubStore) Count(ctx context.Context, filter clubStore.ListFilter) (int, error) {
	list, _ := m.List(ctx, filter)
	return len(list), nil
}

type mockProfileStore struct {
	drafts map[string]profileDomain.Draft
}

// GetByClubID implements the mock ProfileStore for testing.
// PRE: valid parameters
// POST: returns the stored draft, or an empty one for the club
func (m *mockProfileStore) GetByClubID(ctx context.Context, clubID string) (profileDomain.Draft, error) {
	if d, ok := m.drafts[clubID]; ok {
		return d, nil
	}
	return profileDomain.Draft{ClubID: clubID}, nil
}

// Save implements the mock ProfileStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockProfileStore) Save(ctx context.Context, d profileDomain.Draft) error {
	m.drafts[d.ClubID] = d
	return nil
}

type mockRosterStore struct {
	memberships map[string]rosterDomain.Membership
}

// GetByID implements the mock RosterStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockRosterStore) GetByID(ctx context.Context, id string) (rosterDomain.Membership, error) {
	if mem, ok := m.memberships[id]; ok {
		return mem, nil
	}
	return rosterDomain.Membership{}, sql.ErrNoRows
}

// GetByClubAndEmail implements the mock RosterStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockRosterStore) GetByClubAndEmail(ctx context.Context, clubID, addr string) (rosterDomain.Membership, error) {
	for _, mem := range m.memberships {
		if mem.ClubID == clubID && mem.Email == addr {
			return mem, nil
		}
	}
	return rosterDomain.Membership{}, sql.ErrNoRows
}

// Save implements the mock RosterStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockRosterStore) Save(ctx context.Context, mem rosterDomain.Membership) error {
	m.memberships[mem.ID] = mem
	return nil
}

func (m *mockRosterStore) matches(mem rosterDomain.Membership, filter rosterStore.ListFilter) bool {
	if filter.ClubID != "" && mem.ClubID != filter.ClubID {
		return false
	}
	if filter.Role != "" && mem.Role != filter.Role {
		return false
	}
	if filter.Status != "" && mem.Status != filter.Status {
		return false
	}
	return true
}

// List implements the mock RosterStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockRosterStore) List(ctx context.Context, filter rosterStore.ListFilter) ([]rosterDomain.Membership, error) {
	var list []rosterDomain.Membership
	for _, mem := range m.memberships {
		if m.matches(mem, filter) {
			list = append(list, mem)
		}
	}
	return list, nil
}

// Count implements the mock RosterStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockRosterStore) Count(ctx context.Context, filter rosterStore.ListFilter) (int, error) {
	list, _ := m.List(ctx, filter)
	return len(list), nil
}

type mockEventStore struct {
	events map[string]eventDomain.Event
}

// GetByID implements the mock EventStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockEventStore) GetByID(ctx context.Context, id string) (eventDomain.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return eventDomain.Event{}, sql.ErrNoRows
}

// Save implements the mock EventStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockEventStore) Save(ctx context.Context, e eventDomain.Event) error {
	m.events[e.ID] = e
	return nil
}

// List implements the mock EventStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockEventStore) List(ctx context.Context, filter eventStore.ListFilter) ([]eventDomain.Event, error) {
	var list []eventDomain.Event
	for _, e := range m.events {
		if filter.ClubID != "" && e.ClubID != filter.ClubID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		list = append(list, e)
	}
	return list, nil
}

// CountByStatus implements the mock EventStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockEventStore) CountByStatus(ctx context.Context, clubID string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, e := range m.events {
		if e.ClubID == clubID {
			counts[e.Status]++
		}
	}
	return counts, nil
}

type mockElectionStore struct {
	elections  map[string]electionDomain.Election
	candidates []electionDomain.Candidate
	ballots    []electionDomain.Ballot
}

// GetByID implements the mock ElectionStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockElectionStore) GetByID(ctx context.Context, id string) (electionDomain.Election, error) {
	if e, ok := m.elections[id]; ok {
		return e, nil
	}
	return electionDomain.Election{}, sql.ErrNoRows
}

// Save implements the mock ElectionStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockElectionStore) Save(ctx context.Context, e electionDomain.Election) error {
	m.elections[e.ID] = e
	return nil
}

// ListByClub implements the mock ElectionStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockElectionStore) ListByClub(ctx context.Context, clubID string) ([]electionDomain.Election, error) {
	var list []electionDomain.Election
	for _, e := range m.elections {
		if e.ClubID == clubID {
			list = append(list, e)
		}
	}
	return list, nil
}

// SaveCandidate implements the mock ElectionStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockElectionStore) SaveCandidate(ctx context.Context, c electionDomain.Candidate) error {
	m.candidates = append(m.candidates, c)
	return nil
}

// ListCandidates implements the mock ElectionStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockElectionStore) ListCandidates(ctx context.Context, electionID string) ([]electionDomain.Candidate, error) {
	var list []electionDomain.Candidate
	for _, c := range m.candidates {
		if c.ElectionID == electionID {
			list = append(list, c)
		}
	}
	return list, nil
}

// SaveBallot implements the mock ElectionStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockElectionStore) SaveBallot(ctx context.Context, b electionDomain.Ballot) error {
	m.ballots = append(m.ballots, b)
	return nil
}

// HasVoted implements the mock ElectionStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockElectionStore) HasVoted(ctx context.Context, electionID, voterEmail string) (bool, error) {
	for _, b := range m.ballots {
		if b.ElectionID == electionID && b.VoterEmail == voterEmail {
			return true, nil
		}
	}
	return false, nil
}

// ListBallots implements the mock ElectionStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockElectionStore) ListBallots(ctx context.Context, electionID string) ([]electionDomain.Ballot, error) {
	var list []electionDomain.Ballot
	for _, b := range m.ballots {
		if b.ElectionID == electionID {
			list = append(list, b)
		}
	}
	return list, nil
}

type mockMinutesStore struct {
	records map[string]minutesDomain.Minutes
}

// GetByID implements the mock MinutesStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockMinutesStore) GetByID(ctx context.Context, id string) (minutesDomain.Minutes, error) {
	if rec, ok := m.records[id]; ok {
		return rec, nil
	}
	return minutesDomain.Minutes{}, sql.ErrNoRows
}

// Save implements the mock MinutesStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockMinutesStore) Save(ctx context.Context, rec minutesDomain.Minutes) error {
	m.records[rec.ID] = rec
	return nil
}

// Delete implements the mock MinutesStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockMinutesStore) Delete(ctx context.Context, id string) error {
	delete(m.records, id)
	return nil
}

// ListByClub implements the mock MinutesStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockMinutesStore) ListByClub(ctx context.Context, clubID string, limit, offset int) ([]minutesDomain.Minutes, error) {
	var list []minutesDomain.Minutes
	for _, rec := range m.records {
		if rec.ClubID == clubID {
			list = append(list, rec)
		}
	}
	return list, nil
}

type mockFeedbackStore struct {
	entries []feedbackDomain.Feedback
}

// Save implements the mock FeedbackStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockFeedbackStore) Save(ctx context.Context, f feedbackDomain.Feedback) error {
	m.entries = append(m.entries, f)
	return nil
}

// ListByClub implements the mock FeedbackStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockFeedbackStore) ListByClub(ctx context.Context, clubID string, limit, offset int) ([]feedbackDomain.Feedback, error) {
	var list []feedbackDomain.Feedback
	for _, f := range m.entries {
		if f.ClubID == clubID {
			list = append(list, f)
		}
	}
	return list, nil
}

// AverageRating implements the mock FeedbackStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockFeedbackStore) AverageRating(ctx context.Context, clubID string) (float64, error) {
	sum, n := 0, 0
	for _, f := range m.entries {
		if f.ClubID == clubID {
			sum += f.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

type mockCertificateStore struct {
	records map[string]certificateDomain.Record
}

// GetByID implements the mock CertificateStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockCertificateStore) GetByID(ctx context.Context, id string) (certificateDomain.Record, error) {
	if rec, ok := m.records[id]; ok {
		return rec, nil
	}
	return certificateDomain.Record{}, sql.ErrNoRows
}

// Save implements the mock CertificateStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockCertificateStore) Save(ctx context.Context, rec certificateDomain.Record) error {
	m.records[rec.ID] = rec
	return nil
}

// SetAssetURL implements the mock CertificateStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockCertificateStore) SetAssetURL(ctx context.Context, id, assetURL, status string) error {
	rec, ok := m.records[id]
	if !ok {
		return sql.ErrNoRows
	}
	rec.AssetURL = assetURL
	rec.Status = status
	m.records[id] = rec
	return nil
}

// ListByClub implements the mock CertificateStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockCertificateStore) ListByClub(ctx context.Context, clubID string, limit, offset int) ([]certificateDomain.Record, error) {
	var list []certificateDomain.Record
	for _, rec := range m.records {
		if rec.ClubID == clubID {
			list = append(list, rec)
		}
	}
	return list, nil
}

// CountByClub implements the mock CertificateStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockCertificateStore) CountByClub(ctx context.Context, clubID string) (int, error) {
	list, _ := m.ListByClub(ctx, clubID, 0, 0)
	return len(list), nil
}

type mockOutboxStore struct {
	entries map[string]outboxDomain.Entry
}

// GetByID implements the mock OutboxStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockOutboxStore) GetByID(ctx context.Context, id string) (outboxDomain.Entry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return outboxDomain.Entry{}, sql.ErrNoRows
}

// Save implements the mock OutboxStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockOutboxStore) Save(ctx context.Context, e outboxDomain.Entry) error {
	m.entries[e.ID] = e
	return nil
}

// ListPending implements the mock OutboxStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockOutboxStore) ListPending(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var list []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusPending || e.Status == outboxDomain.StatusRetrying {
			list = append(list, e)
		}
	}
	return list, nil
}

// ListFailed implements the mock OutboxStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockOutboxStore) ListFailed(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var list []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusFailed {
			list = append(list, e)
		}
	}
	return list, nil
}

// Delete implements the mock OutboxStore for testing.
// PRE: valid parameters
// POST: returns expected result
func (m *mockOutboxStore) Delete(ctx context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// --- Test helpers ---

// newTestStores returns a Stores with all mock stores initialized and resets
// the package globals the handlers read.
func newTestStores() *Stores {
	s := &Stores{
		AccountStore:     &mockAccountStore{accounts: make(map[string]accountDomain.Account)},
		ClubStore:        &mockClubStore{clubs: make(map[string]clubDomain.Club)},
		ProfileStore:     &mockProfileStore{drafts: make(map[string]profileDomain.Draft)},
		RosterStore:      &mockRosterStore{memberships: make(map[string]rosterDomain.Membership)},
		EventStore:       &mockEventStore{events: make(map[string]eventDomain.Event)},
		ElectionStore:    &mockElectionStore{elections: make(map[string]electionDomain.Election)},
		MinutesStore:     &mockMinutesStore{records: make(map[string]minutesDomain.Minutes)},
		FeedbackStore:    &mockFeedbackStore{},
		CertificateStore: &mockCertificateStore{records: make(map[string]certificateDomain.Record)},
		OutboxStore:      &mockOutboxStore{entries: make(map[string]outboxDomain.Entry)},
	}
	stores = s
	sessions = middleware.NewSessionStore()
	wizards = NewWizardSessions()
	certRenderer = render.NewStubRenderer()
	certUploader = assethost.NewNoopUploader()
	emailSender = email.NewNoopSender()
	outboxProcessor = orchestrators.NewOutboxProcessor(s.OutboxStore, map[string]orchestrators.ActionExecutor{
		outboxDomain.ActionTypeRecordAssetURL: &orchestrators.RecordAssetURLExecutor{CertificateStore: s.CertificateStore},
	})
	return s
}

// authRequest returns a request with the given session injected into context.
func authRequest(method, url string, body string, sess middleware.Session) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	ctx := middleware.ContextWithSession(req.Context(), sess)
	return req.WithContext(ctx)
}

var adminSession = middleware.Session{
	AccountID: "admin-001",
	Email:     "admin@clubsync.test",
	Role:      "admin",
	CreatedAt: time.Now(),
}

var memberSession = middleware.Session{
	AccountID: "member-001",
	Email:     "rina@clubsync.test",
	Role:      "member",
	CreatedAt: time.Now(),
}

func seedClub(t *testing.T, status string) clubDomain.Club {
	t.Helper()
	c := clubDomain.Club{
		ID:           "club-1",
		Name:         "Robotics Club",
		Slug:         "robotics-club",
		Category:     clubDomain.CategoryTechnical,
		Status:       status,
		AdvisorEmail: "advisor@clubsync.test",
		CreatedAt:    time.Now(),
	}
	stores.ClubStore.Save(context.Background(), c)
	return c
}

// --- Tests: auth ---

// TestHandleLogin_Success tests the corresponding handler.
func TestHandleLogin_Success(t *testing.T) {
	newTestStores()
	acct := accountDomain.Account{ID: "a1", Email: "admin@clubsync.test", Role: "admin", CreatedAt: time.Now()}
	if err := acct.SetPassword("correct-horse-battery"); err != nil {
		t.Fatal(err)
	}
	stores.AccountStore.Save(context.Background(), acct)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"admin@clubsync.test","password":"correct-horse-battery"}`))
	rec := httptest.NewRecorder()
	handleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["role"] != "admin" {
		t.Errorf("role = %q, want admin", resp["role"])
	}
	if rec.Result().Cookies()[0].Name != "clubsync_session" {
		t.Errorf("expected a session cookie")
	}
}

// TestHandleLogin_WrongPassword tests the corresponding handler.
func TestHandleLogin_WrongPassword(t *testing.T) {
	newTestStores()
	acct := accountDomain.Account{ID: "a1", Email: "admin@clubsync.test", Role: "admin", CreatedAt: time.Now()}
	acct.SetPassword("correct-horse-battery")
	stores.AccountStore.Save(context.Background(), acct)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"admin@clubsync.test","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// --- Tests: clubs ---

// TestHandleGetClub_NotFound tests the corresponding handler.
func TestHandleGetClub_NotFound(t *testing.T) {
	newTestStores()
	req := httptest.NewRequest("GET", "/api/clubs/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	handleGetClub(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// TestHandleRegisterClub_Created tests the corresponding handler.
func TestHandleRegisterClub_Created(t *testing.T) {
	newTestStores()
	req := authRequest("POST", "/api/clubs",
		`{"name":"Debate Society","category":"academic","advisor_email":"prof@clubsync.test"}`, adminSession)
	rec := httptest.NewRecorder()
	handleRegisterClub(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	saved, err := stores.ClubStore.GetBySlug(context.Background(), "debate-society")
	if err != nil {
		t.Fatalf("club not stored: %v", err)
	}
	if saved.Status != clubDomain.StatusPending {
		t.Errorf("status = %q, want pending", saved.Status)
	}
}

// TestHandleVerifyClub_NotPending tests the corresponding handler.
func TestHandleVerifyClub_NotPending(t *testing.T) {
	newTestStores()
	seedClub(t, clubDomain.StatusVerified)

	req := authRequest("POST", "/api/clubs/club-1/verify", `{"approve":true}`, adminSession)
	req.SetPathValue("id", "club-1")
	rec := httptest.NewRecorder()
	handleVerifyClub(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("got %d, want %d", rec.Code, http.StatusConflict)
	}
}

// --- Tests: profile wizard ---

func startWizard(t *testing.T) string {
	t.Helper()
	req := authRequest("POST", "/api/clubs/club-1/wizard", "", adminSession)
	req.SetPathValue("id", "club-1")
	rec := httptest.NewRecorder()
	handleStartWizard(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start wizard: got %d: %s", rec.Code, rec.Body.String())
	}
	var view wizardView
	json.NewDecoder(rec.Body).Decode(&view)
	if view.Token == "" {
		t.Fatal("expected a wizard token")
	}
	return view.Token
}

func wizardPost(t *testing.T, token, action, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	method := "POST"
	if action == "field" {
		method = "PUT"
	}
	req = authRequest(method, "/api/wizard/"+token+"/"+action, body, adminSession)
	req.SetPathValue("token", token)
	rec := httptest.NewRecorder()
	switch action {
	case "next":
		handleWizardNext(rec, req)
	case "previous":
		handleWizardPrevious(rec, req)
	case "field":
		handleWizardField(rec, req)
	case "tags":
		handleWizardAddTag(rec, req)
	case "complete":
		handleWizardComplete(rec, req)
	}
	return rec
}

// TestWizardFlow_CompleteAtPreview walks the wizard from start to submit.
func TestWizardFlow_CompleteAtPreview(t *testing.T) {
	newTestStores()
	seedClub(t, clubDomain.StatusVerified)
	token := startWizard(t)

	if rec := wizardPost(t, token, "field", `{"section":"contact","field":"email","value":"club@clubsync.test"}`); rec.Code != http.StatusOK {
		t.Fatalf("set field: got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := wizardPost(t, token, "tags", `{"list":"values","tag":"service"}`); rec.Code != http.StatusOK {
		t.Fatalf("add tag: got %d: %s", rec.Code, rec.Body.String())
	}

	// Completing before the preview step is rejected and keeps the session.
	if rec := wizardPost(t, token, "complete", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("early complete: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	for i := 0; i < 4; i++ {
		if rec := wizardPost(t, token, "next", ""); rec.Code != http.StatusOK {
			t.Fatalf("next %d: got %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	if rec := wizardPost(t, token, "complete", ""); rec.Code != http.StatusOK {
		t.Fatalf("complete: got %d: %s", rec.Code, rec.Body.String())
	}

	draft, err := stores.ProfileStore.GetByClubID(context.Background(), "club-1")
	if err != nil {
		t.Fatal(err)
	}
	if draft.Contact.Email != "club@clubsync.test" {
		t.Errorf("draft email = %q, want club@clubsync.test", draft.Contact.Email)
	}
	if len(draft.Details.Values) != 1 {
		t.Errorf("got %d values, want 1", len(draft.Details.Values))
	}

	// The session is gone after a successful submit.
	rec := wizardPost(t, token, "next", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("after complete: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// TestHandleWizardField_UnknownSection tests the corresponding handler.
func TestHandleWizardField_UnknownSection(t *testing.T) {
	newTestStores()
	seedClub(t, clubDomain.StatusVerified)
	token := startWizard(t)

	rec := wizardPost(t, token, "field", `{"section":"bogus","field":"x","value":"y"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// --- Tests: elections ---

// TestHandleCastBallot_Unauthenticated tests the corresponding handler.
func TestHandleCastBallot_Unauthenticated(t *testing.T) {
	newTestStores()
	req := httptest.NewRequest("POST", "/api/elections/e1/ballots",
		strings.NewReader(`{"candidate_id":"c1"}`))
	req.SetPathValue("id", "e1")
	rec := httptest.NewRecorder()
	handleCastBallot(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// TestHandleCastBallot_Duplicate tests the corresponding handler.
func TestHandleCastBallot_Duplicate(t *testing.T) {
	newTestStores()
	stores.ElectionStore.Save(context.Background(), electionDomain.Election{
		ID: "e1", ClubID: "club-1", Position: "president",
		Status: electionDomain.StatusOpen, OpensAt: time.Now().Add(-time.Hour),
		ClosesAt: time.Now().Add(time.Hour),
	})
	stores.ElectionStore.SaveCandidate(context.Background(), electionDomain.Candidate{
		ID: "c1", ElectionID: "e1", Name: "Asha",
	})

	cast := func() *httptest.ResponseRecorder {
		req := authRequest("POST", "/api/elections/e1/ballots", `{"candidate_id":"c1"}`, memberSession)
		req.SetPathValue("id", "e1")
		rec := httptest.NewRecorder()
		handleCastBallot(rec, req)
		return rec
	}

	if rec := cast(); rec.Code != http.StatusNoContent {
		t.Fatalf("first ballot: got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := cast(); rec.Code != http.StatusConflict {
		t.Errorf("second ballot: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

// --- Tests: minutes ---

// TestHandleGetMinutes_RendersMarkdown tests the corresponding handler.
func TestHandleGetMinutes_RendersMarkdown(t *testing.T) {
	newTestStores()
	stores.MinutesStore.Save(context.Background(), minutesDomain.Minutes{
		ID: "m1", ClubID: "club-1", Title: "March meeting",
		Body: "Decisions were **unanimous**.", MeetingDate: time.Now(), CreatedAt: time.Now(),
	})

	req := httptest.NewRequest("GET", "/api/minutes/m1", nil)
	req.SetPathValue("id", "m1")
	rec := httptest.NewRecorder()
	handleGetMinutes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	json.NewDecoder(rec.Body).Decode(&resp)
	html, _ := resp["body_html"].(string)
	if !strings.Contains(html, "<strong>unanimous</strong>") {
		t.Errorf("body_html = %q, want rendered markdown", html)
	}
}

// --- Tests: feedback ---

// TestHandleSubmitFeedback_Anonymous tests the corresponding handler.
func TestHandleSubmitFeedback_Anonymous(t *testing.T) {
	newTestStores()
	req := authRequest("POST", "/api/clubs/club-1/feedback",
		`{"rating":4,"comment":"great events","anonymous":true}`, memberSession)
	req.SetPathValue("id", "club-1")
	rec := httptest.NewRecorder()
	handleSubmitFeedback(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	entries, _ := stores.FeedbackStore.ListByClub(context.Background(), "club-1", 100, 0)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].SubmittedBy != "" {
		t.Errorf("anonymous feedback stored submitter %q", entries[0].SubmittedBy)
	}
}

// --- Tests: certificates ---

// TestHandleGenerateCertificate_Download tests the corresponding handler.
func TestHandleGenerateCertificate_Download(t *testing.T) {
	newTestStores()
	req := authRequest("POST", "/api/certificates/generate",
		`{"user_name":"Rina","event_name":"Hackathon","club_name":"Robotics Club","event_date":"14 March 2026","format":"png"}`,
		memberSession)
	rec := httptest.NewRecorder()
	handleGenerateCertificate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q, want attachment", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected file bytes in the response")
	}
}

// TestHandleGenerateCertificate_BadFormat tests the corresponding handler.
func TestHandleGenerateCertificate_BadFormat(t *testing.T) {
	newTestStores()
	req := authRequest("POST", "/api/certificates/generate",
		`{"user_name":"Rina","event_name":"Hackathon","club_name":"Robotics Club","event_date":"14 March 2026","format":"gif"}`,
		memberSession)
	rec := httptest.NewRecorder()
	handleGenerateCertificate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// rejectingUploader fails every upload with a fixed host message.
type rejectingUploader struct {
	message string
}

// Upload implements the mock Uploader for testing.
// PRE: valid parameters
// POST: returns expected result
func (u *rejectingUploader) Upload(ctx context.Context, req assethost.UploadRequest) (assethost.UploadResult, error) {
	return assethost.UploadResult{}, errors.New(u.message)
}

// TestHandleIssueCertificate_UploadErrorSurfacedVerbatim checks that the
// asset host's own message reaches the caller without pipeline prefixes.
func TestHandleIssueCertificate_UploadErrorSurfacedVerbatim(t *testing.T) {
	newTestStores()
	seedClub(t, clubDomain.StatusVerified)
	certUploader = &rejectingUploader{message: "Invalid preset"}

	req := authRequest("POST", "/api/clubs/club-1/certificates",
		`{"member_name":"Rina","event_name":"Hackathon","event_date":"14 March 2026","format":"png"}`,
		adminSession)
	req.SetPathValue("id", "club-1")
	rec := httptest.NewRecorder()
	handleIssueCertificate(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("got %d, want %d: %s", rec.Code, http.StatusBadGateway, rec.Body.String())
	}
	var resp map[string]any
	json.NewDecoder(rec.Body).Decode(&resp)
	if got, _ := resp["error"].(string); got != "Invalid preset" {
		t.Errorf("error = %q, want the host message verbatim", got)
	}

	records, _ := stores.CertificateStore.ListByClub(context.Background(), "club-1", 10, 0)
	if len(records) != 1 || records[0].Status != certificateDomain.StatusFailed {
		t.Errorf("records = %+v, want one failed record", records)
	}
}

// TestHandleIssueCertificate_FullPipeline tests the corresponding handler.
func TestHandleIssueCertificate_FullPipeline(t *testing.T) {
	newTestStores()
	seedClub(t, clubDomain.StatusVerified)

	req := authRequest("POST", "/api/clubs/club-1/certificates",
		`{"member_name":"Rina","event_name":"Hackathon","event_date":"14 March 2026","format":"pdf"}`,
		adminSession)
	req.SetPathValue("id", "club-1")
	rec := httptest.NewRecorder()
	handleIssueCertificate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}

	records, _ := stores.CertificateStore.ListByClub(context.Background(), "club-1", 10, 0)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Status != certificateDomain.StatusUploaded {
		t.Errorf("status = %q, want uploaded", records[0].Status)
	}
	if records[0].AssetURL == "" {
		t.Error("expected a hosted asset URL")
	}
}

// TestHandleSendCertificate_NotReady tests the corresponding handler.
func TestHandleSendCertificate_NotReady(t *testing.T) {
	newTestStores()
	seedClub(t, clubDomain.StatusVerified)
	stores.CertificateStore.Save(context.Background(), certificateDomain.Record{
		ID: "r1", ClubID: "club-1", MemberName: "Rina", EventName: "Hackathon",
		IssuedAt: time.Now(), Status: certificateDomain.StatusPending,
	})

	req := authRequest("POST", "/api/certificates/r1/send", `{"recipient":"rina@clubsync.test"}`, adminSession)
	req.SetPathValue("id", "r1")
	rec := httptest.NewRecorder()
	handleSendCertificate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("got %d, want %d", rec.Code, http.StatusConflict)
	}
}

// --- Tests: dashboard ---

// TestHandleGetDashboard_Counters tests the corresponding handler.
func TestHandleGetDashboard_Counters(t *testing.T) {
	newTestStores()
	seedClub(t, clubDomain.StatusVerified)
	ctx := context.Background()
	stores.RosterStore.Save(ctx, rosterDomain.Membership{
		ID: "mem1", ClubID: "club-1", MemberName: "Rina", Email: "rina@clubsync.test",
		Role: rosterDomain.RoleExcom, Status: rosterDomain.StatusActive, JoinedAt: time.Now(),
	})
	stores.RosterStore.Save(ctx, rosterDomain.Membership{
		ID: "mem2", ClubID: "club-1", MemberName: "Dev", Email: "dev@clubsync.test",
		Role: rosterDomain.RoleMember, Status: rosterDomain.StatusActive, JoinedAt: time.Now(),
	})
	stores.EventStore.Save(ctx, eventDomain.Event{
		ID: "e1", ClubID: "club-1", Title: "Hackathon", StartsAt: time.Now(),
		Status: eventDomain.StatusPublished,
	})
	stores.FeedbackStore.Save(ctx, feedbackDomain.Feedback{
		ID: "f1", ClubID: "club-1", Rating: 4, SubmittedAt: time.Now(),
	})
	stores.CertificateStore.Save(ctx, certificateDomain.Record{
		ID: "r1", ClubID: "club-1", MemberName: "Rina", EventName: "Hackathon",
		IssuedAt: time.Now(), Status: certificateDomain.StatusUploaded,
	})

	req := httptest.NewRequest("GET", "/api/clubs/club-1/dashboard", nil)
	req.SetPathValue("id", "club-1")
	rec := httptest.NewRecorder()
	handleGetDashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	json.NewDecoder(rec.Body).Decode(&resp)
	if got := resp["active_members"].(float64); got != 2 {
		t.Errorf("active_members = %v, want 2", got)
	}
	if got := resp["excom_members"].(float64); got != 1 {
		t.Errorf("excom_members = %v, want 1", got)
	}
	if got := resp["average_rating"].(float64); got != 4 {
		t.Errorf("average_rating = %v, want 4", got)
	}
	if got := resp["certificates_count"].(float64); got != 1 {
		t.Errorf("certificates_count = %v, want 1", got)
	}
}

// --- Tests: outbox administration ---

// TestHandleRetryOutbox_ReappliesAssetURL tests the corresponding handler.
func TestHandleRetryOutbox_ReappliesAssetURL(t *testing.T) {
	newTestStores()
	ctx := context.Background()
	stores.CertificateStore.Save(ctx, certificateDomain.Record{
		ID: "r1", ClubID: "club-1", MemberName: "Rina", EventName: "Hackathon",
		IssuedAt: time.Now(), Status: certificateDomain.StatusPending,
	})
	stores.OutboxStore.Save(ctx, outboxDomain.Entry{
		ID:          "ob1",
		ActionType:  outboxDomain.ActionTypeRecordAssetURL,
		Payload:     `{"record_id":"r1","asset_url":"https://assets.invalid/certificates/r1.png"}`,
		Status:      outboxDomain.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   time.Now(),
	})

	req := authRequest("POST", "/api/admin/outbox/ob1/retry", "", adminSession)
	req.SetPathValue("id", "ob1")
	rec := httptest.NewRecorder()
	handleRetryOutbox(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	record, _ := stores.CertificateStore.GetByID(ctx, "r1")
	if record.Status != certificateDomain.StatusUploaded {
		t.Errorf("record status = %q, want uploaded", record.Status)
	}
	entry, _ := stores.OutboxStore.GetByID(ctx, "ob1")
	if entry.Status != outboxDomain.StatusDone {
		t.Errorf("entry status = %q, want done", entry.Status)
	}
}
