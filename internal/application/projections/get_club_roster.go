package projections

import (
	"context"

	rosterStore "clubsync/internal/adapters/storage/roster"
	"clubsync/internal/application/listutil"
	"clubsync/internal/domain/roster"
)

// GetClubRosterQuery carries query parameters.
type GetClubRosterQuery struct {
	ClubID  string
	Role    string
	Status  string
	Search  string
	Sort    string
	Dir     string
	Page    int
	PerPage int
}

// GetClubRosterResult carries the query result.
type GetClubRosterResult struct {
	Members  []roster.Membership `json:"members"`
	PageInfo listutil.PageInfo   `json:"page_info"`
}

// GetClubRosterDeps holds dependencies for GetClubRoster.
type GetClubRosterDeps struct {
	RosterStore rosterStore.Store
}

// QueryGetClubRoster retrieves one page of a club's roster.
// PRE: ClubID is non-empty
// POST: Returns memberships for the page plus pagination metadata
func QueryGetClubRoster(ctx context.Context, query GetClubRosterQuery, deps GetClubRosterDeps) (GetClubRosterResult, error) {
	filter := rosterStore.ListFilter{
		ClubID: query.ClubID,
		Role:   query.Role,
		Status: query.Status,
		Search: query.Search,
		Sort:   query.Sort,
		Dir:    query.Dir,
	}

	total, err := deps.RosterStore.Count(ctx, filter)
	if err != nil {
		return GetClubRosterResult{}, err
	}

	pageInfo := listutil.NewPageInfo(query.Page, query.PerPage, total)
	filter.Limit = pageInfo.PerPage
	filter.Offset = pageInfo.Offset()

	members, err := deps.RosterStore.List(ctx, filter)
	if err != nil {
		return GetClubRosterResult{}, err
	}
	if members == nil {
		members = []roster.Membership{}
	}

	return GetClubRosterResult{Members: members, PageInfo: pageInfo}, nil
}
