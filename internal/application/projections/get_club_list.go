package projections

import (
	"context"

	clubStore "clubsync/internal/adapters/storage/club"
	"clubsync/internal/application/listutil"
	"clubsync/internal/domain/club"
)

// GetClubListQuery carries query parameters.
type GetClubListQuery struct {
	Category string
	Status   string
	Search   string
	Sort     string
	Dir      string
	Page     int
	PerPage  int
}

// GetClubListResult carries the query result.
type GetClubListResult struct {
	Clubs    []club.Club       `json:"clubs"`
	PageInfo listutil.PageInfo `json:"page_info"`
}

// GetClubListDeps holds dependencies for GetClubList.
type GetClubListDeps struct {
	ClubStore clubStore.Store
}

// QueryGetClubList retrieves one page of clubs with a total count.
// PRE: Valid query parameters
// POST: Returns clubs for the page plus pagination metadata
func QueryGetClubList(ctx context.Context, query GetClubListQuery, deps GetClubListDeps) (GetClubListResult, error) {
	filter := clubStore.ListFilter{
		Category: query.Category,
		Status:   query.Status,
		Search:   query.Search,
		Sort:     query.Sort,
		Dir:      query.Dir,
	}

	total, err := deps.ClubStore.Count(ctx, filter)
	if err != nil {
		return GetClubListResult{}, err
	}

	pageInfo := listutil.NewPageInfo(query.Page, query.PerPage, total)
	filter.Limit = pageInfo.PerPage
	filter.Offset = pageInfo.Offset()

	clubs, err := deps.ClubStore.List(ctx, filter)
	if err != nil {
		return GetClubListResult{}, err
	}
	if clubs == nil {
		clubs = []club.Club{}
	}

	return GetClubListResult{Clubs: clubs, PageInfo: pageInfo}, nil
}
