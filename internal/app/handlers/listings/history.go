package listings

import (
	"context"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const (
	viewHistoryKey   = "listings.view_history"
	searchHistoryKey = "listings.search_history"
	searchStatsKey   = "listings.search_stats"
)

// ViewHistoryQuery returns the listings a user has opened, most recent first.
type ViewHistoryQuery struct {
	UserID string
}

func (q ViewHistoryQuery) Key() string { return viewHistoryKey }

// SearchHistoryQuery returns the user's past search terms, most recent first.
type SearchHistoryQuery struct {
	UserID string
}

func (q SearchHistoryQuery) Key() string { return searchHistoryKey }

// SearchStatsQuery ranks search terms across all users by frequency.
type SearchStatsQuery struct {
	Limit int
}

func (q SearchStatsQuery) Key() string { return searchStatsKey }

type ViewHistoryResult struct {
	Items []dto.ViewRecord `json:"items"`
}

type SearchHistoryResult struct {
	Items []dto.SearchRecord `json:"items"`
}

type SearchStatsResult struct {
	Terms []domainlistings.TermStat `json:"terms"`
}

const defaultStatsLimit = 20

type HistoryHandler struct {
	UoWFactory uow.Factory
}

func (h *HistoryHandler) HandleViews(ctx context.Context, query ViewHistoryQuery) (ViewHistoryResult, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return ViewHistoryResult{}, err
	}
	defer cleanup()

	records, err := unit.Views().ListByUser(execCtx, domainuser.ID(query.UserID))
	if err != nil {
		return ViewHistoryResult{}, err
	}
	return ViewHistoryResult{Items: dto.MapViewRecords(records)}, nil
}

func (h *HistoryHandler) HandleSearches(ctx context.Context, query SearchHistoryQuery) (SearchHistoryResult, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return SearchHistoryResult{}, err
	}
	defer cleanup()

	records, err := unit.Searches().ListByUser(execCtx, domainuser.ID(query.UserID))
	if err != nil {
		return SearchHistoryResult{}, err
	}
	return SearchHistoryResult{Items: dto.MapSearchRecords(records)}, nil
}

func (h *HistoryHandler) HandleStats(ctx context.Context, query SearchStatsQuery) (SearchStatsResult, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return SearchStatsResult{}, err
	}
	defer cleanup()

	limit := query.Limit
	if limit <= 0 {
		limit = defaultStatsLimit
	}
	terms, err := unit.Searches().TopTerms(execCtx, limit)
	if err != nil {
		return SearchStatsResult{}, err
	}
	return SearchStatsResult{Terms: terms}, nil
}

func (h *HistoryHandler) Register(bus *queries.InMemoryBus) {
	queries.RegisterHandler(bus, viewHistoryKey, queries.HandlerFunc[ViewHistoryQuery, ViewHistoryResult](h.HandleViews))
	queries.RegisterHandler(bus, searchHistoryKey, queries.HandlerFunc[SearchHistoryQuery, SearchHistoryResult](h.HandleSearches))
	queries.RegisterHandler(bus, searchStatsKey, queries.HandlerFunc[SearchStatsQuery, SearchStatsResult](h.HandleStats))
}
