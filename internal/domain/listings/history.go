package listings

import (
	"context"
	"time"

	"stayhub/internal/domain/user"
)

// ViewRecord marks that a user has seen a listing. One record per
// (listing, user) pair; repeated views refresh ViewedAt.
type ViewRecord struct {
	ListingID ListingID
	UserID    user.ID
	ViewedAt  time.Time
}

type ViewHistoryRepository interface {
	// Touch inserts or refreshes the view record for the pair.
	Touch(ctx context.Context, listingID ListingID, userID user.ID, at time.Time) error
	// CountByListing returns the number of distinct viewers.
	CountByListing(ctx context.Context, listingID ListingID) (int, error)
	// ListByUser returns the user's views, most recent first.
	ListByUser(ctx context.Context, userID user.ID) ([]ViewRecord, error)
}

// SearchRecord logs one search request made by a user.
type SearchRecord struct {
	UserID     user.ID
	Term       string
	SearchedAt time.Time
}

// TermStat aggregates how often a term has been searched.
type TermStat struct {
	Term  string `json:"term"`
	Total int    `json:"total_searches"`
}

type SearchHistoryRepository interface {
	Record(ctx context.Context, userID user.ID, term string, at time.Time) error
	// ListByUser returns the user's searches, most recent first.
	ListByUser(ctx context.Context, userID user.ID) ([]SearchRecord, error)
	// TopTerms returns terms ranked by search count, descending.
	TopTerms(ctx context.Context, limit int) ([]TermStat, error)
}
