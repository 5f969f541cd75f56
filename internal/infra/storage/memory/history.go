package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

type viewKey struct {
	listing domainlistings.ListingID
	user    domainuser.ID
}

// ViewHistoryRepository keeps one view record per (listing, user) pair.
type ViewHistoryRepository struct {
	mu    sync.RWMutex
	items map[viewKey]domainlistings.ViewRecord
}

func NewViewHistoryRepository() *ViewHistoryRepository {
	return &ViewHistoryRepository{items: make(map[viewKey]domainlistings.ViewRecord)}
}

func (r *ViewHistoryRepository) Touch(ctx context.Context, listingID domainlistings.ListingID, userID domainuser.ID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[viewKey{listing: listingID, user: userID}] = domainlistings.ViewRecord{
		ListingID: listingID,
		UserID:    userID,
		ViewedAt:  at.UTC(),
	}
	return nil
}

func (r *ViewHistoryRepository) CountByListing(ctx context.Context, listingID domainlistings.ListingID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for key := range r.items {
		if key.listing == listingID {
			count++
		}
	}
	return count, nil
}

func (r *ViewHistoryRepository) ListByUser(ctx context.Context, userID domainuser.ID) ([]domainlistings.ViewRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domainlistings.ViewRecord
	for key, record := range r.items {
		if key.user == userID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ViewedAt.After(out[j].ViewedAt) })
	return out, nil
}

// SearchHistoryRepository appends search log entries in memory.
type SearchHistoryRepository struct {
	mu    sync.RWMutex
	items []domainlistings.SearchRecord
}

func NewSearchHistoryRepository() *SearchHistoryRepository {
	return &SearchHistoryRepository{}
}

func (r *SearchHistoryRepository) Record(ctx context.Context, userID domainuser.ID, term string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, domainlistings.SearchRecord{UserID: userID, Term: term, SearchedAt: at.UTC()})
	return nil
}

func (r *SearchHistoryRepository) ListByUser(ctx context.Context, userID domainuser.ID) ([]domainlistings.SearchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domainlistings.SearchRecord
	for _, record := range r.items {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SearchedAt.After(out[j].SearchedAt) })
	return out, nil
}

func (r *SearchHistoryRepository) TopTerms(ctx context.Context, limit int) ([]domainlistings.TermStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, record := range r.items {
		counts[record.Term]++
	}
	out := make([]domainlistings.TermStat, 0, len(counts))
	for term, total := range counts {
		out = append(out, domainlistings.TermStat{Term: term, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Term < out[j].Term
		}
		return out[i].Total > out[j].Total
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
