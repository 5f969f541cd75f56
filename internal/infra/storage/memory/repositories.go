package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainreviews "stayhub/internal/domain/reviews"
	domainuser "stayhub/internal/domain/user"
)

// ListingRepository is an in-memory implementation backing tests and the
// memory storage mode. Aggregates are stored by value, so callers must Save to
// make mutations visible.
type ListingRepository struct {
	mu    sync.RWMutex
	items map[domainlistings.ListingID]domainlistings.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{items: make(map[domainlistings.ListingID]domainlistings.Listing)}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, domainlistings.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *listing
	stored.ClearEvents()
	r.items[listing.ID] = stored
	return nil
}

func (r *ListingRepository) ListByOwner(ctx context.Context, owner domainuser.ID) ([]*domainlistings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainlistings.Listing
	for _, stored := range r.items {
		if stored.Owner != owner {
			continue
		}
		item := stored
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ListingRepository) Search(ctx context.Context, params domainlistings.SearchParams) (domainlistings.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := params.Normalized()
	matches := make([]*domainlistings.Listing, 0, len(r.items))
	for _, stored := range r.items {
		select {
		case <-ctx.Done():
			return domainlistings.SearchResult{}, ctx.Err()
		default:
		}
		item := stored
		if !opts.Matches(&item) {
			continue
		}
		matches = append(matches, &item)
	}

	sortListings(matches, opts.Sort)

	total := len(matches)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return domainlistings.SearchResult{Items: matches[start:end], Total: total}, nil
}

func sortListings(matches []*domainlistings.Listing, order domainlistings.SortOrder) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		switch order {
		case domainlistings.SortByPriceAsc:
			if a.PriceCents == b.PriceCents {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.PriceCents < b.PriceCents
		case domainlistings.SortByPriceDesc:
			if a.PriceCents == b.PriceCents {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.PriceCents > b.PriceCents
		case domainlistings.SortByOldest:
			return a.CreatedAt.Before(b.CreatedAt)
		case domainlistings.SortByRating:
			if a.Rating == b.Rating {
				return a.NumberOfReviews > b.NumberOfReviews
			}
			return a.Rating > b.Rating
		case domainlistings.SortByReviews:
			return a.NumberOfReviews > b.NumberOfReviews
		case domainlistings.SortByViews:
			return a.NumberOfViews > b.NumberOfViews
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (r *BookingRepository) Save(ctx context.Context, booking *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *booking
	stored.ClearEvents()
	r.items[booking.ID] = stored
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID domainuser.ID) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool { return b.GuestID == guestID })
}

func (r *BookingRepository) ListByListings(ctx context.Context, listingIDs []domainlistings.ListingID) ([]*domainbooking.Booking, error) {
	wanted := make(map[domainlistings.ListingID]struct{}, len(listingIDs))
	for _, id := range listingIDs {
		wanted[id] = struct{}{}
	}
	return r.list(func(b *domainbooking.Booking) bool {
		_, ok := wanted[b.ListingID]
		return ok
	})
}

func (r *BookingRepository) ListByListingAndStatus(ctx context.Context, listingID domainlistings.ListingID, status domainbooking.Status) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool {
		return b.ListingID == listingID && b.Status == status
	})
}

func (r *BookingRepository) HasByListingGuestAndStatus(ctx context.Context, listingID domainlistings.ListingID, guestID domainuser.ID, status domainbooking.Status) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, stored := range r.items {
		if stored.ListingID == listingID && stored.GuestID == guestID && stored.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingRepository) list(match func(*domainbooking.Booking) bool) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, stored := range r.items {
		item := stored
		if match(&item) {
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ReviewRepository stores reviews in memory.
type ReviewRepository struct {
	mu    sync.RWMutex
	items map[domainreviews.ReviewID]domainreviews.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{items: make(map[domainreviews.ReviewID]domainreviews.Review)}
}

func (r *ReviewRepository) ByID(ctx context.Context, id domainreviews.ReviewID) (*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, domainreviews.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (r *ReviewRepository) ByAuthorAndListing(ctx context.Context, authorID domainuser.ID, listingID domainlistings.ListingID) (*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, stored := range r.items {
		if stored.AuthorID == authorID && stored.ListingID == listingID {
			out := stored
			return &out, nil
		}
	}
	return nil, domainreviews.ErrNotFound
}

func (r *ReviewRepository) ListByListing(ctx context.Context, listingID domainlistings.ListingID) ([]*domainreviews.Review, error) {
	return r.list(func(review *domainreviews.Review) bool { return review.ListingID == listingID })
}

func (r *ReviewRepository) ListByAuthor(ctx context.Context, authorID domainuser.ID) ([]*domainreviews.Review, error) {
	return r.list(func(review *domainreviews.Review) bool { return review.AuthorID == authorID })
}

func (r *ReviewRepository) Save(ctx context.Context, review *domainreviews.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stored := range r.items {
		if id != review.ID && stored.AuthorID == review.AuthorID && stored.ListingID == review.ListingID {
			return domainreviews.ErrAlreadyReviewed
		}
	}
	stored := *review
	stored.ClearEvents()
	r.items[review.ID] = stored
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id domainreviews.ReviewID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainreviews.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ReviewRepository) list(match func(*domainreviews.Review) bool) ([]*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainreviews.Review
	for _, stored := range r.items {
		item := stored
		if match(&item) {
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
