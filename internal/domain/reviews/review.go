package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/user"
)

var (
	ErrInvalidRating   = errors.New("reviews: rating must be between 0 and 5")
	ErrAlreadyReviewed = errors.New("reviews: review already exists for this listing")
	ErrOwnListing      = errors.New("reviews: owners cannot review their own listing")
	ErrNoConfirmedStay = errors.New("reviews: a confirmed booking is required to review")
	ErrNotAuthor       = errors.New("reviews: only the author may do this")
	ErrNotFound        = errors.New("reviews: not found")
)

type ReviewID string

// Review is created once per (author, listing) pair; the rating aggregator
// reacts to creation and deletion.
type Review struct {
	ID        ReviewID
	ListingID listings.ListingID
	AuthorID  user.ID
	Rating    int
	Comment   string
	CreatedAt time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReviewID) (*Review, error)
	ByAuthorAndListing(ctx context.Context, authorID user.ID, listingID listings.ListingID) (*Review, error)
	ListByListing(ctx context.Context, listingID listings.ListingID) ([]*Review, error)
	ListByAuthor(ctx context.Context, authorID user.ID) ([]*Review, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id ReviewID) error
}

type SubmitParams struct {
	ID        ReviewID
	ListingID listings.ListingID
	AuthorID  user.ID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func Submit(params SubmitParams) (*Review, error) {
	if params.Rating < 0 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	review := &Review{
		ID:        params.ID,
		ListingID: params.ListingID,
		AuthorID:  params.AuthorID,
		Rating:    params.Rating,
		Comment:   strings.TrimSpace(params.Comment),
		CreatedAt: params.CreatedAt.UTC(),
	}
	review.Record(ReviewSubmitted{ReviewID: review.ID, ListingID: review.ListingID, AuthorID: review.AuthorID, Rating: review.Rating, At: review.CreatedAt})
	return review, nil
}

// MarkDeleted records the deletion event; storage removal is the caller's
// job.
func (r *Review) MarkDeleted(now time.Time) {
	r.Record(ReviewDeleted{ReviewID: r.ID, ListingID: r.ListingID, At: now.UTC()})
}

// CheckEligibility decides whether author may review listing. The caller
// supplies the two repository facts the rule depends on.
func CheckEligibility(author user.ID, listing *listings.Listing, alreadyReviewed, hasConfirmedStay bool) error {
	if listing == nil || !listing.Active {
		return listings.ErrInactive
	}
	if alreadyReviewed {
		return ErrAlreadyReviewed
	}
	if author == listing.Owner {
		return ErrOwnListing
	}
	if !hasConfirmedStay {
		return ErrNoConfirmedStay
	}
	return nil
}
