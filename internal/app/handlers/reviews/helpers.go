package reviews

import (
	"context"
	"time"

	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
)

// recalculateListingRating recomputes the listing's average rating and review
// count from scratch and saves the listing. Must run inside the same unit of
// work as the review change it reacts to.
func recalculateListingRating(ctx context.Context, unit uow.UnitOfWork, listingID domainlistings.ListingID, now time.Time) error {
	reviews, err := unit.Reviews().ListByListing(ctx, listingID)
	if err != nil {
		return err
	}
	var total int
	for _, review := range reviews {
		total += review.Rating
	}
	average := 0.0
	if len(reviews) > 0 {
		average = float64(total) / float64(len(reviews))
	}

	listing, err := unit.Listings().ByID(ctx, listingID)
	if err != nil {
		return err
	}
	listing.ApplyRating(average, len(reviews), now)
	return unit.Listings().Save(ctx, listing)
}
