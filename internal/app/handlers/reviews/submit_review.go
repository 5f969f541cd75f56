package reviews

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	"stayhub/internal/app/publish"
	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainreviews "stayhub/internal/domain/reviews"
	domainuser "stayhub/internal/domain/user"
)

const submitReviewKey = "reviews.submit"

// SubmitReviewCommand creates a review for a listing the author has a
// confirmed booking on.
type SubmitReviewCommand struct {
	ListingID string
	AuthorID  string
	Rating    int
	Comment   string
	Now       time.Time
}

func (c SubmitReviewCommand) Key() string { return submitReviewKey }

// SubmitReviewHandler checks eligibility, stores the review and recomputes the
// listing rating in the same unit of work.
type SubmitReviewHandler struct {
	UoWFactory uow.Factory
	Publisher  publish.Publisher
	Logger     *slog.Logger
}

func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (dto.Review, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return dto.Review{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return dto.Review{}, err
		}
		if injector, ok := unit.(interface {
			InjectContext(context.Context) context.Context
		}); ok {
			ctx = injector.InjectContext(ctx)
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	author := domainuser.ID(cmd.AuthorID)

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return dto.Review{}, err
	}

	alreadyReviewed := true
	if _, err := unit.Reviews().ByAuthorAndListing(ctx, author, listing.ID); err != nil {
		if !errors.Is(err, domainreviews.ErrNotFound) {
			return dto.Review{}, err
		}
		alreadyReviewed = false
	}
	hasConfirmedStay, err := unit.Bookings().HasByListingGuestAndStatus(ctx, listing.ID, author, domainbooking.StatusConfirmed)
	if err != nil {
		return dto.Review{}, err
	}
	if err := domainreviews.CheckEligibility(author, listing, alreadyReviewed, hasConfirmedStay); err != nil {
		return dto.Review{}, err
	}

	review, err := domainreviews.Submit(domainreviews.SubmitParams{
		ID:        domainreviews.ReviewID(uuid.NewString()),
		ListingID: listing.ID,
		AuthorID:  author,
		Rating:    cmd.Rating,
		Comment:   cmd.Comment,
		CreatedAt: now,
	})
	if err != nil {
		return dto.Review{}, err
	}
	if err := unit.Reviews().Save(ctx, review); err != nil {
		return dto.Review{}, err
	}

	if err := recalculateListingRating(ctx, unit, listing.ID, now); err != nil {
		return dto.Review{}, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return dto.Review{}, err
		}
		committed = true
	}

	if err := publish.Drain(ctx, h.Publisher, review); err != nil && h.Logger != nil {
		h.Logger.Warn("review events not published", "review_id", review.ID, "error", err)
	}
	if h.Logger != nil {
		h.Logger.Info("review submitted", "review_id", review.ID, "listing_id", listing.ID, "author_id", cmd.AuthorID, "rating", cmd.Rating)
	}

	return dto.MapReview(review), nil
}

var _ commands.Handler[SubmitReviewCommand, dto.Review] = (*SubmitReviewHandler)(nil)
