package reviews

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/publish"
	"stayhub/internal/app/uow"
	domainreviews "stayhub/internal/domain/reviews"
	domainuser "stayhub/internal/domain/user"
)

const deleteReviewKey = "reviews.delete"

// DeleteReviewCommand removes the author's own review and folds the listing
// rating back down.
type DeleteReviewCommand struct {
	ReviewID string
	ActorID  string
	Now      time.Time
}

func (c DeleteReviewCommand) Key() string { return deleteReviewKey }

type DeleteReviewHandler struct {
	UoWFactory uow.Factory
	Publisher  publish.Publisher
	Logger     *slog.Logger
}

func (h *DeleteReviewHandler) Handle(ctx context.Context, cmd DeleteReviewCommand) (struct{}, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return struct{}{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return struct{}{}, err
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

	review, err := unit.Reviews().ByID(ctx, domainreviews.ReviewID(cmd.ReviewID))
	if err != nil {
		return struct{}{}, err
	}
	if review.AuthorID != domainuser.ID(cmd.ActorID) {
		return struct{}{}, domainreviews.ErrNotAuthor
	}

	if err := unit.Reviews().Delete(ctx, review.ID); err != nil {
		return struct{}{}, err
	}
	review.MarkDeleted(now)

	if err := recalculateListingRating(ctx, unit, review.ListingID, now); err != nil {
		return struct{}{}, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return struct{}{}, err
		}
		committed = true
	}

	if err := publish.Drain(ctx, h.Publisher, review); err != nil && h.Logger != nil {
		h.Logger.Warn("review events not published", "review_id", review.ID, "error", err)
	}
	if h.Logger != nil {
		h.Logger.Info("review deleted", "review_id", review.ID, "listing_id", review.ListingID, "actor_id", cmd.ActorID)
	}

	return struct{}{}, nil
}

var _ commands.Handler[DeleteReviewCommand, struct{}] = (*DeleteReviewHandler)(nil)
