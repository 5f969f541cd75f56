package listings

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const getListingKey = "listings.get"

// GetListingQuery fetches one listing. A signed-in viewer who is not the owner
// counts as a distinct view, so the handler may write.
type GetListingQuery struct {
	ListingID string
	ViewerID  string
	Now       time.Time
}

func (q GetListingQuery) Key() string { return getListingKey }

type GetListingHandler struct {
	UoWFactory uow.Factory
	Logger     *slog.Logger
}

func (h *GetListingHandler) Handle(ctx context.Context, query GetListingQuery) (dto.Listing, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return dto.Listing{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return dto.Listing{}, err
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

	now := query.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	viewer := domainuser.ID(query.ViewerID)

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(query.ListingID))
	if err != nil {
		return dto.Listing{}, err
	}
	if !listing.Active && viewer != listing.Owner {
		return dto.Listing{}, domainlistings.ErrNotOwner
	}

	if viewer != "" && viewer != listing.Owner {
		if err := unit.Views().Touch(ctx, listing.ID, viewer, now); err != nil {
			return dto.Listing{}, err
		}
		count, err := unit.Views().CountByListing(ctx, listing.ID)
		if err != nil {
			return dto.Listing{}, err
		}
		if count != listing.NumberOfViews {
			listing.ApplyViewCount(count, now)
			if err := unit.Listings().Save(ctx, listing); err != nil {
				return dto.Listing{}, err
			}
		}
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return dto.Listing{}, err
		}
		committed = true
	}

	return dto.MapListing(listing), nil
}

var _ queries.Handler[GetListingQuery, dto.Listing] = (*GetListingHandler)(nil)
