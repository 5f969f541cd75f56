package listings

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	"stayhub/internal/app/publish"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const createListingKey = "listings.create"

// CreateListingCommand publishes a new listing owned by OwnerID.
type CreateListingCommand struct {
	OwnerID      string
	Title        string
	Description  string
	Address      string
	PropertyType string
	Rooms        int
	PriceCents   int64
	Now          time.Time
}

func (c CreateListingCommand) Key() string { return createListingKey }

type CreateListingHandler struct {
	UoWFactory uow.Factory
	Publisher  publish.Publisher
	Logger     *slog.Logger
}

func (h *CreateListingHandler) Handle(ctx context.Context, cmd CreateListingCommand) (dto.Listing, error) {
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

	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	listing, err := domainlistings.New(domainlistings.CreateParams{
		ID:           domainlistings.ListingID(uuid.NewString()),
		Owner:        domainuser.ID(cmd.OwnerID),
		Title:        cmd.Title,
		Description:  cmd.Description,
		Address:      cmd.Address,
		PropertyType: domainlistings.PropertyType(cmd.PropertyType),
		Rooms:        cmd.Rooms,
		PriceCents:   cmd.PriceCents,
		Now:          now,
	})
	if err != nil {
		return dto.Listing{}, err
	}
	if err := unit.Listings().Save(ctx, listing); err != nil {
		return dto.Listing{}, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return dto.Listing{}, err
		}
		committed = true
	}

	if err := publish.Drain(ctx, h.Publisher, listing); err != nil && h.Logger != nil {
		h.Logger.Warn("listing events not published", "listing_id", listing.ID, "error", err)
	}
	if h.Logger != nil {
		h.Logger.Info("listing created", "listing_id", listing.ID, "owner_id", cmd.OwnerID)
	}

	return dto.MapListing(listing), nil
}

var _ commands.Handler[CreateListingCommand, dto.Listing] = (*CreateListingHandler)(nil)
