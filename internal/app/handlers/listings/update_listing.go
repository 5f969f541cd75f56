package listings

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	"stayhub/internal/app/publish"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const (
	updateListingKey     = "listings.update"
	deactivateListingKey = "listings.deactivate"
)

// UpdateListingCommand replaces the editable fields of an owned listing.
type UpdateListingCommand struct {
	ListingID    string
	ActorID      string
	Title        string
	Description  string
	Address      string
	PropertyType string
	Rooms        int
	PriceCents   int64
	Active       bool
	Now          time.Time
}

func (c UpdateListingCommand) Key() string { return updateListingKey }

// DeactivateListingCommand takes a listing off the catalog without deleting
// its history.
type DeactivateListingCommand struct {
	ListingID string
	ActorID   string
	Now       time.Time
}

func (c DeactivateListingCommand) Key() string { return deactivateListingKey }

type UpdateListingHandler struct {
	UoWFactory uow.Factory
	Publisher  publish.Publisher
	Logger     *slog.Logger
}

func (h *UpdateListingHandler) HandleUpdate(ctx context.Context, cmd UpdateListingCommand) (dto.Listing, error) {
	return h.mutate(ctx, cmd.ListingID, cmd.ActorID, cmd.Now, "updated", func(listing *domainlistings.Listing, now time.Time) error {
		return listing.Update(domainlistings.UpdateParams{
			Title:        cmd.Title,
			Description:  cmd.Description,
			Address:      cmd.Address,
			PropertyType: domainlistings.PropertyType(cmd.PropertyType),
			Rooms:        cmd.Rooms,
			PriceCents:   cmd.PriceCents,
			Active:       cmd.Active,
			Now:          now,
		})
	})
}

func (h *UpdateListingHandler) HandleDeactivate(ctx context.Context, cmd DeactivateListingCommand) (dto.Listing, error) {
	return h.mutate(ctx, cmd.ListingID, cmd.ActorID, cmd.Now, "deactivated", func(listing *domainlistings.Listing, now time.Time) error {
		listing.Deactivate(now)
		return nil
	})
}

func (h *UpdateListingHandler) mutate(ctx context.Context, listingID, actorID string, at time.Time, action string, apply func(*domainlistings.Listing, time.Time) error) (dto.Listing, error) {
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

	now := at
	if now.IsZero() {
		now = time.Now().UTC()
	}

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(listingID))
	if err != nil {
		return dto.Listing{}, err
	}
	if listing.Owner != domainuser.ID(actorID) {
		return dto.Listing{}, domainlistings.ErrNotOwner
	}
	if err := apply(listing, now); err != nil {
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
		h.Logger.Info("listing "+action, "listing_id", listing.ID, "actor_id", actorID)
	}

	return dto.MapListing(listing), nil
}

func (h *UpdateListingHandler) Register(bus *commands.InMemoryBus) {
	commands.RegisterHandler(bus, updateListingKey, commands.HandlerFunc[UpdateListingCommand, dto.Listing](h.HandleUpdate))
	commands.RegisterHandler(bus, deactivateListingKey, commands.HandlerFunc[DeactivateListingCommand, dto.Listing](h.HandleDeactivate))
}
