package booking

import (
	"context"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const listHostBookingsKey = "booking.list_host"

// ListHostBookingsQuery returns bookings made against any of the owner's
// listings, pending ones included.
type ListHostBookingsQuery struct {
	OwnerID string
}

func (q ListHostBookingsQuery) Key() string { return listHostBookingsKey }

type HostBookingsHandler struct {
	UoWFactory uow.Factory
}

func (h *HostBookingsHandler) Handle(ctx context.Context, query ListHostBookingsQuery) (dto.BookingCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	defer cleanup()

	owned, err := unit.Listings().ListByOwner(execCtx, domainuser.ID(query.OwnerID))
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if len(owned) == 0 {
		return dto.BookingCollection{Items: []dto.Booking{}}, nil
	}
	ids := make([]domainlistings.ListingID, 0, len(owned))
	for _, listing := range owned {
		ids = append(ids, listing.ID)
	}

	items, err := unit.Bookings().ListByListings(execCtx, ids)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	mapped := dto.MapBookings(items)
	return dto.BookingCollection{Items: mapped, Total: len(mapped)}, nil
}

func (h *HostBookingsHandler) Register(bus *queries.InMemoryBus) {
	queries.RegisterHandler(bus, listHostBookingsKey, queries.HandlerFunc[ListHostBookingsQuery, dto.BookingCollection](h.Handle))
}
