package booking

import (
	"context"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainuser "stayhub/internal/domain/user"
)

const (
	listGuestBookingsKey = "booking.list_guest"
	getBookingKey        = "booking.get"
)

// ListGuestBookingsQuery returns every booking the guest has made.
type ListGuestBookingsQuery struct {
	GuestID string
}

func (q ListGuestBookingsQuery) Key() string { return listGuestBookingsKey }

// GetBookingQuery fetches one booking. Only the guest or the listing owner may
// see it.
type GetBookingQuery struct {
	BookingID string
	ActorID   string
}

func (q GetBookingQuery) Key() string { return getBookingKey }

type GuestBookingsHandler struct {
	UoWFactory uow.Factory
}

func (h *GuestBookingsHandler) HandleList(ctx context.Context, query ListGuestBookingsQuery) (dto.BookingCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	defer cleanup()

	items, err := unit.Bookings().ListByGuest(execCtx, domainuser.ID(query.GuestID))
	if err != nil {
		return dto.BookingCollection{}, err
	}
	mapped := dto.MapBookings(items)
	return dto.BookingCollection{Items: mapped, Total: len(mapped)}, nil
}

func (h *GuestBookingsHandler) HandleGet(ctx context.Context, query GetBookingQuery) (dto.Booking, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Booking{}, err
	}
	defer cleanup()

	b, err := unit.Bookings().ByID(execCtx, domainbooking.BookingID(query.BookingID))
	if err != nil {
		return dto.Booking{}, err
	}
	actor := domainuser.ID(query.ActorID)
	if actor != b.GuestID {
		listing, err := unit.Listings().ByID(execCtx, b.ListingID)
		if err != nil {
			return dto.Booking{}, err
		}
		if actor != listing.Owner {
			return dto.Booking{}, domainbooking.ErrNotParticipant
		}
	}
	return dto.MapBooking(b), nil
}

func (h *GuestBookingsHandler) Register(bus *queries.InMemoryBus) {
	queries.RegisterHandler(bus, listGuestBookingsKey, queries.HandlerFunc[ListGuestBookingsQuery, dto.BookingCollection](h.HandleList))
	queries.RegisterHandler(bus, getBookingKey, queries.HandlerFunc[GetBookingQuery, dto.Booking](h.HandleGet))
}
