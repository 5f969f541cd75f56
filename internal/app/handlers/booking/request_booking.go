package booking

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	"stayhub/internal/app/publish"
	"stayhub/internal/app/uow"
	domainavailability "stayhub/internal/domain/availability"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainrange "stayhub/internal/domain/shared/daterange"
	domainuser "stayhub/internal/domain/user"
)

const requestBookingKey = "booking.request"

// RequestBookingCommand creates a pending booking over a date range.
type RequestBookingCommand struct {
	CommandID string
	ListingID string
	GuestID   string
	CheckIn   time.Time
	CheckOut  time.Time
	Now       time.Time
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

// RequestBookingHandler validates availability and persists the booking with
// the listing price snapshotted. The overlap check and the insert run in one
// unit of work.
type RequestBookingHandler struct {
	UoWFactory uow.Factory
	Publisher  publish.Publisher
	Logger     *slog.Logger
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (dto.Booking, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return dto.Booking{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return dto.Booking{}, err
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

	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return dto.Booking{}, err
	}

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return dto.Booking{}, err
	}

	confirmed, err := unit.Bookings().ListByListingAndStatus(ctx, listing.ID, domainbooking.StatusConfirmed)
	if err != nil {
		return dto.Booking{}, err
	}
	reserved := domainavailability.ReservedRanges(confirmed)
	if err := domainavailability.ValidateRequest(listing, dr, now, reserved); err != nil {
		return dto.Booking{}, err
	}

	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:         domainbooking.BookingID(cmd.CommandID),
		ListingID:  listing.ID,
		GuestID:    domainuser.ID(cmd.GuestID),
		Range:      dr,
		PriceCents: listing.PriceCents,
		CreatedAt:  now,
	})
	if err != nil {
		return dto.Booking{}, err
	}
	if err := unit.Bookings().Save(ctx, b); err != nil {
		return dto.Booking{}, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return dto.Booking{}, err
		}
		committed = true
	}

	if err := publish.Drain(ctx, h.Publisher, b); err != nil && h.Logger != nil {
		h.Logger.Warn("booking events not published", "booking_id", b.ID, "error", err)
	}
	if h.Logger != nil {
		h.Logger.Info("booking requested", "booking_id", b.ID, "listing_id", b.ListingID, "guest_id", b.GuestID, "nights", dr.Nights())
	}

	return dto.MapBooking(b), nil
}

var _ commands.Handler[RequestBookingCommand, dto.Booking] = (*RequestBookingHandler)(nil)
