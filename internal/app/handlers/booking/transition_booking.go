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
	domainrange "stayhub/internal/domain/shared/daterange"
	domainuser "stayhub/internal/domain/user"
)

const (
	confirmBookingKey = "booking.confirm"
	rejectBookingKey  = "booking.reject"
	cancelBookingKey  = "booking.cancel"
)

// ConfirmBookingCommand moves a pending booking to CONFIRMED on behalf of the
// listing owner.
type ConfirmBookingCommand struct {
	BookingID string
	ActorID   string
	Now       time.Time
}

func (c ConfirmBookingCommand) Key() string { return confirmBookingKey }

type RejectBookingCommand struct {
	BookingID string
	ActorID   string
	Now       time.Time
}

func (c RejectBookingCommand) Key() string { return rejectBookingKey }

type CancelBookingCommand struct {
	BookingID string
	ActorID   string
	Now       time.Time
}

func (c CancelBookingCommand) Key() string { return cancelBookingKey }

// TransitionBookingHandler applies booking status transitions. Every
// transition re-reads the booking inside the unit of work so two actors racing
// on the same booking cannot both win, and confirmation re-checks the range
// against other confirmed bookings to keep the no-overlap invariant.
type TransitionBookingHandler struct {
	UoWFactory uow.Factory
	Publisher  publish.Publisher
	Logger     *slog.Logger
}

func (h *TransitionBookingHandler) HandleConfirm(ctx context.Context, cmd ConfirmBookingCommand) (dto.Booking, error) {
	return h.transition(ctx, cmd.BookingID, cmd.ActorID, cmd.Now, "confirmed", func(ctx context.Context, unit uow.UnitOfWork, b *domainbooking.Booking, actor domainuser.ID, now time.Time) error {
		listing, err := unit.Listings().ByID(ctx, b.ListingID)
		if err != nil {
			return err
		}
		confirmed, err := unit.Bookings().ListByListingAndStatus(ctx, b.ListingID, domainbooking.StatusConfirmed)
		if err != nil {
			return err
		}
		reserved := make([]domainrange.DateRange, 0, len(confirmed))
		for _, other := range confirmed {
			if other.ID == b.ID {
				continue
			}
			reserved = append(reserved, other.Range)
		}
		if domainavailability.Overlaps(reserved, b.Range) {
			return domainavailability.ErrDatesUnavailable
		}
		return b.Confirm(actor, listing.Owner, now)
	})
}

func (h *TransitionBookingHandler) HandleReject(ctx context.Context, cmd RejectBookingCommand) (dto.Booking, error) {
	return h.transition(ctx, cmd.BookingID, cmd.ActorID, cmd.Now, "rejected", func(ctx context.Context, unit uow.UnitOfWork, b *domainbooking.Booking, actor domainuser.ID, now time.Time) error {
		listing, err := unit.Listings().ByID(ctx, b.ListingID)
		if err != nil {
			return err
		}
		return b.Reject(actor, listing.Owner, now)
	})
}

func (h *TransitionBookingHandler) HandleCancel(ctx context.Context, cmd CancelBookingCommand) (dto.Booking, error) {
	return h.transition(ctx, cmd.BookingID, cmd.ActorID, cmd.Now, "cancelled", func(ctx context.Context, unit uow.UnitOfWork, b *domainbooking.Booking, actor domainuser.ID, now time.Time) error {
		return b.Cancel(actor, now)
	})
}

type transitionFunc func(ctx context.Context, unit uow.UnitOfWork, b *domainbooking.Booking, actor domainuser.ID, now time.Time) error

func (h *TransitionBookingHandler) transition(ctx context.Context, bookingID, actorID string, at time.Time, action string, apply transitionFunc) (dto.Booking, error) {
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

	now := at
	if now.IsZero() {
		now = time.Now().UTC()
	}

	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(bookingID))
	if err != nil {
		return dto.Booking{}, err
	}
	if err := apply(ctx, unit, b, domainuser.ID(actorID), now); err != nil {
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
		h.Logger.Info("booking "+action, "booking_id", b.ID, "listing_id", b.ListingID, "actor_id", actorID)
	}

	return dto.MapBooking(b), nil
}

// Register wires the three transition commands onto the bus.
func (h *TransitionBookingHandler) Register(bus *commands.InMemoryBus) {
	commands.RegisterHandler(bus, confirmBookingKey, commands.HandlerFunc[ConfirmBookingCommand, dto.Booking](h.HandleConfirm))
	commands.RegisterHandler(bus, rejectBookingKey, commands.HandlerFunc[RejectBookingCommand, dto.Booking](h.HandleReject))
	commands.RegisterHandler(bus, cancelBookingKey, commands.HandlerFunc[CancelBookingCommand, dto.Booking](h.HandleCancel))
}
