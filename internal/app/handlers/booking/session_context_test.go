package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/infra/storage/memory"
)

// The Mongo unit binds repository calls to a session via InjectContext. These
// fakes stamp the context on injection and fail any repository call that
// arrives without the stamp, so a handler that drops the injected context
// cannot pass.

type sessionKey struct{}

var errSessionNotBound = errors.New("repository call outside the unit's session context")

func requireSession(ctx context.Context) error {
	if ctx.Value(sessionKey{}) == nil {
		return errSessionNotBound
	}
	return nil
}

type sessionFactory struct {
	inner memory.Factory
}

func (f sessionFactory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	unit, err := f.inner.Begin(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &sessionUnit{UnitOfWork: unit}, nil
}

type sessionUnit struct {
	uow.UnitOfWork
}

func (u *sessionUnit) InjectContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey{}, struct{}{})
}

func (u *sessionUnit) Listings() domainlistings.Repository {
	return sessionListings{u.UnitOfWork.Listings()}
}

func (u *sessionUnit) Bookings() domainbooking.Repository {
	return sessionBookings{u.UnitOfWork.Bookings()}
}

type sessionListings struct {
	domainlistings.Repository
}

func (r sessionListings) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	if err := requireSession(ctx); err != nil {
		return nil, err
	}
	return r.Repository.ByID(ctx, id)
}

type sessionBookings struct {
	domainbooking.Repository
}

func (r sessionBookings) ListByListingAndStatus(ctx context.Context, listingID domainlistings.ListingID, status domainbooking.Status) ([]*domainbooking.Booking, error) {
	if err := requireSession(ctx); err != nil {
		return nil, err
	}
	return r.Repository.ListByListingAndStatus(ctx, listingID, status)
}

func (r sessionBookings) Save(ctx context.Context, b *domainbooking.Booking) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	return r.Repository.Save(ctx, b)
}

func (r sessionBookings) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	if err := requireSession(ctx); err != nil {
		return nil, err
	}
	return r.Repository.ByID(ctx, id)
}

func TestRequestBookingRunsRepositoriesInSessionContext(t *testing.T) {
	inner := memory.NewFactory()
	mustSeedListing(t, inner, "l-1", "owner", 9500)
	handler := &RequestBookingHandler{UoWFactory: sessionFactory{inner: inner}, Publisher: memory.NewPublisher()}

	_, err := handler.Handle(context.Background(), RequestBookingCommand{
		CommandID: "b-1",
		ListingID: "l-1",
		GuestID:   "guest",
		CheckIn:   day(2025, time.June, 10),
		CheckOut:  day(2025, time.June, 15),
		Now:       day(2025, time.June, 1),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if _, err := inner.BookingsRepo.ByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("booking not persisted through session-bound repositories: %v", err)
	}
}

func TestTransitionBookingRunsRepositoriesInSessionContext(t *testing.T) {
	inner := memory.NewFactory()
	mustSeedListing(t, inner, "l-1", "owner", 9500)
	mustSeedBooking(t, inner, "b-1", "l-1", "guest", domainbooking.StatusPending, day(2025, time.June, 10), day(2025, time.June, 15))
	handler := &TransitionBookingHandler{UoWFactory: sessionFactory{inner: inner}, Publisher: memory.NewPublisher()}

	_, err := handler.HandleConfirm(context.Background(), ConfirmBookingCommand{
		BookingID: "b-1",
		ActorID:   "owner",
		Now:       day(2025, time.June, 1),
	})
	if err != nil {
		t.Fatalf("HandleConfirm: %v", err)
	}
	stored, err := inner.BookingsRepo.ByID(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Status != domainbooking.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", stored.Status)
	}
}
