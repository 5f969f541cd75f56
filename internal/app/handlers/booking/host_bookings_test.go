package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	domainbooking "stayhub/internal/domain/booking"
	"stayhub/internal/infra/storage/memory"
)

func TestListHostBookings(t *testing.T) {
	factory := memory.NewFactory()
	mustSeedListing(t, factory, "l-1", "host", 9000)
	mustSeedListing(t, factory, "l-2", "host", 7000)
	mustSeedListing(t, factory, "l-other", "someone-else", 5000)
	mustSeedBooking(t, factory, "b-1", "l-1", "guest-a", domainbooking.StatusPending, day(2025, time.June, 10), day(2025, time.June, 12))
	mustSeedBooking(t, factory, "b-2", "l-2", "guest-b", domainbooking.StatusConfirmed, day(2025, time.June, 20), day(2025, time.June, 25))
	mustSeedBooking(t, factory, "b-3", "l-other", "guest-c", domainbooking.StatusPending, day(2025, time.July, 1), day(2025, time.July, 3))
	handler := &HostBookingsHandler{UoWFactory: factory}

	result, err := handler.Handle(context.Background(), ListHostBookingsQuery{OwnerID: "host"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d bookings, want 2", len(result.Items))
	}
	for _, item := range result.Items {
		if item.ID == "b-3" {
			t.Error("booking on another host's listing returned")
		}
	}
}

func TestListHostBookingsNoListings(t *testing.T) {
	factory := memory.NewFactory()
	handler := &HostBookingsHandler{UoWFactory: factory}

	result, err := handler.Handle(context.Background(), ListHostBookingsQuery{OwnerID: "host"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Items == nil || len(result.Items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", result.Items)
	}
}

func TestGetBookingParticipantsOnly(t *testing.T) {
	factory := memory.NewFactory()
	mustSeedListing(t, factory, "l-1", "host", 9000)
	mustSeedBooking(t, factory, "b-1", "l-1", "guest", domainbooking.StatusPending, day(2025, time.June, 10), day(2025, time.June, 12))
	handler := &GuestBookingsHandler{UoWFactory: factory}

	for _, actor := range []string{"guest", "host"} {
		if _, err := handler.HandleGet(context.Background(), GetBookingQuery{BookingID: "b-1", ActorID: actor}); err != nil {
			t.Errorf("actor %s: HandleGet = %v", actor, err)
		}
	}
	if _, err := handler.HandleGet(context.Background(), GetBookingQuery{BookingID: "b-1", ActorID: "stranger"}); !errors.Is(err, domainbooking.ErrNotParticipant) {
		t.Errorf("stranger HandleGet = %v, want ErrNotParticipant", err)
	}
}
