package booking

import (
	"errors"
	"testing"
	"time"

	"stayhub/internal/domain/shared/daterange"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pendingBooking(t *testing.T) *Booking {
	t.Helper()
	dr, err := daterange.New(day(2025, time.June, 10), day(2025, time.June, 15))
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	b, err := New(CreateParams{
		ID:         "b-1",
		ListingID:  "l-1",
		GuestID:    "guest",
		Range:      dr,
		PriceCents: 12000,
		CreatedAt:  day(2025, time.June, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestNewStartsPendingAndRecordsEvent(t *testing.T) {
	b := pendingBooking(t)
	if b.Status != StatusPending {
		t.Errorf("status = %s, want %s", b.Status, StatusPending)
	}
	events := b.PendingEvents()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].EventName() != "booking.requested" {
		t.Errorf("event name = %s", events[0].EventName())
	}
}

func TestNewValidation(t *testing.T) {
	dr, _ := daterange.New(day(2025, time.June, 10), day(2025, time.June, 15))
	cases := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{"missing guest", CreateParams{ID: "b", ListingID: "l", Range: dr}, ErrGuestRequired},
		{"negative price", CreateParams{ID: "b", ListingID: "l", GuestID: "g", Range: dr, PriceCents: -1}, ErrNegativePrice},
		{"invalid range", CreateParams{ID: "b", ListingID: "l", GuestID: "g"}, daterange.ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.params); !errors.Is(err, tc.wantErr) {
				t.Errorf("New = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	now := day(2025, time.June, 2)

	t.Run("owner confirms pending", func(t *testing.T) {
		b := pendingBooking(t)
		if err := b.Confirm("owner", "owner", now); err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if b.Status != StatusConfirmed {
			t.Errorf("status = %s", b.Status)
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		b := pendingBooking(t)
		if err := b.Confirm("someone", "owner", now); !errors.Is(err, ErrNotOwner) {
			t.Errorf("Confirm = %v, want ErrNotOwner", err)
		}
		if b.Status != StatusPending {
			t.Errorf("status changed to %s", b.Status)
		}
	})

	t.Run("already confirmed", func(t *testing.T) {
		b := pendingBooking(t)
		b.Status = StatusConfirmed
		if err := b.Confirm("owner", "owner", now); !errors.Is(err, ErrInvalidState) {
			t.Errorf("Confirm = %v, want ErrInvalidState", err)
		}
	})
}

func TestReject(t *testing.T) {
	now := day(2025, time.June, 2)

	b := pendingBooking(t)
	if err := b.Reject("guest", "owner", now); !errors.Is(err, ErrNotOwner) {
		t.Errorf("guest reject = %v, want ErrNotOwner", err)
	}
	if err := b.Reject("owner", "owner", now); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if b.Status != StatusRejected {
		t.Errorf("status = %s", b.Status)
	}
	if err := b.Reject("owner", "owner", now); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second reject = %v, want ErrInvalidState", err)
	}
}

func TestCancel(t *testing.T) {
	t.Run("guest cancels a day before check-in", func(t *testing.T) {
		b := pendingBooking(t)
		b.Status = StatusConfirmed
		if err := b.Cancel("guest", day(2025, time.June, 9)); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if b.Status != StatusCancelled {
			t.Errorf("status = %s", b.Status)
		}
	})

	t.Run("too late on check-in day", func(t *testing.T) {
		b := pendingBooking(t)
		b.Status = StatusConfirmed
		err := b.Cancel("guest", time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC))
		if !errors.Is(err, ErrTooLateToCancel) {
			t.Errorf("Cancel = %v, want ErrTooLateToCancel", err)
		}
	})

	t.Run("only the guest may cancel", func(t *testing.T) {
		b := pendingBooking(t)
		b.Status = StatusConfirmed
		if err := b.Cancel("owner", day(2025, time.June, 5)); !errors.Is(err, ErrNotGuest) {
			t.Errorf("Cancel = %v, want ErrNotGuest", err)
		}
	})

	t.Run("pending cannot be cancelled", func(t *testing.T) {
		b := pendingBooking(t)
		if err := b.Cancel("guest", day(2025, time.June, 5)); !errors.Is(err, ErrInvalidState) {
			t.Errorf("Cancel = %v, want ErrInvalidState", err)
		}
	})
}

func TestIsCancelable(t *testing.T) {
	b := pendingBooking(t)
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"week before", day(2025, time.June, 3), true},
		{"day before", day(2025, time.June, 9), true},
		{"late evening day before", time.Date(2025, time.June, 9, 23, 59, 0, 0, time.UTC), true},
		{"check-in day", day(2025, time.June, 10), false},
		{"after check-in", day(2025, time.June, 12), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.IsCancelable(tc.now); got != tc.want {
				t.Errorf("IsCancelable(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}
