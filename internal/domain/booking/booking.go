package booking

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/user"
)

var (
	ErrGuestRequired   = errors.New("booking: guest id required")
	ErrNegativePrice   = errors.New("booking: price must be non-negative")
	ErrNotOwner        = errors.New("booking: only the listing owner may do this")
	ErrNotGuest        = errors.New("booking: only the requesting guest may do this")
	ErrNotParticipant  = errors.New("booking: only the guest or the listing owner may view this")
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrTooLateToCancel = errors.New("booking: too late to cancel")
	ErrNotFound        = errors.New("booking: not found")
)

type BookingID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func StatusChoices() []listings.Choice {
	return []listings.Choice{
		{Value: string(StatusPending), Label: "Pending"},
		{Value: string(StatusConfirmed), Label: "Confirmed"},
		{Value: string(StatusRejected), Label: "Rejected"},
		{Value: string(StatusCancelled), Label: "Cancelled"},
	}
}

// Booking is a reservation request for a listing over a half-open date range.
// PriceCents is a snapshot of the listing price at creation time and never
// changes afterwards.
type Booking struct {
	ID         BookingID
	ListingID  listings.ListingID
	GuestID    user.ID
	Range      daterange.DateRange
	PriceCents int64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByGuest(ctx context.Context, guestID user.ID) ([]*Booking, error)
	ListByListings(ctx context.Context, listingIDs []listings.ListingID) ([]*Booking, error)
	// ListByListingAndStatus must observe the current transaction so that
	// overlap checks and the subsequent write form one atomic unit.
	ListByListingAndStatus(ctx context.Context, listingID listings.ListingID, status Status) ([]*Booking, error)
	HasByListingGuestAndStatus(ctx context.Context, listingID listings.ListingID, guestID user.ID, status Status) (bool, error)
}

type CreateParams struct {
	ID         BookingID
	ListingID  listings.ListingID
	GuestID    user.ID
	Range      daterange.DateRange
	PriceCents int64
	CreatedAt  time.Time
}

func New(params CreateParams) (*Booking, error) {
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if params.PriceCents < 0 {
		return nil, ErrNegativePrice
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:         params.ID,
		ListingID:  params.ListingID,
		GuestID:    params.GuestID,
		Range:      params.Range,
		PriceCents: params.PriceCents,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.Record(BookingRequested{BookingID: b.ID, ListingID: b.ListingID, GuestID: b.GuestID, Range: b.Range, PriceCents: b.PriceCents, At: now})
	return b, nil
}

// Confirm moves a pending booking to CONFIRMED. Only the owner of the booked
// listing may confirm.
func (b *Booking) Confirm(actor, owner user.ID, now time.Time) error {
	if actor != owner {
		return ErrNotOwner
	}
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, ListingID: b.ListingID, Range: b.Range, At: b.UpdatedAt})
	return nil
}

// Reject moves a pending booking to REJECTED. Only the owner of the booked
// listing may reject.
func (b *Booking) Reject(actor, owner user.ID, now time.Time) error {
	if actor != owner {
		return ErrNotOwner
	}
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	b.Status = StatusRejected
	b.UpdatedAt = now.UTC()
	b.Record(BookingRejected{BookingID: b.ID, At: b.UpdatedAt})
	return nil
}

// Cancel moves a confirmed booking to CANCELLED. Only the requesting guest may
// cancel, and only while the cancellation window is open.
func (b *Booking) Cancel(actor user.ID, now time.Time) error {
	if actor != b.GuestID {
		return ErrNotGuest
	}
	if b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	if !b.IsCancelable(now) {
		return ErrTooLateToCancel
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, ListingID: b.ListingID, Range: b.Range, At: b.UpdatedAt})
	return nil
}

// IsCancelable reports whether at least one whole day remains between today
// and check-in.
func (b *Booking) IsCancelable(now time.Time) bool {
	today := daterange.Day(now)
	daysToCheckIn := int(b.Range.CheckIn.Sub(today).Hours() / 24)
	return daysToCheckIn >= 1
}
