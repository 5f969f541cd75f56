package dto

import (
	"time"

	domainbooking "stayhub/internal/domain/booking"
	"stayhub/internal/domain/shared/daterange"
)

// Booking is the public booking payload. Dates serialize as RFC 3339
// timestamps at UTC midnight.
type Booking struct {
	ID         string    `json:"id"`
	ListingID  string    `json:"listing_id"`
	GuestID    string    `json:"guest_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	PriceCents int64     `json:"price_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BookingCollection struct {
	Items []Booking `json:"items"`
	Total int       `json:"total"`
}

// ReservedPeriod is one confirmed range on a listing calendar.
type ReservedPeriod struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

func MapBooking(booking *domainbooking.Booking) Booking {
	if booking == nil {
		return Booking{}
	}
	return Booking{
		ID:         string(booking.ID),
		ListingID:  string(booking.ListingID),
		GuestID:    string(booking.GuestID),
		CheckIn:    booking.Range.CheckIn,
		CheckOut:   booking.Range.CheckOut,
		PriceCents: booking.PriceCents,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
}

func MapBookings(items []*domainbooking.Booking) []Booking {
	out := make([]Booking, 0, len(items))
	for _, item := range items {
		out = append(out, MapBooking(item))
	}
	return out
}

func MapReservedPeriods(ranges []daterange.DateRange) []ReservedPeriod {
	out := make([]ReservedPeriod, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, ReservedPeriod{CheckIn: r.CheckIn, CheckOut: r.CheckOut})
	}
	return out
}
