package availability

import (
	"errors"
	"sort"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/daterange"
)

var (
	ErrCheckInPast      = errors.New("availability: check-in date is in the past")
	ErrDatesUnavailable = errors.New("availability: dates overlap an existing confirmed booking")
)

// ReservedRanges extracts the date ranges of confirmed bookings, sorted by
// check-in.
func ReservedRanges(bookings []*booking.Booking) []daterange.DateRange {
	ranges := make([]daterange.DateRange, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || b.Status != booking.StatusConfirmed {
			continue
		}
		ranges = append(ranges, b.Range)
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].CheckIn.Before(ranges[j].CheckIn)
	})
	return ranges
}

// ReservedDays returns the union of every calendar day from check-in through
// check-out inclusive over the given ranges, deduplicated and ascending.
func ReservedDays(ranges []daterange.DateRange) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, r := range ranges {
		for _, day := range r.Days() {
			seen[day] = struct{}{}
		}
	}
	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Overlaps reports whether the candidate range shares at least one night with
// any reserved range. Half-open semantics: a stay ending the day another
// begins does not conflict.
func Overlaps(reserved []daterange.DateRange, candidate daterange.DateRange) bool {
	for _, r := range reserved {
		if r.Overlaps(candidate) {
			return true
		}
	}
	return false
}

// ValidateRequest runs every precondition for creating a booking: the listing
// must be active, check-in must not lie in the past, the range must be well
// formed, and it must not overlap a confirmed booking. The first violation is
// returned; callers persist nothing on error.
func ValidateRequest(listing *listings.Listing, dr daterange.DateRange, now time.Time, reserved []daterange.DateRange) error {
	if listing == nil || !listing.Active {
		return listings.ErrInactive
	}
	if err := dr.Validate(); err != nil {
		return err
	}
	if dr.CheckIn.Before(daterange.Day(now)) {
		return ErrCheckInPast
	}
	if Overlaps(reserved, dr) {
		return ErrDatesUnavailable
	}
	return nil
}
