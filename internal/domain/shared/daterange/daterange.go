package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: check-out must be after check-in")
)

// Day truncates a timestamp to its calendar day at UTC midnight. Booking
// boundaries carry day granularity only.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange represents a half-open interval [CheckIn, CheckOut) of calendar
// days.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share at least one night.
// Adjacent stays (one ending the day the other begins) do not overlap.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// Days returns every calendar day from check-in through check-out inclusive.
// The check-out day is included because the unit is still occupied until the
// guest leaves that morning.
func (dr DateRange) Days() []time.Time {
	if dr.Validate() != nil {
		return nil
	}
	days := make([]time.Time, 0, dr.Nights()+1)
	for d := dr.CheckIn; !d.After(dr.CheckOut); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
