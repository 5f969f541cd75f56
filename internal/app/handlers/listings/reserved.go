package listings

import (
	"context"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainavailability "stayhub/internal/domain/availability"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainrange "stayhub/internal/domain/shared/daterange"
)

const (
	reservedPeriodsKey = "listings.reserved_periods"
	reservedDaysKey    = "listings.reserved_days"
)

// ReservedPeriodsQuery returns the confirmed booking ranges on a listing
// calendar, ordered by check-in.
type ReservedPeriodsQuery struct {
	ListingID string
}

func (q ReservedPeriodsQuery) Key() string { return reservedPeriodsKey }

// ReservedDaysQuery flattens the confirmed ranges into distinct days,
// check-out day included.
type ReservedDaysQuery struct {
	ListingID string
}

func (q ReservedDaysQuery) Key() string { return reservedDaysKey }

type ReservedCalendar struct {
	Periods []dto.ReservedPeriod `json:"periods"`
}

type ReservedDays struct {
	Days []string `json:"days"`
}

type ReservedHandler struct {
	UoWFactory uow.Factory
}

func (h *ReservedHandler) HandlePeriods(ctx context.Context, query ReservedPeriodsQuery) (ReservedCalendar, error) {
	ranges, err := h.confirmedRanges(ctx, query.ListingID)
	if err != nil {
		return ReservedCalendar{}, err
	}
	return ReservedCalendar{Periods: dto.MapReservedPeriods(ranges)}, nil
}

func (h *ReservedHandler) HandleDays(ctx context.Context, query ReservedDaysQuery) (ReservedDays, error) {
	ranges, err := h.confirmedRanges(ctx, query.ListingID)
	if err != nil {
		return ReservedDays{}, err
	}
	days := domainavailability.ReservedDays(ranges)
	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format("2006-01-02"))
	}
	return ReservedDays{Days: out}, nil
}

func (h *ReservedHandler) confirmedRanges(ctx context.Context, listingID string) ([]domainrange.DateRange, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if _, err := unit.Listings().ByID(execCtx, domainlistings.ListingID(listingID)); err != nil {
		return nil, err
	}
	confirmed, err := unit.Bookings().ListByListingAndStatus(execCtx, domainlistings.ListingID(listingID), domainbooking.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	return domainavailability.ReservedRanges(confirmed), nil
}

func (h *ReservedHandler) Register(bus *queries.InMemoryBus) {
	queries.RegisterHandler(bus, reservedPeriodsKey, queries.HandlerFunc[ReservedPeriodsQuery, ReservedCalendar](h.HandlePeriods))
	queries.RegisterHandler(bus, reservedDaysKey, queries.HandlerFunc[ReservedDaysQuery, ReservedDays](h.HandleDays))
}
