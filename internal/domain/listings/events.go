package listings

import (
	"time"

	"stayhub/internal/domain/user"
)

type ListingCreatedEvent struct {
	ListingID ListingID
	Owner     user.ID
	At        time.Time
}

func (e ListingCreatedEvent) EventName() string     { return "listings.created" }
func (e ListingCreatedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingCreatedEvent) OccurredAt() time.Time { return e.At }

type ListingUpdatedEvent struct {
	ListingID ListingID
	At        time.Time
}

func (e ListingUpdatedEvent) EventName() string     { return "listings.updated" }
func (e ListingUpdatedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingUpdatedEvent) OccurredAt() time.Time { return e.At }

type ListingDeactivatedEvent struct {
	ListingID ListingID
	At        time.Time
}

func (e ListingDeactivatedEvent) EventName() string     { return "listings.deactivated" }
func (e ListingDeactivatedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingDeactivatedEvent) OccurredAt() time.Time { return e.At }
