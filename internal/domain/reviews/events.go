package reviews

import (
	"time"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/user"
)

type ReviewSubmitted struct {
	ReviewID  ReviewID
	ListingID listings.ListingID
	AuthorID  user.ID
	Rating    int
	At        time.Time
}

func (e ReviewSubmitted) EventName() string     { return "reviews.submitted" }
func (e ReviewSubmitted) AggregateID() string   { return string(e.ReviewID) }
func (e ReviewSubmitted) OccurredAt() time.Time { return e.At }

type ReviewDeleted struct {
	ReviewID  ReviewID
	ListingID listings.ListingID
	At        time.Time
}

func (e ReviewDeleted) EventName() string     { return "reviews.deleted" }
func (e ReviewDeleted) AggregateID() string   { return string(e.ReviewID) }
func (e ReviewDeleted) OccurredAt() time.Time { return e.At }
