package dto

import (
	"time"

	domainreviews "stayhub/internal/domain/reviews"
)

// Review represents a public review payload.
type Review struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewCollection struct {
	Items []Review `json:"items"`
	Total int      `json:"total"`
}

func MapReview(review *domainreviews.Review) Review {
	if review == nil {
		return Review{}
	}
	return Review{
		ID:        string(review.ID),
		ListingID: string(review.ListingID),
		AuthorID:  string(review.AuthorID),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func MapReviews(items []*domainreviews.Review) []Review {
	out := make([]Review, 0, len(items))
	for _, item := range items {
		out = append(out, MapReview(item))
	}
	return out
}
