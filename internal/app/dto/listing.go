package dto

import (
	"time"

	domainlistings "stayhub/internal/domain/listings"
)

// Listing is the public listing payload.
type Listing struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Address         string    `json:"address"`
	PropertyType    string    `json:"property_type"`
	Rooms           int       `json:"rooms"`
	PriceCents      int64     `json:"price_cents"`
	IsActive        bool      `json:"is_active"`
	Rating          float64   `json:"rating"`
	NumberOfReviews int       `json:"number_of_reviews"`
	NumberOfViews   int       `json:"number_of_views"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ListingCollection struct {
	Items []Listing `json:"items"`
	Total int       `json:"total"`
}

func MapListing(listing *domainlistings.Listing) Listing {
	if listing == nil {
		return Listing{}
	}
	return Listing{
		ID:              string(listing.ID),
		OwnerID:         string(listing.Owner),
		Title:           listing.Title,
		Description:     listing.Description,
		Address:         listing.Address,
		PropertyType:    string(listing.PropertyType),
		Rooms:           listing.Rooms,
		PriceCents:      listing.PriceCents,
		IsActive:        listing.Active,
		Rating:          listing.Rating,
		NumberOfReviews: listing.NumberOfReviews,
		NumberOfViews:   listing.NumberOfViews,
		CreatedAt:       listing.CreatedAt,
		UpdatedAt:       listing.UpdatedAt,
	}
}

func MapListings(items []*domainlistings.Listing) []Listing {
	out := make([]Listing, 0, len(items))
	for _, item := range items {
		out = append(out, MapListing(item))
	}
	return out
}
