package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/user"
)

var (
	ErrIDRequired      = errors.New("listings: id is required")
	ErrOwnerRequired   = errors.New("listings: owner is required")
	ErrTitleRequired   = errors.New("listings: title is required")
	ErrAddressRequired = errors.New("listings: address is required")
	ErrRoomsCount      = errors.New("listings: rooms must be at least 1")
	ErrNegativePrice   = errors.New("listings: price must be non-negative")
	ErrPropertyType    = errors.New("listings: unknown property type")
	ErrInactive        = errors.New("listings: listing is not active")
	ErrNotOwner        = errors.New("listings: only the owner may access this listing")
	ErrNotFound        = errors.New("listings: not found")
)

type ListingID string

type PropertyType string

const (
	PropertyApartment PropertyType = "APARTMENT"
	PropertyHouse     PropertyType = "HOUSE"
	PropertyStudio    PropertyType = "STUDIO"
)

// Choice pairs an enum value with a display label for choice endpoints.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func PropertyTypeChoices() []Choice {
	return []Choice{
		{Value: string(PropertyApartment), Label: "Apartment"},
		{Value: string(PropertyHouse), Label: "House"},
		{Value: string(PropertyStudio), Label: "Studio"},
	}
}

// Listing is a rentable property record. Rating, NumberOfReviews and
// NumberOfViews are derived: only the rating aggregator and the view counter
// write them.
type Listing struct {
	ID              ListingID
	Owner           user.ID
	Title           string
	Description     string
	Address         string
	PropertyType    PropertyType
	Rooms           int
	PriceCents      int64
	Active          bool
	Rating          float64
	NumberOfReviews int
	NumberOfViews   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, listing *Listing) error
	ListByOwner(ctx context.Context, owner user.ID) ([]*Listing, error)
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
}

type CreateParams struct {
	ID           ListingID
	Owner        user.ID
	Title        string
	Description  string
	Address      string
	PropertyType PropertyType
	Rooms        int
	PriceCents   int64
	Now          time.Time
}

func New(params CreateParams) (*Listing, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.Owner)) == "" {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(params.Address) == "" {
		return nil, ErrAddressRequired
	}
	propertyType := params.PropertyType
	if propertyType == "" {
		propertyType = PropertyApartment
	}
	if !validPropertyType(propertyType) {
		return nil, ErrPropertyType
	}
	if params.Rooms < 1 {
		return nil, ErrRoomsCount
	}
	if params.PriceCents < 0 {
		return nil, ErrNegativePrice
	}
	now := params.Now.UTC()
	listing := &Listing{
		ID:           params.ID,
		Owner:        params.Owner,
		Title:        strings.TrimSpace(params.Title),
		Description:  strings.TrimSpace(params.Description),
		Address:      strings.TrimSpace(params.Address),
		PropertyType: propertyType,
		Rooms:        params.Rooms,
		PriceCents:   params.PriceCents,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	listing.Record(ListingCreatedEvent{ListingID: listing.ID, Owner: listing.Owner, At: now})
	return listing, nil
}

type UpdateParams struct {
	Title        string
	Description  string
	Address      string
	PropertyType PropertyType
	Rooms        int
	PriceCents   int64
	Active       bool
	Now          time.Time
}

func (l *Listing) Update(params UpdateParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(params.Address) == "" {
		return ErrAddressRequired
	}
	if !validPropertyType(params.PropertyType) {
		return ErrPropertyType
	}
	if params.Rooms < 1 {
		return ErrRoomsCount
	}
	if params.PriceCents < 0 {
		return ErrNegativePrice
	}
	l.Title = strings.TrimSpace(params.Title)
	l.Description = strings.TrimSpace(params.Description)
	l.Address = strings.TrimSpace(params.Address)
	l.PropertyType = params.PropertyType
	l.Rooms = params.Rooms
	l.PriceCents = params.PriceCents
	l.Active = params.Active
	l.UpdatedAt = params.Now.UTC()
	l.Record(ListingUpdatedEvent{ListingID: l.ID, At: l.UpdatedAt})
	return nil
}

func (l *Listing) Deactivate(now time.Time) {
	if !l.Active {
		return
	}
	l.Active = false
	l.UpdatedAt = now.UTC()
	l.Record(ListingDeactivatedEvent{ListingID: l.ID, At: l.UpdatedAt})
}

// ApplyRating overwrites the derived rating fields. Called by the rating
// aggregator only.
func (l *Listing) ApplyRating(average float64, count int, now time.Time) {
	l.Rating = average
	l.NumberOfReviews = count
	l.UpdatedAt = now.UTC()
}

// ApplyViewCount overwrites the derived view counter. Called by the view
// recorder only.
func (l *Listing) ApplyViewCount(count int, now time.Time) {
	l.NumberOfViews = count
	l.UpdatedAt = now.UTC()
}

func validPropertyType(pt PropertyType) bool {
	switch pt {
	case PropertyApartment, PropertyHouse, PropertyStudio:
		return true
	}
	return false
}
