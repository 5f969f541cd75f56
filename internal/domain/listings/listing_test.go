package listings

import (
	"errors"
	"testing"
	"time"
)

func validParams() CreateParams {
	return CreateParams{
		ID:           "l-1",
		Owner:        "owner",
		Title:        "Sunny loft",
		Description:  "Bright loft near the river",
		Address:      "12 Quay Street",
		PropertyType: PropertyApartment,
		Rooms:        2,
		PriceCents:   8500,
		Now:          time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewListing(t *testing.T) {
	listing, err := New(validParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !listing.Active {
		t.Error("new listing should be active")
	}
	if listing.Rating != 0 || listing.NumberOfReviews != 0 || listing.NumberOfViews != 0 {
		t.Error("derived fields should start at zero")
	}
	if len(listing.PendingEvents()) != 1 {
		t.Errorf("got %d events, want 1", len(listing.PendingEvents()))
	}
}

func TestNewListingDefaultsPropertyType(t *testing.T) {
	params := validParams()
	params.PropertyType = ""
	listing, err := New(params)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if listing.PropertyType != PropertyApartment {
		t.Errorf("property type = %s, want %s", listing.PropertyType, PropertyApartment)
	}
}

func TestNewListingValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateParams)
		wantErr error
	}{
		{"missing id", func(p *CreateParams) { p.ID = " " }, ErrIDRequired},
		{"missing owner", func(p *CreateParams) { p.Owner = "" }, ErrOwnerRequired},
		{"missing title", func(p *CreateParams) { p.Title = "  " }, ErrTitleRequired},
		{"missing address", func(p *CreateParams) { p.Address = "" }, ErrAddressRequired},
		{"unknown property type", func(p *CreateParams) { p.PropertyType = "CASTLE" }, ErrPropertyType},
		{"zero rooms", func(p *CreateParams) { p.Rooms = 0 }, ErrRoomsCount},
		{"negative price", func(p *CreateParams) { p.PriceCents = -100 }, ErrNegativePrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)
			if _, err := New(params); !errors.Is(err, tc.wantErr) {
				t.Errorf("New = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdatePreservesDerivedFields(t *testing.T) {
	listing, err := New(validParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	listing.ApplyRating(4.5, 3, time.Now())
	listing.ApplyViewCount(17, time.Now())

	err = listing.Update(UpdateParams{
		Title:        "Renovated loft",
		Address:      "12 Quay Street",
		PropertyType: PropertyStudio,
		Rooms:        1,
		PriceCents:   9000,
		Active:       true,
		Now:          time.Now(),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if listing.Rating != 4.5 || listing.NumberOfReviews != 3 || listing.NumberOfViews != 17 {
		t.Error("update must not touch derived fields")
	}
	if listing.Title != "Renovated loft" || listing.PropertyType != PropertyStudio {
		t.Error("update did not apply")
	}
}

func TestDeactivateIsIdempotent(t *testing.T) {
	listing, err := New(validParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	listing.ClearEvents()
	listing.Deactivate(time.Now())
	listing.Deactivate(time.Now())
	if listing.Active {
		t.Error("listing still active")
	}
	if len(listing.PendingEvents()) != 1 {
		t.Errorf("got %d events, want 1", len(listing.PendingEvents()))
	}
}
