package listings

import "testing"

func TestNormalized(t *testing.T) {
	params := SearchParams{
		Terms:   []string{"  Loft ", "", "RIVER"},
		Address: " Quay Street ",
		Offset:  -5,
	}
	got := params.Normalized()

	if len(got.Terms) != 2 || got.Terms[0] != "loft" || got.Terms[1] != "river" {
		t.Errorf("terms = %v", got.Terms)
	}
	if got.Address != "quay street" {
		t.Errorf("address = %q", got.Address)
	}
	if got.Limit != defaultSearchLimit {
		t.Errorf("limit = %d, want %d", got.Limit, defaultSearchLimit)
	}
	if got.Offset != 0 {
		t.Errorf("offset = %d, want 0", got.Offset)
	}

	if got := (SearchParams{Limit: 1000}).Normalized(); got.Limit != maxSearchLimit {
		t.Errorf("limit = %d, want clamped to %d", got.Limit, maxSearchLimit)
	}
}

func TestMatches(t *testing.T) {
	listing := &Listing{
		ID:           "l-1",
		Title:        "Sunny loft",
		Description:  "Bright loft near the river",
		Address:      "12 Quay Street",
		PropertyType: PropertyApartment,
		Rooms:        2,
		PriceCents:   8500,
		Active:       true,
	}

	cases := []struct {
		name   string
		params SearchParams
		want   bool
	}{
		{"empty filter", SearchParams{}, true},
		{"active only on active", SearchParams{OnlyActive: true}, true},
		{"term in title", SearchParams{Terms: []string{"loft"}}, true},
		{"term in description", SearchParams{Terms: []string{"river"}}, true},
		{"any term suffices", SearchParams{Terms: []string{"castle", "river"}}, true},
		{"no term matches", SearchParams{Terms: []string{"castle"}}, false},
		{"address substring", SearchParams{Address: "quay"}, true},
		{"address mismatch", SearchParams{Address: "harbor"}, false},
		{"price in range", SearchParams{PriceMinCents: 8000, PriceMaxCents: 9000}, true},
		{"price below min", SearchParams{PriceMinCents: 9000}, false},
		{"price above max", SearchParams{PriceMaxCents: 8000}, false},
		{"rooms in range", SearchParams{RoomsMin: 2, RoomsMax: 2}, true},
		{"too few rooms", SearchParams{RoomsMin: 3}, false},
		{"property type allowed", SearchParams{PropertyTypes: []PropertyType{PropertyHouse, PropertyApartment}}, true},
		{"property type excluded", SearchParams{PropertyTypes: []PropertyType{PropertyHouse}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.params.Normalized().Matches(listing); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchesInactive(t *testing.T) {
	inactive := &Listing{ID: "l-2", Title: "Old flat", Active: false}
	if (SearchParams{OnlyActive: true}).Matches(inactive) {
		t.Error("inactive listing matched an active-only search")
	}
	if !(SearchParams{}).Matches(inactive) {
		t.Error("inactive listing should match when OnlyActive is unset")
	}
}
