package listings

import (
	"context"
	"errors"
	"testing"
	"time"

	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustSeedListing(t *testing.T, factory memory.Factory, id, owner, title string, priceCents int64) *domainlistings.Listing {
	t.Helper()
	listing, err := domainlistings.New(domainlistings.CreateParams{
		ID:         domainlistings.ListingID(id),
		Owner:      domainuser.ID(owner),
		Title:      title,
		Address:    "8 Mill Road",
		Rooms:      2,
		PriceCents: priceCents,
		Now:        day(2025, time.April, 1),
	})
	if err != nil {
		t.Fatalf("listings.New: %v", err)
	}
	if err := factory.ListingsRepo.Save(context.Background(), listing); err != nil {
		t.Fatalf("save listing: %v", err)
	}
	return listing
}

func TestGetListingCountsDistinctViewers(t *testing.T) {
	factory := memory.NewFactory()
	mustSeedListing(t, factory, "l-1", "owner", "Mill flat", 7000)
	handler := &GetListingHandler{UoWFactory: factory}

	get := func(viewer string) int {
		t.Helper()
		result, err := handler.Handle(context.Background(), GetListingQuery{ListingID: "l-1", ViewerID: viewer, Now: day(2025, time.June, 1)})
		if err != nil {
			t.Fatalf("Handle(viewer=%q): %v", viewer, err)
		}
		return result.NumberOfViews
	}

	if views := get("visitor-1"); views != 1 {
		t.Errorf("views after first visitor = %d, want 1", views)
	}
	if views := get("visitor-1"); views != 1 {
		t.Errorf("repeat view counted twice: %d", views)
	}
	if views := get("visitor-2"); views != 2 {
		t.Errorf("views after second visitor = %d, want 2", views)
	}
}

func TestGetListingSkipsOwnerAndAnonymous(t *testing.T) {
	factory := memory.NewFactory()
	mustSeedListing(t, factory, "l-1", "owner", "Mill flat", 7000)
	handler := &GetListingHandler{UoWFactory: factory}

	for _, viewer := range []string{"", "owner"} {
		result, err := handler.Handle(context.Background(), GetListingQuery{ListingID: "l-1", ViewerID: viewer, Now: day(2025, time.June, 1)})
		if err != nil {
			t.Fatalf("Handle(viewer=%q): %v", viewer, err)
		}
		if result.NumberOfViews != 0 {
			t.Errorf("viewer %q counted: views = %d", viewer, result.NumberOfViews)
		}
	}
}

func TestGetListingHidesInactiveFromOthers(t *testing.T) {
	factory := memory.NewFactory()
	listing := mustSeedListing(t, factory, "l-1", "owner", "Mill flat", 7000)
	listing.Deactivate(day(2025, time.May, 1))
	if err := factory.ListingsRepo.Save(context.Background(), listing); err != nil {
		t.Fatalf("save listing: %v", err)
	}
	handler := &GetListingHandler{UoWFactory: factory}

	if _, err := handler.Handle(context.Background(), GetListingQuery{ListingID: "l-1", ViewerID: "visitor", Now: day(2025, time.June, 1)}); !errors.Is(err, domainlistings.ErrNotOwner) {
		t.Errorf("visitor Handle = %v, want ErrNotOwner", err)
	}
	result, err := handler.Handle(context.Background(), GetListingQuery{ListingID: "l-1", ViewerID: "owner", Now: day(2025, time.June, 1)})
	if err != nil {
		t.Fatalf("owner Handle: %v", err)
	}
	if result.IsActive {
		t.Error("listing should be inactive")
	}
}
