package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainreviews "stayhub/internal/domain/reviews"
	domainrange "stayhub/internal/domain/shared/daterange"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustSeedListing(t *testing.T, factory memory.Factory, id, owner string) *domainlistings.Listing {
	t.Helper()
	listing, err := domainlistings.New(domainlistings.CreateParams{
		ID:         domainlistings.ListingID(id),
		Owner:      domainuser.ID(owner),
		Title:      "Garden cottage",
		Address:    "5 Green Lane",
		Rooms:      3,
		PriceCents: 12000,
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

func mustSeedConfirmedStay(t *testing.T, factory memory.Factory, id, listingID, guest string) {
	t.Helper()
	dr, err := domainrange.New(day(2025, time.May, 10), day(2025, time.May, 15))
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:         domainbooking.BookingID(id),
		ListingID:  domainlistings.ListingID(listingID),
		GuestID:    domainuser.ID(guest),
		Range:      dr,
		PriceCents: 12000,
		CreatedAt:  day(2025, time.April, 2),
	})
	if err != nil {
		t.Fatalf("booking.New: %v", err)
	}
	b.Status = domainbooking.StatusConfirmed
	if err := factory.BookingsRepo.Save(context.Background(), b); err != nil {
		t.Fatalf("save booking: %v", err)
	}
}

func submit(t *testing.T, handler *SubmitReviewHandler, listingID, author string, rating int) error {
	t.Helper()
	_, err := handler.Handle(context.Background(), SubmitReviewCommand{
		ListingID: listingID,
		AuthorID:  author,
		Rating:    rating,
		Comment:   "nice place",
		Now:       day(2025, time.June, 1),
	})
	return err
}

func TestSubmitReviewRecomputesRating(t *testing.T) {
	factory := memory.NewFactory()
	mustSeedListing(t, factory, "l-1", "owner")
	for _, guest := range []string{"g-1", "g-2", "g-3"} {
		mustSeedConfirmedStay(t, factory, "b-"+guest, "l-1", guest)
	}
	handler := &SubmitReviewHandler{UoWFactory: factory, Publisher: memory.NewPublisher()}

	ratings := map[string]int{"g-1": 4, "g-2": 5, "g-3": 3}
	for guest, rating := range ratings {
		if err := submit(t, handler, "l-1", guest, rating); err != nil {
			t.Fatalf("submit %s: %v", guest, err)
		}
	}

	listing, err := factory.ListingsRepo.ByID(context.Background(), "l-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if listing.Rating != 4.0 {
		t.Errorf("rating = %v, want 4.0", listing.Rating)
	}
	if listing.NumberOfReviews != 3 {
		t.Errorf("review count = %d, want 3", listing.NumberOfReviews)
	}
}

func TestSubmitReviewEligibility(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(t *testing.T, factory memory.Factory, handler *SubmitReviewHandler)
		author  string
		rating  int
		wantErr error
	}{
		{
			name:    "no confirmed stay",
			setup:   func(t *testing.T, factory memory.Factory, handler *SubmitReviewHandler) {},
			author:  "guest",
			rating:  4,
			wantErr: domainreviews.ErrNoConfirmedStay,
		},
		{
			name: "owner reviewing own listing",
			setup: func(t *testing.T, factory memory.Factory, handler *SubmitReviewHandler) {
				mustSeedConfirmedStay(t, factory, "b-1", "l-1", "owner")
			},
			author:  "owner",
			rating:  4,
			wantErr: domainreviews.ErrOwnListing,
		},
		{
			name: "duplicate review",
			setup: func(t *testing.T, factory memory.Factory, handler *SubmitReviewHandler) {
				mustSeedConfirmedStay(t, factory, "b-1", "l-1", "guest")
				if err := submit(t, handler, "l-1", "guest", 5); err != nil {
					t.Fatalf("first submit: %v", err)
				}
			},
			author:  "guest",
			rating:  4,
			wantErr: domainreviews.ErrAlreadyReviewed,
		},
		{
			name: "rating out of bounds",
			setup: func(t *testing.T, factory memory.Factory, handler *SubmitReviewHandler) {
				mustSeedConfirmedStay(t, factory, "b-1", "l-1", "guest")
			},
			author:  "guest",
			rating:  6,
			wantErr: domainreviews.ErrInvalidRating,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			factory := memory.NewFactory()
			mustSeedListing(t, factory, "l-1", "owner")
			handler := &SubmitReviewHandler{UoWFactory: factory, Publisher: memory.NewPublisher()}
			tc.setup(t, factory, handler)

			if err := submit(t, handler, "l-1", tc.author, tc.rating); !errors.Is(err, tc.wantErr) {
				t.Errorf("submit = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSubmitReviewInactiveListing(t *testing.T) {
	factory := memory.NewFactory()
	listing := mustSeedListing(t, factory, "l-1", "owner")
	mustSeedConfirmedStay(t, factory, "b-1", "l-1", "guest")
	listing.Deactivate(day(2025, time.May, 20))
	if err := factory.ListingsRepo.Save(context.Background(), listing); err != nil {
		t.Fatalf("save listing: %v", err)
	}
	handler := &SubmitReviewHandler{UoWFactory: factory, Publisher: memory.NewPublisher()}

	if err := submit(t, handler, "l-1", "guest", 4); !errors.Is(err, domainlistings.ErrInactive) {
		t.Errorf("submit = %v, want ErrInactive", err)
	}
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	factory := memory.NewFactory()
	mustSeedListing(t, factory, "l-1", "owner")
	mustSeedConfirmedStay(t, factory, "b-1", "l-1", "g-1")
	mustSeedConfirmedStay(t, factory, "b-2", "l-1", "g-2")
	submitHandler := &SubmitReviewHandler{UoWFactory: factory, Publisher: memory.NewPublisher()}
	if err := submit(t, submitHandler, "l-1", "g-1", 4); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := submit(t, submitHandler, "l-1", "g-2", 5); err != nil {
		t.Fatalf("submit: %v", err)
	}

	fiveStar, err := factory.ReviewsRepo.ByAuthorAndListing(context.Background(), "g-2", "l-1")
	if err != nil {
		t.Fatalf("ByAuthorAndListing: %v", err)
	}

	deleteHandler := &DeleteReviewHandler{UoWFactory: factory, Publisher: memory.NewPublisher()}
	if _, err := deleteHandler.Handle(context.Background(), DeleteReviewCommand{
		ReviewID: string(fiveStar.ID),
		ActorID:  "g-2",
		Now:      day(2025, time.June, 2),
	}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	listing, err := factory.ListingsRepo.ByID(context.Background(), "l-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if listing.Rating != 4.0 {
		t.Errorf("rating = %v, want 4.0", listing.Rating)
	}
	if listing.NumberOfReviews != 1 {
		t.Errorf("review count = %d, want 1", listing.NumberOfReviews)
	}
}

func TestDeleteReviewOnlyAuthor(t *testing.T) {
	factory := memory.NewFactory()
	mustSeedListing(t, factory, "l-1", "owner")
	mustSeedConfirmedStay(t, factory, "b-1", "l-1", "guest")
	submitHandler := &SubmitReviewHandler{UoWFactory: factory, Publisher: memory.NewPublisher()}
	if err := submit(t, submitHandler, "l-1", "guest", 4); err != nil {
		t.Fatalf("submit: %v", err)
	}
	review, err := factory.ReviewsRepo.ByAuthorAndListing(context.Background(), "guest", "l-1")
	if err != nil {
		t.Fatalf("ByAuthorAndListing: %v", err)
	}

	deleteHandler := &DeleteReviewHandler{UoWFactory: factory, Publisher: memory.NewPublisher()}
	if _, err := deleteHandler.Handle(context.Background(), DeleteReviewCommand{
		ReviewID: string(review.ID),
		ActorID:  "owner",
		Now:      day(2025, time.June, 2),
	}); !errors.Is(err, domainreviews.ErrNotAuthor) {
		t.Errorf("delete = %v, want ErrNotAuthor", err)
	}
}
