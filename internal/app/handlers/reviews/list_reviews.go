package reviews

import (
	"context"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const (
	listListingReviewsKey = "reviews.list_listing"
	listAuthorReviewsKey  = "reviews.list_author"
)

// ListListingReviewsQuery returns all reviews left on a listing.
type ListListingReviewsQuery struct {
	ListingID string
}

func (q ListListingReviewsQuery) Key() string { return listListingReviewsKey }

// ListAuthorReviewsQuery returns all reviews written by one user.
type ListAuthorReviewsQuery struct {
	AuthorID string
}

func (q ListAuthorReviewsQuery) Key() string { return listAuthorReviewsKey }

type ListReviewsHandler struct {
	UoWFactory uow.Factory
}

func (h *ListReviewsHandler) HandleByListing(ctx context.Context, query ListListingReviewsQuery) (dto.ReviewCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	defer cleanup()

	if _, err := unit.Listings().ByID(execCtx, domainlistings.ListingID(query.ListingID)); err != nil {
		return dto.ReviewCollection{}, err
	}
	items, err := unit.Reviews().ListByListing(execCtx, domainlistings.ListingID(query.ListingID))
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	mapped := dto.MapReviews(items)
	return dto.ReviewCollection{Items: mapped, Total: len(mapped)}, nil
}

func (h *ListReviewsHandler) HandleByAuthor(ctx context.Context, query ListAuthorReviewsQuery) (dto.ReviewCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	defer cleanup()

	items, err := unit.Reviews().ListByAuthor(execCtx, domainuser.ID(query.AuthorID))
	if err != nil {
		return dto.ReviewCollection{}, err
	}
	mapped := dto.MapReviews(items)
	return dto.ReviewCollection{Items: mapped, Total: len(mapped)}, nil
}

func (h *ListReviewsHandler) Register(bus *queries.InMemoryBus) {
	queries.RegisterHandler(bus, listListingReviewsKey, queries.HandlerFunc[ListListingReviewsQuery, dto.ReviewCollection](h.HandleByListing))
	queries.RegisterHandler(bus, listAuthorReviewsKey, queries.HandlerFunc[ListAuthorReviewsQuery, dto.ReviewCollection](h.HandleByAuthor))
}
