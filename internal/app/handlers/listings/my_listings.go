package listings

import (
	"context"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainuser "stayhub/internal/domain/user"
)

const listOwnerListingsKey = "listings.list_owner"

// ListOwnerListingsQuery returns the caller's own listings, inactive ones
// included.
type ListOwnerListingsQuery struct {
	OwnerID string
}

func (q ListOwnerListingsQuery) Key() string { return listOwnerListingsKey }

type OwnerListingsHandler struct {
	UoWFactory uow.Factory
}

func (h *OwnerListingsHandler) Handle(ctx context.Context, query ListOwnerListingsQuery) (dto.ListingCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ListingCollection{}, err
	}
	defer cleanup()

	items, err := unit.Listings().ListByOwner(execCtx, domainuser.ID(query.OwnerID))
	if err != nil {
		return dto.ListingCollection{}, err
	}
	mapped := dto.MapListings(items)
	return dto.ListingCollection{Items: mapped, Total: len(mapped)}, nil
}

var _ queries.Handler[ListOwnerListingsQuery, dto.ListingCollection] = (*OwnerListingsHandler)(nil)
