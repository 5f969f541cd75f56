package listings

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const searchListingsKey = "listings.search"

// SearchListingsQuery filters the public catalog. When SearcherID is set each
// search term is appended to that user's search history.
type SearchListingsQuery struct {
	SearcherID    string
	Terms         []string
	Address       string
	PropertyTypes []string
	PriceMinCents int64
	PriceMaxCents int64
	RoomsMin      int
	RoomsMax      int
	Sort          string
	Limit         int
	Offset        int
	Now           time.Time
}

func (q SearchListingsQuery) Key() string { return searchListingsKey }

type SearchListingsHandler struct {
	UoWFactory uow.Factory
	Logger     *slog.Logger
}

func (h *SearchListingsHandler) Handle(ctx context.Context, query SearchListingsQuery) (dto.ListingCollection, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return dto.ListingCollection{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return dto.ListingCollection{}, err
		}
		if injector, ok := unit.(interface {
			InjectContext(context.Context) context.Context
		}); ok {
			ctx = injector.InjectContext(ctx)
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	propertyTypes := make([]domainlistings.PropertyType, 0, len(query.PropertyTypes))
	for _, pt := range query.PropertyTypes {
		propertyTypes = append(propertyTypes, domainlistings.PropertyType(pt))
	}
	params := domainlistings.SearchParams{
		Terms:         append([]string(nil), query.Terms...),
		Address:       query.Address,
		PropertyTypes: propertyTypes,
		PriceMinCents: query.PriceMinCents,
		PriceMaxCents: query.PriceMaxCents,
		RoomsMin:      query.RoomsMin,
		RoomsMax:      query.RoomsMax,
		OnlyActive:    true,
		Sort:          domainlistings.SortOrder(query.Sort),
		Limit:         query.Limit,
		Offset:        query.Offset,
	}.Normalized()

	result, err := unit.Listings().Search(ctx, params)
	if err != nil {
		return dto.ListingCollection{}, err
	}

	if query.SearcherID != "" {
		for _, term := range params.Terms {
			if err := unit.Searches().Record(ctx, domainuser.ID(query.SearcherID), term, now); err != nil {
				return dto.ListingCollection{}, err
			}
		}
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return dto.ListingCollection{}, err
		}
		committed = true
	}

	return dto.ListingCollection{Items: dto.MapListings(result.Items), Total: result.Total}, nil
}

var _ queries.Handler[SearchListingsQuery, dto.ListingCollection] = (*SearchListingsHandler)(nil)
