package memory

import (
	"context"
	"errors"

	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainreviews "stayhub/internal/domain/reviews"
	domainuser "stayhub/internal/domain/user"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	ListingsRepo domainlistings.Repository
	BookingsRepo domainbooking.Repository
	ReviewsRepo  domainreviews.Repository
	UsersRepo    domainuser.Repository
	ViewsRepo    domainlistings.ViewHistoryRepository
	SearchesRepo domainlistings.SearchHistoryRepository
}

// NewFactory builds a factory over a fresh set of empty stores.
func NewFactory() Factory {
	return Factory{
		ListingsRepo: NewListingRepository(),
		BookingsRepo: NewBookingRepository(),
		ReviewsRepo:  NewReviewRepository(),
		UsersRepo:    NewUserRepository(),
		ViewsRepo:    NewViewHistoryRepository(),
		SearchesRepo: NewSearchHistoryRepository(),
	}
}

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.ListingsRepo == nil || f.BookingsRepo == nil || f.ReviewsRepo == nil || f.UsersRepo == nil || f.ViewsRepo == nil || f.SearchesRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		listings: f.ListingsRepo,
		bookings: f.BookingsRepo,
		reviews:  f.ReviewsRepo,
		users:    f.UsersRepo,
		views:    f.ViewsRepo,
		searches: f.SearchesRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	listings domainlistings.Repository
	bookings domainbooking.Repository
	reviews  domainreviews.Repository
	users    domainuser.Repository
	views    domainlistings.ViewHistoryRepository
	searches domainlistings.SearchHistoryRepository
}

func (u *Unit) Listings() domainlistings.Repository              { return u.listings }
func (u *Unit) Bookings() domainbooking.Repository               { return u.bookings }
func (u *Unit) Reviews() domainreviews.Repository                { return u.reviews }
func (u *Unit) Users() domainuser.Repository                     { return u.users }
func (u *Unit) Views() domainlistings.ViewHistoryRepository      { return u.views }
func (u *Unit) Searches() domainlistings.SearchHistoryRepository { return u.searches }

func (u *Unit) Commit(ctx context.Context) error   { return nil }
func (u *Unit) Rollback(ctx context.Context) error { return nil }
