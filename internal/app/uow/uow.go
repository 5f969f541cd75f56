package uow

import (
	"context"

	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainreviews "stayhub/internal/domain/reviews"
	domainuser "stayhub/internal/domain/user"
)

// UnitOfWork coordinates repositories inside a transaction boundary. The
// overlap check plus booking insert, a status transition, and a review change
// plus rating recompute each execute against one unit.
type UnitOfWork interface {
	Listings() domainlistings.Repository
	Bookings() domainbooking.Repository
	Reviews() domainreviews.Repository
	Users() domainuser.Repository
	Views() domainlistings.ViewHistoryRepository
	Searches() domainlistings.SearchHistoryRepository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
