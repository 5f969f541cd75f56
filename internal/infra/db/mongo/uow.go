package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainreviews "stayhub/internal/domain/reviews"
	domainuser "stayhub/internal/domain/user"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database
}

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:       f.DB,
		session:  session,
		listings: NewListingRepository(f.DB),
		bookings: NewBookingRepository(f.DB),
		reviews:  NewReviewRepository(f.DB),
		users:    NewUserRepository(f.DB),
		views:    NewViewHistoryRepository(f.DB),
		searches: NewSearchHistoryRepository(f.DB),
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

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

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext makes the Mongo session visible to downstream repository
// calls made with the returned context.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
