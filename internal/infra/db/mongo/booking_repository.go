package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainrange "stayhub/internal/domain/shared/daterange"
	domainuser "stayhub/internal/domain/user"
)

const bookingsCollection = "bookings"

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(bookingsCollection)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return uow.ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return uow.ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID domainuser.ID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"guest_id": string(guestID)})
}

func (r *BookingRepository) ListByListings(ctx context.Context, listingIDs []domainlistings.ListingID) ([]*domainbooking.Booking, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(listingIDs))
	for _, id := range listingIDs {
		ids = append(ids, string(id))
	}
	return r.find(ctx, bson.M{"listing_id": bson.M{"$in": ids}})
}

func (r *BookingRepository) ListByListingAndStatus(ctx context.Context, listingID domainlistings.ListingID, status domainbooking.Status) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"listing_id": string(listingID), "status": string(status)})
}

func (r *BookingRepository) HasByListingGuestAndStatus(ctx context.Context, listingID domainlistings.ListingID, guestID domainuser.ID, status domainbooking.Status) (bool, error) {
	filter := bson.M{"listing_id": string(listingID), "guest_id": string(guestID), "status": string(status)}
	count, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type bookingDocument struct {
	ID         string        `bson:"_id"`
	ListingID  string        `bson:"listing_id"`
	GuestID    string        `bson:"guest_id"`
	Range      rangeDocument `bson:"range"`
	PriceCents int64         `bson:"price_cents"`
	Status     string        `bson:"status"`
	CreatedAt  int64         `bson:"created_at"`
	UpdatedAt  int64         `bson:"updated_at"`
	Version    int64         `bson:"version"`
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:         string(b.ID),
		ListingID:  string(b.ListingID),
		GuestID:    string(b.GuestID),
		Range:      rangeDocument{CheckIn: b.Range.CheckIn.UnixMilli(), CheckOut: b.Range.CheckOut.UnixMilli()},
		PriceCents: b.PriceCents,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UnixMilli(),
		UpdatedAt:  b.UpdatedAt.UnixMilli(),
		Version:    b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:         domainbooking.BookingID(d.ID),
		ListingID:  domainlistings.ListingID(d.ListingID),
		GuestID:    domainuser.ID(d.GuestID),
		Range:      domainrange.DateRange{CheckIn: timestampToTime(d.Range.CheckIn), CheckOut: timestampToTime(d.Range.CheckOut)},
		PriceCents: d.PriceCents,
		Status:     domainbooking.Status(d.Status),
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
}
