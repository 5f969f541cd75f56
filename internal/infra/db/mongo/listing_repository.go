package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const listingsCollection = "listings"

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(listingsCollection)}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainlistings.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ListingRepository) Save(ctx context.Context, l *domainlistings.Listing) error {
	doc := newListingDocument(l)
	filter := bson.M{"_id": doc.ID, "version": l.Version}
	doc.Version = l.Version + 1
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
	l.Version = doc.Version
	return nil
}

func (r *ListingRepository) ListByOwner(ctx context.Context, owner domainuser.ID) ([]*domainlistings.Listing, error) {
	cursor, err := r.col.Find(ctx, bson.M{"owner_id": string(owner)}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	return decodeListings(ctx, cursor)
}

func (r *ListingRepository) Search(ctx context.Context, params domainlistings.SearchParams) (domainlistings.SearchResult, error) {
	params = params.Normalized()
	filter := searchFilter(params)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainlistings.SearchResult{}, err
	}

	opts := options.Find().
		SetSort(sortSpec(params.Sort)).
		SetSkip(int64(params.Offset)).
		SetLimit(int64(params.Limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return domainlistings.SearchResult{}, err
	}
	items, err := decodeListings(ctx, cursor)
	if err != nil {
		return domainlistings.SearchResult{}, err
	}
	return domainlistings.SearchResult{Items: items, Total: int(total)}, nil
}

func searchFilter(params domainlistings.SearchParams) bson.M {
	filter := bson.M{}
	if params.OnlyActive {
		filter["active"] = true
	}
	price := bson.M{}
	if params.PriceMinCents > 0 {
		price["$gte"] = params.PriceMinCents
	}
	if params.PriceMaxCents > 0 {
		price["$lte"] = params.PriceMaxCents
	}
	if len(price) > 0 {
		filter["price_cents"] = price
	}
	rooms := bson.M{}
	if params.RoomsMin > 0 {
		rooms["$gte"] = params.RoomsMin
	}
	if params.RoomsMax > 0 {
		rooms["$lte"] = params.RoomsMax
	}
	if len(rooms) > 0 {
		filter["rooms"] = rooms
	}
	if len(params.PropertyTypes) > 0 {
		types := make([]string, 0, len(params.PropertyTypes))
		for _, pt := range params.PropertyTypes {
			types = append(types, string(pt))
		}
		filter["property_type"] = bson.M{"$in": types}
	}
	if params.Address != "" {
		filter["address"] = primitive.Regex{Pattern: regexEscape(params.Address), Options: "i"}
	}
	if len(params.Terms) > 0 {
		or := make([]bson.M, 0, len(params.Terms)*2)
		for _, term := range params.Terms {
			re := primitive.Regex{Pattern: regexEscape(term), Options: "i"}
			or = append(or, bson.M{"title": re}, bson.M{"description": re})
		}
		filter["$or"] = or
	}
	return filter
}

func sortSpec(sort domainlistings.SortOrder) bson.D {
	switch sort {
	case domainlistings.SortByPriceAsc:
		return bson.D{{Key: "price_cents", Value: 1}}
	case domainlistings.SortByPriceDesc:
		return bson.D{{Key: "price_cents", Value: -1}}
	case domainlistings.SortByOldest:
		return bson.D{{Key: "created_at", Value: 1}}
	case domainlistings.SortByRating:
		return bson.D{{Key: "rating", Value: -1}}
	case domainlistings.SortByReviews:
		return bson.D{{Key: "number_of_reviews", Value: -1}}
	case domainlistings.SortByViews:
		return bson.D{{Key: "number_of_views", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func regexEscape(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func decodeListings(ctx context.Context, cursor *mongo.Cursor) ([]*domainlistings.Listing, error) {
	defer cursor.Close(ctx)
	var out []*domainlistings.Listing
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type listingDocument struct {
	ID              string  `bson:"_id"`
	OwnerID         string  `bson:"owner_id"`
	Title           string  `bson:"title"`
	Description     string  `bson:"description"`
	Address         string  `bson:"address"`
	PropertyType    string  `bson:"property_type"`
	Rooms           int     `bson:"rooms"`
	PriceCents      int64   `bson:"price_cents"`
	Active          bool    `bson:"active"`
	Rating          float64 `bson:"rating"`
	NumberOfReviews int     `bson:"number_of_reviews"`
	NumberOfViews   int     `bson:"number_of_views"`
	CreatedAt       int64   `bson:"created_at"`
	UpdatedAt       int64   `bson:"updated_at"`
	Version         int64   `bson:"version"`
}

func newListingDocument(l *domainlistings.Listing) listingDocument {
	return listingDocument{
		ID:              string(l.ID),
		OwnerID:         string(l.Owner),
		Title:           l.Title,
		Description:     l.Description,
		Address:         l.Address,
		PropertyType:    string(l.PropertyType),
		Rooms:           l.Rooms,
		PriceCents:      l.PriceCents,
		Active:          l.Active,
		Rating:          l.Rating,
		NumberOfReviews: l.NumberOfReviews,
		NumberOfViews:   l.NumberOfViews,
		CreatedAt:       l.CreatedAt.UnixMilli(),
		UpdatedAt:       l.UpdatedAt.UnixMilli(),
		Version:         l.Version,
	}
}

func (d listingDocument) toAggregate() *domainlistings.Listing {
	return &domainlistings.Listing{
		ID:              domainlistings.ListingID(d.ID),
		Owner:           domainuser.ID(d.OwnerID),
		Title:           d.Title,
		Description:     d.Description,
		Address:         d.Address,
		PropertyType:    domainlistings.PropertyType(d.PropertyType),
		Rooms:           d.Rooms,
		PriceCents:      d.PriceCents,
		Active:          d.Active,
		Rating:          d.Rating,
		NumberOfReviews: d.NumberOfReviews,
		NumberOfViews:   d.NumberOfViews,
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
