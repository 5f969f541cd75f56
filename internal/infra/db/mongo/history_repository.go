package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const (
	viewsCollection    = "listing_views"
	searchesCollection = "search_history"
)

type ViewHistoryRepository struct {
	col *mongo.Collection
}

func NewViewHistoryRepository(db *mongo.Database) *ViewHistoryRepository {
	return &ViewHistoryRepository{col: db.Collection(viewsCollection)}
}

func (r *ViewHistoryRepository) Touch(ctx context.Context, listingID domainlistings.ListingID, userID domainuser.ID, at time.Time) error {
	filter := bson.M{"listing_id": string(listingID), "user_id": string(userID)}
	update := bson.M{"$set": bson.M{"viewed_at": at.UTC().UnixMilli()}}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *ViewHistoryRepository) CountByListing(ctx context.Context, listingID domainlistings.ListingID) (int, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"listing_id": string(listingID)})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *ViewHistoryRepository) ListByUser(ctx context.Context, userID domainuser.ID) ([]domainlistings.ViewRecord, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": string(userID)}, options.Find().SetSort(bson.D{{Key: "viewed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []domainlistings.ViewRecord
	for cursor.Next(ctx) {
		var doc viewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domainlistings.ViewRecord{
			ListingID: domainlistings.ListingID(doc.ListingID),
			UserID:    domainuser.ID(doc.UserID),
			ViewedAt:  timestampToTime(doc.ViewedAt),
		})
	}
	return out, cursor.Err()
}

type viewDocument struct {
	ListingID string `bson:"listing_id"`
	UserID    string `bson:"user_id"`
	ViewedAt  int64  `bson:"viewed_at"`
}

type SearchHistoryRepository struct {
	col *mongo.Collection
}

func NewSearchHistoryRepository(db *mongo.Database) *SearchHistoryRepository {
	return &SearchHistoryRepository{col: db.Collection(searchesCollection)}
}

func (r *SearchHistoryRepository) Record(ctx context.Context, userID domainuser.ID, term string, at time.Time) error {
	doc := searchDocument{UserID: string(userID), Term: term, SearchedAt: at.UTC().UnixMilli()}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *SearchHistoryRepository) ListByUser(ctx context.Context, userID domainuser.ID) ([]domainlistings.SearchRecord, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": string(userID)}, options.Find().SetSort(bson.D{{Key: "searched_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []domainlistings.SearchRecord
	for cursor.Next(ctx) {
		var doc searchDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domainlistings.SearchRecord{
			UserID:     domainuser.ID(doc.UserID),
			Term:       doc.Term,
			SearchedAt: timestampToTime(doc.SearchedAt),
		})
	}
	return out, cursor.Err()
}

func (r *SearchHistoryRepository) TopTerms(ctx context.Context, limit int) ([]domainlistings.TermStat, error) {
	if limit <= 0 {
		limit = 20
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$term"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []domainlistings.TermStat
	for cursor.Next(ctx) {
		var row struct {
			Term  string `bson:"_id"`
			Total int    `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, domainlistings.TermStat{Term: row.Term, Total: row.Total})
	}
	return out, cursor.Err()
}

type searchDocument struct {
	UserID     string `bson:"user_id"`
	Term       string `bson:"term"`
	SearchedAt int64  `bson:"searched_at"`
}
