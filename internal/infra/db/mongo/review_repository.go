package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlistings "stayhub/internal/domain/listings"
	domainreviews "stayhub/internal/domain/reviews"
	domainuser "stayhub/internal/domain/user"
)

const reviewsCollection = "reviews"

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(reviewsCollection)}
}

func (r *ReviewRepository) ByID(ctx context.Context, id domainreviews.ReviewID) (*domainreviews.Review, error) {
	return r.findOne(ctx, bson.M{"_id": string(id)})
}

func (r *ReviewRepository) ByAuthorAndListing(ctx context.Context, authorID domainuser.ID, listingID domainlistings.ListingID) (*domainreviews.Review, error) {
	return r.findOne(ctx, bson.M{"author_id": string(authorID), "listing_id": string(listingID)})
}

func (r *ReviewRepository) ListByListing(ctx context.Context, listingID domainlistings.ListingID) ([]*domainreviews.Review, error) {
	return r.find(ctx, bson.M{"listing_id": string(listingID)})
}

func (r *ReviewRepository) ListByAuthor(ctx context.Context, authorID domainuser.ID) ([]*domainreviews.Review, error) {
	return r.find(ctx, bson.M{"author_id": string(authorID)})
}

func (r *ReviewRepository) Save(ctx context.Context, review *domainreviews.Review) error {
	doc := newReviewDocument(review)
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainreviews.ErrAlreadyReviewed
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id domainreviews.ReviewID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainreviews.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) findOne(ctx context.Context, filter bson.M) (*domainreviews.Review, error) {
	var doc reviewDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreviews.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M) ([]*domainreviews.Review, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainreviews.Review
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type reviewDocument struct {
	ID        string `bson:"_id"`
	ListingID string `bson:"listing_id"`
	AuthorID  string `bson:"author_id"`
	Rating    int    `bson:"rating"`
	Comment   string `bson:"comment"`
	CreatedAt int64  `bson:"created_at"`
}

func newReviewDocument(review *domainreviews.Review) reviewDocument {
	return reviewDocument{
		ID:        string(review.ID),
		ListingID: string(review.ListingID),
		AuthorID:  string(review.AuthorID),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.UnixMilli(),
	}
}

func (d reviewDocument) toAggregate() *domainreviews.Review {
	return &domainreviews.Review{
		ID:        domainreviews.ReviewID(d.ID),
		ListingID: domainlistings.ListingID(d.ListingID),
		AuthorID:  domainuser.ID(d.AuthorID),
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}
