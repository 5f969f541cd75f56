package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	DB *mongo.Database
}

func New(uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Client().ApplyURI(uri).SetRetryWrites(true)
	m, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{DB: m.Database(database)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Ping(ctx, nil)
}

func (c *Client) Close(ctx context.Context) error {
	return c.DB.Client().Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. Safe to call on
// every startup.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	users := c.DB.Collection(usersCollection)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]any{"email": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	bookings := c.DB.Collection(bookingsCollection)
	if _, err := bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: map[string]any{"listing_id": 1, "status": 1},
	}); err != nil {
		return err
	}

	reviews := c.DB.Collection(reviewsCollection)
	if _, err := reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]any{"author_id": 1, "listing_id": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	views := c.DB.Collection(viewsCollection)
	if _, err := views.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]any{"listing_id": 1, "user_id": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	searches := c.DB.Collection(searchesCollection)
	_, err := searches.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: map[string]any{"user_id": 1, "searched_at": -1},
	})
	return err
}
