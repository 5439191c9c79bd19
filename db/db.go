package db

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	ServicesCollection    *mongo.Collection
	PackagesCollection    *mongo.Collection
	EventPlansCollection  *mongo.Collection
	TestimonialCollection *mongo.Collection
	ContactCollection     *mongo.Collection
	LocationCollection    *mongo.Collection
	Client                *mongo.Client
)

// Init connects to MongoDB and binds the shared collection handles.
// Call once from main before serving.
func Init() error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "eventia"
	}
	database := client.Database(dbName)

	UserCollection = database.Collection("users")
	ServicesCollection = database.Collection("services")
	PackagesCollection = database.Collection("packages")
	EventPlansCollection = database.Collection("eventplans")
	TestimonialCollection = database.Collection("testimonials")
	ContactCollection = database.Collection("contacts")
	LocationCollection = database.Collection("locations")

	if err := EnsureIndexes(ctx); err != nil {
		slog.Error("index creation failed", "err", err)
		return err
	}
	return nil
}

// EnsureIndexes creates the uniqueness and lookup indexes the handlers rely
// on. The partial index on eventplans enforces "at most one Planning cart per
// owner" at the storage layer.
func EnsureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "userid", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = EventPlansCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "Planning"}),
		},
		{Keys: bson.D{{Key: "planid", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = ServicesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "serviceid", Value: 1}}},
		{Keys: bson.D{{Key: "vendorId", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = PackagesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "packageid", Value: 1}}},
		{Keys: bson.D{{Key: "vendorId", Value: 1}}},
	})
	return err
}
