package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the indexes the API relies on. The unique
// indexes on users.email and profiles.handle back up the application
// level duplicate checks, which are two separate round-trips and can
// race without them.
func EnsureMongoIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.Collection("users")
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("uniq_email").
				SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	profiles := db.Collection("profiles")
	_, err = profiles.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().
				SetName("uniq_handle").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user", Value: 1}},
			Options: options.Index().
				SetName("uniq_user").
				SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	posts := db.Collection("posts")
	_, err = posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// newest-first listing
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index().SetName("by_date_desc"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("by_user"),
		},
	})
	return err
}
