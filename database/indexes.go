package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the indexes the application relies on: uniqueness of
// user emails and of the (tour, user) review pair, the geo index behind the
// radius and distance queries, and the hot tour sort paths.
func ensureIndexes(ctx context.Context) error {
	tourIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "price", Value: 1}, {Key: "ratingsAverage", Value: -1}}},
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "startLocation", Value: "2dsphere"}}},
	}
	if _, err := Collection("tours").Indexes().CreateMany(ctx, tourIndexes); err != nil {
		return err
	}

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	reviewIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tour", Value: 1}, {Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := Collection("reviews").Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return err
	}

	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}
	_, err := Collection("bookings").Indexes().CreateMany(ctx, bookingIndexes)
	return err
}
