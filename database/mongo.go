package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

const databaseName = "fita-a-fita"

// Connect establishes the MongoDB connection and verifies it with a ping
func Connect(uri string) {
	if uri == "" {
		log.Fatal("DATABASE env not set")
	}

	serverAPIOptions := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPIOptions)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	db = client.Database(databaseName)

	if err = ensureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	log.Println("✅ Connected to database")
}

// Disconnect closes the MongoDB connection
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Collection returns a handle to a named collection
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}
