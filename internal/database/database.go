// server/internal/database/database.go
package database

import (
	"context"
	"fmt"
	"time"

	"global-track-api-server/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens the Mongo client and pings the deployment.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(cfg.DBName), nil
}

// EnsureIndexes creates the indexes the write paths rely on: unique
// tracking numbers, one proof per shipment, one account per email.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection("shipments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "trackingNumber", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("create shipments index: %w", err)
	}

	_, err = db.Collection("payment_proofs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "shipmentID", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create payment_proofs index: %w", err)
	}

	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	return nil
}
