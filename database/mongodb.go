package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CoderAnshul/AdDash/config"
)

// Connect establishes and verifies the MongoDB connection
func Connect(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Check the connection
	if err = client.Ping(connectCtx, nil); err != nil {
		return nil, err
	}

	return client, nil
}
