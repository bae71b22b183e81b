// Package mongodb owns the process-wide MongoDB connection.
//
// The connection is established and pinged once, before the HTTP server
// starts accepting traffic, so no request is ever handled against a dead
// store. Call Disconnect during graceful shutdown.
package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/tokri/config"
)

var (
	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
)

// Connect dials the store at MONGO_URL and verifies it with a ping.
func Connect(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(config.MongoURL()).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	c, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("mongodb: ping: %w", err)
	}

	mu.Lock()
	client = c
	db = c.Database(config.MongoDB())
	mu.Unlock()

	return nil
}

// DB returns the application database. Panics when Connect was not called;
// request handling must never start before the store is live.
func DB() *mongo.Database {
	mu.RLock()
	defer mu.RUnlock()

	if db == nil {
		panic("mongodb: DB() called before Connect()")
	}
	return db
}

// Collection is shorthand for DB().Collection(name).
func Collection(name string) *mongo.Collection {
	return DB().Collection(name)
}

// Ping verifies the connection is still live (used by /healthz).
func Ping(ctx context.Context) error {
	mu.RLock()
	c := client
	mu.RUnlock()

	if c == nil {
		return fmt.Errorf("mongodb: not connected")
	}
	return c.Ping(ctx, nil)
}

// Disconnect tears the connection down. Safe to call when never connected.
func Disconnect(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	client = nil
	db = nil
	return err
}
