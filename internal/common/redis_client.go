package common

import (
	"context"
	"fmt"
	"os"
	"time"

	"blackbox/flightlog/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient opens the connection backing the crash-safe flight
// draft. The workload is a few tiny reads and writes around takeoff and
// landing, so the pool stays small and the timeouts tight.
func NewRedisClient() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	// No password by default for local development
	password := os.Getenv("REDIS_PASSWORD")

	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// The pool reconnects on its own; a dead Redis at boot only means
		// starting a flight fails until it is back.
		logging.Error("Failed to ping Redis", "addr", addr, "error", err.Error())
		return client
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client
}
