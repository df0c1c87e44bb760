package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/db"
	"blackbox/flightlog/internal/logging"
	"blackbox/flightlog/internal/routes"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Blackbox flightlog starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Open SQLite with sqlx (raw aggregate queries)
	if err := db.InitSQLite(); err != nil {
		logging.Error("Failed to open SQLite (sqlx)", "error", err.Error())
		log.Fatalf("❌ Failed to open SQLite (sqlx): %v", err)
	}
	logging.Info("Opened SQLite (sqlx)", "path", db.DBPath())

	// Open SQLite with GORM (row CRUD + migrations)
	if _, err := db.InitSQLiteORM(db.DBPath()); err != nil {
		logging.Error("Failed to open SQLite (GORM)", "error", err.Error())
		log.Fatalf("❌ Failed to open SQLite (GORM): %v", err)
	}
	logging.Info("Opened SQLite (GORM), migrations applied")

	// Redis backs the crash-safe flight draft
	redisClient := common.NewRedisClient()

	upSince := time.Now()

	router := routes.RegisterRoutes(upSince, redisClient)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logging.Info("Server starting",
		"port", port,
		"environment", appEnv,
	)

	log.Printf("Starting server on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
