package api

import (
	"encoding/json"
	"net/http"
	"time"

	"blackbox/flightlog/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(db *sqlx.DB, kv *redis.Client, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		sqliteStatus := "ok"
		sqliteDetails := "SQLite connected"
		if err := db.Ping(); err != nil {
			sqliteStatus = "down"
			sqliteDetails = err.Error()
		}
		services["sqlite"] = entities.ServiceStatus{
			Status:  sqliteStatus,
			Details: sqliteDetails,
		}

		redisStatus := "ok"
		redisDetails := "Redis connected"
		if err := kv.Ping(r.Context()).Err(); err != nil {
			redisStatus = "down"
			redisDetails = err.Error()
		}
		services["redis"] = entities.ServiceStatus{
			Status:  redisStatus,
			Details: redisDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
