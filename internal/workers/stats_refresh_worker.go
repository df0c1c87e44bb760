package workers

import (
	"context"
	"log"

	"blackbox/flightlog/internal/logging"
	"blackbox/flightlog/internal/services"
)

// StatsRefreshRequest asks the worker to rebuild the radar snapshot.
type StatsRefreshRequest struct {
	Reason string
}

var StatsRefreshQueue = make(chan StatsRefreshRequest, 16)

// EnqueueStatsRefresh schedules a cache warm without blocking the
// request path; when the queue is full a refresh is already pending and
// the drop is harmless.
func EnqueueStatsRefresh(reason string) bool {
	select {
	case StatsRefreshQueue <- StatsRefreshRequest{Reason: reason}:
		return true
	default:
		return false
	}
}

func StatsRefreshWorker(radar *services.RadarStatsService) {
	log.Printf("[DEBUG] StatsRefreshWorker started, queue_addr=%p", StatsRefreshQueue)
	for req := range StatsRefreshQueue {
		if err := radar.Refresh(context.Background()); err != nil {
			logging.Error("Radar refresh failed", "reason", req.Reason, "error", err.Error())
			continue
		}
		logging.Debug("Radar cache warmed", "reason", req.Reason)
	}
}

// InitWorkers starts the background workers
func InitWorkers(radar *services.RadarStatsService) {
	go StatsRefreshWorker(radar)
}
