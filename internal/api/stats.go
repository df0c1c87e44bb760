package api

import (
	"net/http"
	"time"

	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/constants"
	"blackbox/flightlog/internal/models/dtos"
	"blackbox/flightlog/internal/services"
)

// RadarStatsHandler handles GET /api/v1/radar/stats
func RadarStatsHandler(radar *services.RadarStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := radar.Get(r.Context())
		if err != nil {
			writeResponse(w, http.StatusInternalServerError, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      "Radar stats computed",
			ResponseTime: common.GetResponseTime(initTime),
			Data:         stats,
		})
	}
}

// CockpitStatsHandler handles GET /api/v1/cockpit/stats
func CockpitStatsHandler(cockpit *services.CockpitStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := cockpit.Get(r.Context())
		if err != nil {
			writeResponse(w, http.StatusInternalServerError, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      "Cockpit stats computed",
			ResponseTime: common.GetResponseTime(initTime),
			Data:         stats,
		})
	}
}
