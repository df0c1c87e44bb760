package api

import (
	"encoding/json"
	"net/http"
	"time"

	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/constants"
	"blackbox/flightlog/internal/metrics"
	"blackbox/flightlog/internal/models/dtos"
	"blackbox/flightlog/internal/services"
	"blackbox/flightlog/internal/workers"
)

// StartFlightHandler handles POST /api/v1/flight/start
func StartFlightHandler(session *services.FlightSessionService, reg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		res, err := session.StartFlight(r.Context())
		if err != nil {
			writeResponse(w, http.StatusInternalServerError, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}
		if res == nil {
			// Double-tap while already PREPARING/FLYING; nothing changed.
			writeResponse(w, http.StatusOK, dtos.APIResponse{
				Status:       string(constants.APIStatusOk),
				Message:      "Flight already in progress",
				ResponseTime: common.GetResponseTime(initTime),
				Data:         session.Status(),
			})
			return
		}

		if res.Warning == constants.WarnLocationTimeout {
			reg.LocationTimeoutsTotal.Inc()
		}

		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      "Flight started",
			ResponseTime: common.GetResponseTime(initTime),
			Data: dtos.StartFlightResponse{
				State:   string(services.StateFlying),
				Warning: res.Warning,
			},
		})
	}
}

// EndFlightHandler handles POST /api/v1/flight/end
func EndFlightHandler(session *services.FlightSessionService, radar *services.RadarStatsService, reg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.EndFlightRequest
		if r.Body != nil {
			// An empty body means a NORMAL landing.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		res, err := session.EndFlight(r.Context(), req.LandingType)
		if err != nil {
			writeResponse(w, http.StatusInternalServerError, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}
		if res == nil {
			writeResponse(w, http.StatusOK, dtos.APIResponse{
				Status:       string(constants.APIStatusOk),
				Message:      "No flight in progress",
				ResponseTime: common.GetResponseTime(initTime),
				Data:         session.Status(),
			})
			return
		}

		reg.FlightsRecordedTotal.Inc()
		if res.Warning == constants.WarnLocationTimeout {
			reg.LocationTimeoutsTotal.Inc()
		}
		radar.Invalidate()
		workers.EnqueueStatsRefresh("flight_recorded")

		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      "Flight recorded",
			ResponseTime: common.GetResponseTime(initTime),
			Data: dtos.EndFlightResponse{
				TrackID: res.TrackID,
				Warning: res.Warning,
			},
		})
	}
}

// DiscardFlightHandler handles POST /api/v1/flight/discard
func DiscardFlightHandler(session *services.FlightSessionService, reg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		wasFlying := session.Status().IsFlying
		if err := session.DiscardFlight(r.Context()); err != nil {
			writeResponse(w, http.StatusInternalServerError, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		msg := "No flight in progress"
		if wasFlying {
			msg = "Flight discarded"
			reg.FlightsDiscardedTotal.Inc()
		}
		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      msg,
			ResponseTime: common.GetResponseTime(initTime),
			Data:         session.Status(),
		})
	}
}

// FlightStateHandler handles GET /api/v1/flight/state
func FlightStateHandler(session *services.FlightSessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      "Session state",
			ResponseTime: common.GetResponseTime(initTime),
			Data:         session.Status(),
		})
	}
}

func writeResponse(w http.ResponseWriter, statusCode int, resp dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
