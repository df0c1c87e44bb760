package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/constants"
	"blackbox/flightlog/internal/db/repositories"
	"blackbox/flightlog/internal/metrics"
	"blackbox/flightlog/internal/models/dtos"
	"blackbox/flightlog/internal/services"
	"blackbox/flightlog/internal/workers"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// ListTracksHandler handles GET /api/v1/tracks
func ListTracksHandler(repo *repositories.TrackRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		tracks, err := repo.ListAll(r.Context())
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
			Message:      fmt.Sprintf("Fetched %d tracks", len(tracks)),
			ResponseTime: common.GetResponseTime(initTime),
			Data:         tracks,
		})
	}
}

// GetTrackHandler handles GET /api/v1/tracks/{id}
func GetTrackHandler(repo *repositories.TrackRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := trackID(w, r, initTime)
		if !ok {
			return
		}

		track, err := repo.GetByID(r.Context(), id)
		if err != nil {
			writeResponse(w, http.StatusInternalServerError, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}
		if track == nil {
			writeResponse(w, http.StatusNotFound, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      fmt.Sprintf("Track %d not found", id),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      "Fetched track",
			ResponseTime: common.GetResponseTime(initTime),
			Data:         track,
		})
	}
}

// UpdateTrackHandler handles PATCH /api/v1/tracks/{id}, the
// post-landing annotation screen (note, rating, corrections).
func UpdateTrackHandler(repo *repositories.TrackRepository, radar *services.RadarStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := trackID(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.TrackUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResponse(w, http.StatusBadRequest, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      "Invalid JSON body",
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		updates, err := req.Updates()
		if err != nil {
			writeResponse(w, http.StatusBadRequest, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		if err := repo.UpdateTrack(r.Context(), id, updates); err != nil {
			status := http.StatusInternalServerError
			msg := err.Error()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusNotFound
				msg = fmt.Sprintf("Track %d not found", id)
			}
			writeResponse(w, status, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      msg,
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		radar.Invalidate()
		workers.EnqueueStatsRefresh("track_updated")

		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      "Track updated",
			ResponseTime: common.GetResponseTime(initTime),
		})
	}
}

// DeleteTrackHandler handles DELETE /api/v1/tracks/{id}
func DeleteTrackHandler(repo *repositories.TrackRepository, radar *services.RadarStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, ok := trackID(w, r, initTime)
		if !ok {
			return
		}

		if err := repo.DeleteTrack(r.Context(), id); err != nil {
			writeResponse(w, http.StatusInternalServerError, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		radar.Invalidate()
		workers.EnqueueStatsRefresh("track_deleted")

		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      "Track deleted",
			ResponseTime: common.GetResponseTime(initTime),
		})
	}
}

// ImportTracksHandler handles POST /api/v1/tracks/import
func ImportTracksHandler(transfer *services.TransferService, radar *services.RadarStatsService, reg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		result, err := transfer.Import(r.Context(), r.Body)
		if err != nil {
			writeResponse(w, http.StatusBadRequest, dtos.APIResponse{
				Status:       string(constants.APIStatusError),
				Message:      err.Error(),
				ResponseTime: common.GetResponseTime(initTime),
			})
			return
		}

		reg.TracksImportedTotal.Add(float64(result.Imported))
		radar.Invalidate()
		workers.EnqueueStatsRefresh("tracks_imported")

		writeResponse(w, http.StatusOK, dtos.APIResponse{
			Status:       string(constants.APIStatusOk),
			Message:      fmt.Sprintf("Imported %d tracks (%d failed)", result.Imported, result.Failed),
			ResponseTime: common.GetResponseTime(initTime),
			Data:         result,
		})
	}
}

// ExportTracksHandler handles GET /api/v1/tracks/export
func ExportTracksHandler(transfer *services.TransferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := fmt.Sprintf("blackbox_backup_%s.json", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := transfer.Export(r.Context(), w); err != nil {
			// Headers may already be out; a half-written export cannot be
			// turned into a clean error response.
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func trackID(w http.ResponseWriter, r *http.Request, initTime time.Time) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeResponse(w, http.StatusBadRequest, dtos.APIResponse{
			Status:       string(constants.APIStatusError),
			Message:      "Invalid track id",
			ResponseTime: common.GetResponseTime(initTime),
		})
		return 0, false
	}
	return id, true
}
