package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"blackbox/flightlog/internal/constants"
	"blackbox/flightlog/internal/db/repositories"
	"blackbox/flightlog/internal/logging"
	"blackbox/flightlog/internal/models/dtos"
	"blackbox/flightlog/internal/models/entities"
)

// TransferService moves the full record set in and out as a JSON array,
// the backup format the mobile client established.
type TransferService struct {
	tracks *repositories.TrackRepository
}

func NewTransferService(tracks *repositories.TrackRepository) *TransferService {
	return &TransferService{tracks: tracks}
}

// Export streams every track, newest first, as a JSON array.
func (s *TransferService) Export(ctx context.Context, w io.Writer) error {
	tracks, err := s.tracks.ListAll(ctx)
	if err != nil {
		return err
	}
	if tracks == nil {
		tracks = []entities.FlightTrack{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tracks); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// Import ingests a JSON array of records. Ids are stripped (the store
// assigns new ones) and the array is walked in reverse so a newest-first
// export lands in chronological insert order. A bad row is counted and
// skipped, never fatal to the batch.
func (s *TransferService) Import(ctx context.Context, r io.Reader) (*dtos.ImportResult, error) {
	var incoming []entities.FlightTrack
	if err := json.NewDecoder(r).Decode(&incoming); err != nil {
		return nil, fmt.Errorf("import payload is not a JSON array of flight records: %w", err)
	}

	result := &dtos.ImportResult{}
	for i := len(incoming) - 1; i >= 0; i-- {
		track := incoming[i]
		track.ID = 0

		if err := validateImported(&track); err != nil {
			logging.Warn("Skipping invalid imported record", "error", err.Error())
			result.Failed++
			continue
		}

		if _, err := s.tracks.InsertTrack(ctx, &track); err != nil {
			logging.Warn("Failed to import record", "error", err.Error())
			result.Failed++
			continue
		}
		result.Imported++
	}

	logging.Info("Import finished", "imported", result.Imported, "failed", result.Failed)
	return result, nil
}

func validateImported(track *entities.FlightTrack) error {
	if track.TakeoffTime == "" || track.LandingTime == "" {
		return fmt.Errorf("missing takeoff or landing time")
	}
	switch track.LandingType {
	case constants.LandingTypeNormal, constants.LandingTypeForced:
	default:
		return fmt.Errorf("unknown landing type %q", track.LandingType)
	}
	if exp := track.FlightExperience; exp != nil && (*exp < 0 || *exp > 10) {
		return fmt.Errorf("experience %d out of range", *exp)
	}
	return nil
}
