package services

import (
	"context"
	"fmt"
	"time"

	"blackbox/flightlog/internal/db/repositories"
	"blackbox/flightlog/internal/models/dtos"
)

// CockpitStatsService feeds the home screen header: today/month sortie
// counts, lifetime hours, and the last flight. Counts go through the
// sqlx aggregate primitives instead of loading the whole set.
type CockpitStatsService struct {
	tracks *repositories.TrackRepository
	stats  *repositories.TrackStatsRepository
	loc    *time.Location
}

func NewCockpitStatsService(tracks *repositories.TrackRepository, stats *repositories.TrackStatsRepository) *CockpitStatsService {
	return &CockpitStatsService{
		tracks: tracks,
		stats:  stats,
		loc:    time.Local,
	}
}

func (s *CockpitStatsService) Get(ctx context.Context) (*dtos.CockpitStats, error) {
	now := time.Now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	// Bounds are converted to UTC before the string comparison; rows are
	// stored as UTC ISO-8601 text.
	today, err := s.stats.CountTakeoffsBetween(ctx,
		dayStart.UTC().Format(time.RFC3339),
		dayStart.AddDate(0, 0, 1).UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's sorties: %w", err)
	}

	month, err := s.stats.CountTakeoffsBetween(ctx,
		monthStart.UTC().Format(time.RFC3339),
		monthStart.AddDate(0, 1, 0).UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count monthly sorties: %w", err)
	}

	seconds, err := s.stats.SumFlightSeconds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum flight time: %w", err)
	}

	last, err := s.tracks.LastFlight(ctx)
	if err != nil {
		return nil, err
	}

	return &dtos.CockpitStats{
		Today:            today,
		Month:            month,
		TotalFlightHours: float64(seconds) / 3600,
		LastFlight:       last,
	}, nil
}
