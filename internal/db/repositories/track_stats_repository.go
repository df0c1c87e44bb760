package repositories

import (
	"context"
	"fmt"

	"blackbox/flightlog/internal/constants"

	"github.com/jmoiron/sqlx"
)

// TrackStatsRepository exposes the aggregate primitives of the record
// store: range counts, duration sums, and group-by buckets. Raw sqlx
// queries keep the strftime arithmetic in SQLite, where the stored
// ISO-8601 text is cheapest to fold.
type TrackStatsRepository struct {
	db *sqlx.DB
}

func NewTrackStatsRepository(db *sqlx.DB) *TrackStatsRepository {
	return &TrackStatsRepository{db}
}

type bucketCount struct {
	Bucket int `db:"bucket"`
	Count  int `db:"count"`
}

// CountTakeoffsBetween counts tracks with takeoff_time in [start, end).
// Bounds are ISO-8601 strings in the same convention as the stored rows.
func (r *TrackStatsRepository) CountTakeoffsBetween(ctx context.Context, start, end string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, constants.CountTakeoffsBetween, start, end); err != nil {
		return 0, fmt.Errorf("failed to count takeoffs: %w", err)
	}
	return count, nil
}

// SumFlightSeconds sums per-record (landing - takeoff) in seconds, 0 for
// an empty store.
func (r *TrackStatsRepository) SumFlightSeconds(ctx context.Context) (int64, error) {
	var seconds int64
	if err := r.db.GetContext(ctx, &seconds, constants.SumFlightSeconds); err != nil {
		return 0, fmt.Errorf("failed to sum flight seconds: %w", err)
	}
	return seconds, nil
}

// AvgFlightExperience averages the non-null experience ratings, 0 when
// no record is rated.
func (r *TrackStatsRepository) AvgFlightExperience(ctx context.Context) (float64, error) {
	var avg float64
	if err := r.db.GetContext(ctx, &avg, constants.AvgFlightExperience); err != nil {
		return 0, fmt.Errorf("failed to average experience: %w", err)
	}
	return avg, nil
}

// CountByLandingType returns NORMAL and FORCED totals.
func (r *TrackStatsRepository) CountByLandingType(ctx context.Context) (normal, forced int, err error) {
	rows := []struct {
		LandingType string `db:"landing_type"`
		Count       int    `db:"count"`
	}{}
	if err = r.db.SelectContext(ctx, &rows, constants.CountByLandingType); err != nil {
		return 0, 0, fmt.Errorf("failed to count landing types: %w", err)
	}
	for _, row := range rows {
		switch row.LandingType {
		case constants.LandingTypeNormal:
			normal = row.Count
		case constants.LandingTypeForced:
			forced = row.Count
		}
	}
	return normal, forced, nil
}

// CountByTakeoffHour groups takeoffs into 24 local-time hour buckets.
func (r *TrackStatsRepository) CountByTakeoffHour(ctx context.Context) ([24]int, error) {
	var hist [24]int
	var rows []bucketCount
	if err := r.db.SelectContext(ctx, &rows, constants.CountByTakeoffHour); err != nil {
		return hist, fmt.Errorf("failed to group takeoffs by hour: %w", err)
	}
	for _, row := range rows {
		if row.Bucket >= 0 && row.Bucket < 24 {
			hist[row.Bucket] = row.Count
		}
	}
	return hist, nil
}

// CountByTakeoffWeekday groups takeoffs into 7 local-time weekday
// buckets, Sunday=0.
func (r *TrackStatsRepository) CountByTakeoffWeekday(ctx context.Context) ([7]int, error) {
	var hist [7]int
	var rows []bucketCount
	if err := r.db.SelectContext(ctx, &rows, constants.CountByTakeoffWeekday); err != nil {
		return hist, fmt.Errorf("failed to group takeoffs by weekday: %w", err)
	}
	for _, row := range rows {
		if row.Bucket >= 0 && row.Bucket < 7 {
			hist[row.Bucket] = row.Count
		}
	}
	return hist, nil
}
