package repositories

import (
	"context"
	"fmt"

	"blackbox/flightlog/internal/models/entities"

	"gorm.io/gorm"
)

// TrackRepository handles flight_tracks row operations using GORM
type TrackRepository struct {
	db *gorm.DB
}

// NewTrackRepository creates a new GORM-based track repository
func NewTrackRepository(db *gorm.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// InsertTrack writes one completed flight and returns its assigned id.
// Half-set coordinate pairs are normalized away before the write.
func (r *TrackRepository) InsertTrack(ctx context.Context, track *entities.FlightTrack) (int64, error) {
	track.NormalizeCoordinates()

	if err := r.db.WithContext(ctx).Create(track).Error; err != nil {
		return 0, fmt.Errorf("failed to insert flight track: %w", err)
	}
	return track.ID, nil
}

// GetByID retrieves a track by its id, (nil, nil) when it does not exist
func (r *TrackRepository) GetByID(ctx context.Context, id int64) (*entities.FlightTrack, error) {
	var track entities.FlightTrack

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&track).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight track: %w", err)
	}

	return &track, nil
}

// ListAll returns every track ordered by takeoff time, newest first
func (r *TrackRepository) ListAll(ctx context.Context) ([]entities.FlightTrack, error) {
	var tracks []entities.FlightTrack

	err := r.db.WithContext(ctx).
		Order("takeoff_time DESC").
		Find(&tracks).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list flight tracks: %w", err)
	}

	return tracks, nil
}

// LastFlight returns the most recent track, (nil, nil) on an empty store
func (r *TrackRepository) LastFlight(ctx context.Context) (*entities.FlightTrack, error) {
	var track entities.FlightTrack

	err := r.db.WithContext(ctx).
		Order("takeoff_time DESC").
		First(&track).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last flight: %w", err)
	}

	return &track, nil
}

// UpdateTrack applies a partial column update to one track
func (r *TrackRepository) UpdateTrack(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&entities.FlightTrack{}).
		Where("id = ?", id).
		Updates(updates)

	if res.Error != nil {
		return fmt.Errorf("failed to update flight track %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTrack removes one track by id
func (r *TrackRepository) DeleteTrack(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).
		Delete(&entities.FlightTrack{}, id).Error

	if err != nil {
		return fmt.Errorf("failed to delete flight track %d: %w", id, err)
	}
	return nil
}

// DeleteAll clears the record store
func (r *TrackRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Where("id IS NOT NULL").
		Delete(&entities.FlightTrack{}).Error

	if err != nil {
		return fmt.Errorf("failed to delete flight tracks: %w", err)
	}
	return nil
}
