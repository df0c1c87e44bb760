package services

import (
	"context"
	"fmt"
	"time"

	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/constants"
	"blackbox/flightlog/internal/logging"
	"blackbox/flightlog/internal/metrics"
	"blackbox/flightlog/internal/models/dtos"
	"blackbox/flightlog/internal/models/entities"

	"golang.org/x/sync/singleflight"
)

const radarStatsTTL = 5 * time.Minute

// TrackLister is the slice of the record store the radar engine reads.
type TrackLister interface {
	ListAll(ctx context.Context) ([]entities.FlightTrack, error)
}

// RadarStatsService serves the analytics snapshot. Stats are recomputed
// in full from the store (no incremental bookkeeping), cached briefly,
// and deduplicated through singleflight so a burst of radar-screen
// opens costs one recompute.
type RadarStatsService struct {
	repo    TrackLister
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
	group   singleflight.Group
	loc     *time.Location
}

func NewRadarStatsService(repo TrackLister, cache common.CacheInterface, reg *metrics.MetricsRegistry) *RadarStatsService {
	return &RadarStatsService{
		repo:    repo,
		cache:   cache,
		metrics: reg,
		loc:     time.Local,
	}
}

// Get returns the current snapshot, from cache when warm.
func (s *RadarStatsService) Get(ctx context.Context) (*dtos.RadarStats, error) {
	cacheKey := string(constants.CachePrefixRadarStats)

	if cached, found := s.cache.Get(cacheKey); found {
		if stats, ok := cached.(*dtos.RadarStats); ok {
			s.countCache(true)
			return stats, nil
		}
	}
	s.countCache(false)

	val, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		return s.recompute(ctx)
	})
	if err != nil {
		return nil, err
	}
	return val.(*dtos.RadarStats), nil
}

// Invalidate drops the cached snapshot; callers do this after any write
// so the next read recomputes.
func (s *RadarStatsService) Invalidate() {
	s.cache.Delete(string(constants.CachePrefixRadarStats))
}

// Refresh recomputes immediately and warms the cache. Used by the
// background worker after a flight is recorded.
func (s *RadarStatsService) Refresh(ctx context.Context) error {
	s.Invalidate()
	_, err := s.recompute(ctx)
	return err
}

func (s *RadarStatsService) recompute(ctx context.Context) (*dtos.RadarStats, error) {
	start := time.Now()

	tracks, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load record set: %w", err)
	}

	stats := ComputeRadarStats(tracks, time.Now(), s.loc)

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RadarRecomputeDuration.Observe(elapsed.Seconds())
	}
	logging.Debug("Radar stats recomputed",
		"missions", stats.TotalMissions,
		"duration_ms", elapsed.Milliseconds(),
	)

	s.cache.Set(string(constants.CachePrefixRadarStats), stats, radarStatsTTL)
	return stats, nil
}

func (s *RadarStatsService) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixRadarStats)).Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixRadarStats)).Inc()
	}
}
