package services

import (
	"context"
	"errors"
	"testing"

	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/models/entities"
)

type mockTrackLister struct {
	ListAllFunc func(ctx context.Context) ([]entities.FlightTrack, error)
	calls       int
}

func (m *mockTrackLister) ListAll(ctx context.Context) ([]entities.FlightTrack, error) {
	m.calls++
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func TestRadarStatsServiceCachesSnapshot(t *testing.T) {
	ctx := context.Background()
	lister := &mockTrackLister{
		ListAllFunc: func(ctx context.Context) ([]entities.FlightTrack, error) {
			return []entities.FlightTrack{
				{
					TakeoffTime: "2026-01-05T08:00:00Z",
					LandingTime: "2026-01-05T09:00:00Z",
					LandingType: "NORMAL",
				},
			}, nil
		},
	}
	svc := NewRadarStatsService(lister, common.NewCacheService(300, 600), nil)

	first, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if first.TotalMissions != 1 {
		t.Errorf("Expected 1 mission, got %d", first.TotalMissions)
	}
	if lister.calls != 1 {
		t.Fatalf("Expected one store read, got %d", lister.calls)
	}

	second, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if lister.calls != 1 {
		t.Errorf("Second read must come from cache, store reads: %d", lister.calls)
	}
	if second != first {
		t.Error("Expected the cached snapshot instance")
	}
}

func TestRadarStatsServiceInvalidateForcesRecompute(t *testing.T) {
	ctx := context.Background()
	lister := &mockTrackLister{}
	svc := NewRadarStatsService(lister, common.NewCacheService(300, 600), nil)

	if _, err := svc.Get(ctx); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	svc.Invalidate()
	if _, err := svc.Get(ctx); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if lister.calls != 2 {
		t.Errorf("Expected a recompute after Invalidate, store reads: %d", lister.calls)
	}
}

func TestRadarStatsServiceStoreErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("database locked")
	lister := &mockTrackLister{
		ListAllFunc: func(ctx context.Context) ([]entities.FlightTrack, error) {
			return nil, storeErr
		},
	}
	svc := NewRadarStatsService(lister, common.NewCacheService(300, 600), nil)

	if _, err := svc.Get(ctx); !errors.Is(err, storeErr) {
		t.Errorf("Expected the store error to surface, got %v", err)
	}

	// An error must not poison the cache.
	lister.ListAllFunc = nil
	stats, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get after recovery failed: %v", err)
	}
	if stats.TotalMissions != 0 {
		t.Errorf("Expected a fresh empty snapshot, got %+v", stats)
	}
}

func TestRadarStatsServiceRefreshWarmsCache(t *testing.T) {
	ctx := context.Background()
	lister := &mockTrackLister{}
	svc := NewRadarStatsService(lister, common.NewCacheService(300, 600), nil)

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if _, err := svc.Get(ctx); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if lister.calls != 1 {
		t.Errorf("Get after Refresh must hit the warm cache, store reads: %d", lister.calls)
	}
}
