package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"blackbox/flightlog/internal/db/repositories"
	"blackbox/flightlog/internal/models/entities"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCockpitService(t *testing.T) (*CockpitStatsService, *repositories.TrackRepository) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cockpit_test.db")

	orm, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database (GORM): %v", err)
	}
	if err := orm.AutoMigrate(&entities.FlightTrack{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	raw, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open database (sqlx): %v", err)
	}
	t.Cleanup(func() { _ = raw.Close() })

	tracks := repositories.NewTrackRepository(orm)
	return NewCockpitStatsService(tracks, repositories.NewTrackStatsRepository(raw)), tracks
}

func TestCockpitStatsEmptyStore(t *testing.T) {
	svc, _ := setupCockpitService(t)

	stats, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stats.Today != 0 || stats.Month != 0 || stats.TotalFlightHours != 0 {
		t.Errorf("Empty store must read all zeros, got %+v", stats)
	}
	if stats.LastFlight != nil {
		t.Errorf("Expected no last flight, got %+v", stats.LastFlight)
	}
}

func TestCockpitStats(t *testing.T) {
	ctx := context.Background()
	svc, tracks := setupCockpitService(t)

	// One flight early today (anchored to local midnight so the test does
	// not depend on when it runs), one far in the past.
	now := time.Now().In(time.Local)
	todayTakeoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, time.Local)

	seeds := []*entities.FlightTrack{
		{
			TakeoffTime: todayTakeoff.UTC().Format(time.RFC3339),
			LandingTime: todayTakeoff.Add(30 * time.Minute).UTC().Format(time.RFC3339),
			LandingType: "NORMAL",
		},
		{
			TakeoffTime: "2020-06-01T10:00:00Z",
			LandingTime: "2020-06-01T11:00:00Z",
			LandingType: "FORCED",
		},
	}
	for _, track := range seeds {
		if _, err := tracks.InsertTrack(ctx, track); err != nil {
			t.Fatalf("Seeding failed: %v", err)
		}
	}

	stats, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stats.Today != 1 {
		t.Errorf("Expected 1 sortie today, got %d", stats.Today)
	}
	if stats.Month != 1 {
		t.Errorf("Expected 1 sortie this month, got %d", stats.Month)
	}
	if stats.TotalFlightHours != 1.5 {
		t.Errorf("Expected 1.5 lifetime hours, got %f", stats.TotalFlightHours)
	}
	if stats.LastFlight == nil || stats.LastFlight.TakeoffTime != seeds[0].TakeoffTime {
		t.Errorf("Expected the recent flight as last, got %+v", stats.LastFlight)
	}
}
