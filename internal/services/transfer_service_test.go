package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"blackbox/flightlog/internal/db/repositories"
	"blackbox/flightlog/internal/models/entities"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTransferRepo(t *testing.T) *repositories.TrackRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&entities.FlightTrack{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return repositories.NewTrackRepository(db)
}

func TestImportNewestFirstBackup(t *testing.T) {
	ctx := context.Background()
	repo := setupTransferRepo(t)
	svc := NewTransferService(repo)

	// A newest-first export, ids from the source device.
	payload := `[
		{"id": 12, "takeoffTime": "2026-01-05T08:00:00Z", "landingTime": "2026-01-05T09:00:00Z", "landingType": "NORMAL"},
		{"id": 11, "takeoffTime": "2026-01-04T08:00:00Z", "landingTime": "2026-01-04T09:00:00Z", "landingType": "FORCED"}
	]`

	result, err := svc.Import(ctx, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 2 || result.Failed != 0 {
		t.Fatalf("Expected 2 imported, got %+v", result)
	}

	tracks, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("Expected 2 stored tracks, got %d", len(tracks))
	}
	// Source ids are stripped; the array is walked in reverse so the
	// older flight gets the smaller assigned id.
	for _, track := range tracks {
		if track.ID == 11 || track.ID == 12 {
			t.Errorf("Source id must not survive import: %+v", track)
		}
	}
	if tracks[0].TakeoffTime != "2026-01-05T08:00:00Z" {
		t.Errorf("Expected newest first from ListAll, got %s", tracks[0].TakeoffTime)
	}
	if !(tracks[1].ID < tracks[0].ID) {
		t.Errorf("Older flight must carry the smaller id: %d vs %d", tracks[1].ID, tracks[0].ID)
	}
}

func TestImportSkipsInvalidRows(t *testing.T) {
	ctx := context.Background()
	repo := setupTransferRepo(t)
	svc := NewTransferService(repo)

	payload := `[
		{"takeoffTime": "2026-01-05T08:00:00Z", "landingTime": "2026-01-05T09:00:00Z", "landingType": "NORMAL"},
		{"takeoffTime": "2026-01-04T08:00:00Z", "landingTime": "2026-01-04T09:00:00Z", "landingType": "CRASHED"},
		{"takeoffTime": "", "landingTime": "2026-01-03T09:00:00Z", "landingType": "NORMAL"},
		{"takeoffTime": "2026-01-02T08:00:00Z", "landingTime": "2026-01-02T09:00:00Z", "landingType": "NORMAL", "flightExperience": 99}
	]`

	result, err := svc.Import(ctx, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 1 || result.Failed != 3 {
		t.Errorf("Expected 1 imported / 3 failed, got %+v", result)
	}
}

func TestImportRejectsNonArrayPayload(t *testing.T) {
	svc := NewTransferService(setupTransferRepo(t))

	if _, err := svc.Import(context.Background(), strings.NewReader(`{"not":"an array"}`)); err == nil {
		t.Error("Expected an error for a non-array payload")
	}
	if _, err := svc.Import(context.Background(), strings.NewReader(`[{`)); err == nil {
		t.Error("Expected an error for truncated JSON")
	}
}

func TestExportRoundtrip(t *testing.T) {
	ctx := context.Background()
	repo := setupTransferRepo(t)
	svc := NewTransferService(repo)

	exp := 7
	note := "gusty crosswind"
	seeds := []*entities.FlightTrack{
		{
			TakeoffTime: "2026-01-04T08:00:00Z",
			LandingTime: "2026-01-04T09:00:00Z",
			LandingType: "FORCED",
		},
		{
			TakeoffTime:      "2026-01-05T08:00:00Z",
			LandingTime:      "2026-01-05T09:00:00Z",
			LandingType:      "NORMAL",
			Note:             &note,
			FlightExperience: &exp,
		},
	}
	for _, track := range seeds {
		if _, err := repo.InsertTrack(ctx, track); err != nil {
			t.Fatalf("Seeding failed: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var exported []entities.FlightTrack
	if err := json.Unmarshal(buf.Bytes(), &exported); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(exported) != 2 {
		t.Fatalf("Expected 2 exported tracks, got %d", len(exported))
	}
	if exported[0].TakeoffTime != "2026-01-05T08:00:00Z" {
		t.Errorf("Export must be newest first, got %s", exported[0].TakeoffTime)
	}
	if exported[0].Note == nil || *exported[0].Note != note {
		t.Errorf("Note lost in export: %+v", exported[0])
	}

	// The export must re-import cleanly.
	fresh := setupTransferRepo(t)
	result, err := NewTransferService(fresh).Import(ctx, &buf)
	if err != nil {
		t.Fatalf("Re-import failed: %v", err)
	}
	if result.Imported != 2 || result.Failed != 0 {
		t.Errorf("Expected a clean re-import, got %+v", result)
	}
}

func TestExportEmptyStoreYieldsEmptyArray(t *testing.T) {
	svc := NewTransferService(setupTransferRepo(t))

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("Expected an empty JSON array, got %q", got)
	}
}
