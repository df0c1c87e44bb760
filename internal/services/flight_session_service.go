package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"blackbox/flightlog/internal/common"
	"blackbox/flightlog/internal/constants"
	"blackbox/flightlog/internal/logging"
	"blackbox/flightlog/internal/models/dtos"
	"blackbox/flightlog/internal/models/entities"
	"blackbox/flightlog/internal/providers"
)

// SessionState is the lifecycle phase of the single in-progress flight
type SessionState string

const (
	StateIdle       SessionState = "IDLE"
	StatePreparing  SessionState = "PREPARING"
	StateFlying     SessionState = "FLYING"
	StateEnding     SessionState = "ENDING"
	StateDiscarding SessionState = "DISCARDING"
)

// ErrLandingBeforeTakeoff is returned when the clock says the flight
// would end at or before its own takeoff. The draft is kept so the user
// can retry once the clock is sane again.
var ErrLandingBeforeTakeoff = errors.New("landing time not after takeoff time")

// TrackRecorder is the slice of the record store the session machine
// needs: one durable insert.
type TrackRecorder interface {
	InsertTrack(ctx context.Context, track *entities.FlightTrack) (int64, error)
}

// StartResult reports a successful start. Warning, when set, names a
// recoverable location problem (timeout / permission / no fix) the
// caller may surface; the flight records without coordinates either way.
type StartResult struct {
	Warning string
}

// EndResult reports a successful end with the new record's id.
type EndResult struct {
	TrackID int64
	Warning string
}

// FlightSessionService is the state machine for the one in-progress
// flight: IDLE -> PREPARING -> FLYING -> ENDING -> IDLE, with discard
// collapsing FLYING back to IDLE. One instance per process; every
// mutation holds the lock, and the durable write always lands before the
// in-memory state flips so a crash can never leave a FLYING state with
// no draft behind it.
type FlightSessionService struct {
	mu      sync.Mutex
	state   SessionState
	draft   *entities.FlightDraft
	loading bool
	message string

	kv       common.KVStore
	location providers.LocationProvider
	tracks   TrackRecorder

	clock func() time.Time
}

func NewFlightSessionService(kv common.KVStore, location providers.LocationProvider, tracks TrackRecorder) *FlightSessionService {
	return &FlightSessionService{
		state:    StateIdle,
		kv:       kv,
		location: location,
		tracks:   tracks,
		clock:    time.Now,
	}
}

// Status returns a read-only snapshot for the cockpit view
func (s *FlightSessionService) Status() dtos.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := dtos.SessionStatus{
		State:          string(s.state),
		IsFlying:       s.state == StateFlying,
		Loading:        s.loading,
		LoadingMessage: s.message,
	}
	if s.draft != nil {
		status.TakeoffTime = s.draft.TakeoffTime
		status.TakeoffLat = s.draft.TakeoffLat
		status.TakeoffLong = s.draft.TakeoffLong
		status.TakeoffLocation = s.draft.TakeoffLocation
	}
	return status
}

// StartFlight begins a new session: acquires a takeoff fix with a bounded
// wait, persists the draft, then flips to FLYING. Returns (nil, nil) when
// a session is already underway, so a double-tap cannot corrupt the
// draft. If the draft cannot be persisted the start fails and the state
// stays IDLE.
func (s *FlightSessionService) StartFlight(ctx context.Context) (*StartResult, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		logging.Debug("StartFlight ignored", "state", string(s.state))
		return nil, nil
	}
	s.state = StatePreparing
	s.loading = true
	s.message = constants.MsgPreparingTakeoff
	s.mu.Unlock()

	result := &StartResult{}
	fix := s.acquireFix(ctx, result)

	// UTC on disk; local time is a presentation/aggregation concern.
	draft := &entities.FlightDraft{
		IsFlying:    true,
		TakeoffTime: s.clock().UTC().Format(time.RFC3339),
	}
	if fix != nil {
		lat, long := fix.Latitude, fix.Longitude
		draft.TakeoffLat = &lat
		draft.TakeoffLong = &long
		if encoded := encodeAddress(fix.Address); encoded != nil {
			draft.TakeoffLocation = encoded
		}
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		s.settle(StateIdle, nil)
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.kv.Set(ctx, constants.DraftStorageKey, string(payload)); err != nil {
		// No durable backing, no flight: a FLYING state that cannot
		// survive a restart is worse than a failed start.
		s.settle(StateIdle, nil)
		return nil, fmt.Errorf("failed to persist draft: %w", err)
	}

	s.settle(StateFlying, draft)
	logging.Info("Flight started",
		"takeoff_time", draft.TakeoffTime,
		"has_fix", fix != nil,
		"warning", result.Warning,
	)
	return result, nil
}

// EndFlight completes the session: acquires a landing fix, writes the
// record, and only then removes the draft and returns to IDLE. Returns
// (nil, nil) when no flight is in progress. On a store failure the draft
// and FLYING state are preserved so the flight is not silently lost and
// the caller can retry.
func (s *FlightSessionService) EndFlight(ctx context.Context, landingType string) (*EndResult, error) {
	if landingType != constants.LandingTypeForced {
		landingType = constants.LandingTypeNormal
	}

	s.mu.Lock()
	if s.state != StateFlying || s.draft == nil {
		s.mu.Unlock()
		logging.Debug("EndFlight ignored", "state", string(s.state))
		return nil, nil
	}
	draft := *s.draft
	s.state = StateEnding
	s.loading = true
	s.message = constants.MsgRecordingLanding
	s.mu.Unlock()

	result := &EndResult{}
	fix := s.acquireFix(ctx, result)

	landingTime := s.clock().UTC()
	takeoffTime, err := time.Parse(time.RFC3339, draft.TakeoffTime)
	if err == nil && !landingTime.After(takeoffTime) {
		s.settle(StateFlying, &draft)
		return nil, ErrLandingBeforeTakeoff
	}

	track := &entities.FlightTrack{
		TakeoffTime:     draft.TakeoffTime,
		LandingTime:     landingTime.Format(time.RFC3339),
		TakeoffLat:      draft.TakeoffLat,
		TakeoffLong:     draft.TakeoffLong,
		TakeoffLocation: draft.TakeoffLocation,
		LandingType:     landingType,
	}
	if fix != nil {
		lat, long := fix.Latitude, fix.Longitude
		track.LandingLat = &lat
		track.LandingLong = &long
		track.LandingLocation = encodeAddress(fix.Address)
	}

	s.setMessage(constants.MsgSavingTrack)
	id, err := s.tracks.InsertTrack(ctx, track)
	if err != nil {
		s.settle(StateFlying, &draft)
		return nil, fmt.Errorf("failed to save flight record: %w", err)
	}

	// The record is durable; a failed draft cleanup is only noise.
	if err := s.kv.Remove(ctx, constants.DraftStorageKey); err != nil {
		logging.Warn("Failed to remove flight draft after landing", "error", err.Error())
	}

	s.settle(StateIdle, nil)
	result.TrackID = id
	logging.Info("Flight recorded",
		"track_id", id,
		"landing_type", landingType,
		"warning", result.Warning,
	)
	return result, nil
}

// DiscardFlight abandons the in-progress flight without writing a
// record. Irreversible; confirmation is the caller's concern. No-op
// outside FLYING. The machine parks in DISCARDING while the draft is
// removed so a concurrent EndFlight cannot record the abandoned flight.
func (s *FlightSessionService) DiscardFlight(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateFlying {
		s.mu.Unlock()
		logging.Debug("DiscardFlight ignored", "state", string(s.state))
		return nil
	}
	draft := s.draft
	s.state = StateDiscarding
	s.loading = true
	s.message = constants.MsgDiscardingFlight
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, constants.DraftStorageKey); err != nil {
		s.settle(StateFlying, draft)
		return fmt.Errorf("failed to discard draft: %w", err)
	}

	s.settle(StateIdle, nil)
	logging.Info("Flight discarded")
	return nil
}

// Restore runs once at startup, before the cockpit view is served: a
// well-formed persisted draft reconstructs FLYING, anything else settles
// into IDLE. Store errors fail soft; losing a draft beats refusing to
// boot.
func (s *FlightSessionService) Restore(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.message = ""
		s.mu.Unlock()
	}()

	val, err := s.kv.Get(ctx, constants.DraftStorageKey)
	if err != nil {
		if !errors.Is(err, common.ErrKeyNotFound) {
			logging.Error("Failed to restore flight draft", "error", err.Error())
		}
		return
	}

	var draft entities.FlightDraft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		logging.Error("Persisted flight draft is malformed", "error", err.Error())
		return
	}
	if !draft.IsFlying || draft.TakeoffTime == "" {
		return
	}

	s.mu.Lock()
	s.state = StateFlying
	s.draft = &draft
	s.mu.Unlock()
	logging.Info("Restored in-progress flight", "takeoff_time", draft.TakeoffTime)
}

// acquireFix runs the permission check and the bounded location request,
// folding every failure into a warning: the flight always proceeds,
// coordinates or not.
func (s *FlightSessionService) acquireFix(ctx context.Context, warn interface{ setWarning(string) }) *providers.Fix {
	granted, err := s.location.RequestPermission(ctx)
	if err != nil || !granted {
		warn.setWarning(constants.WarnPermissionDenied)
		return nil
	}

	s.setMessage(constants.MsgAcquiringLocation)
	fixCtx, cancel := context.WithTimeout(ctx, constants.LocationFixTimeout)
	defer cancel()

	fix, err := s.location.CurrentFix(fixCtx)
	if err != nil {
		if errors.Is(err, providers.ErrLocationTimeout) || errors.Is(err, context.DeadlineExceeded) {
			logging.Warn("Location request timed out", "timeout", constants.LocationFixTimeout.String())
			warn.setWarning(constants.WarnLocationTimeout)
		} else {
			logging.Warn("Location request failed", "error", err.Error())
			warn.setWarning(constants.WarnNoLocationFix)
		}
		return nil
	}
	return fix
}

func (r *StartResult) setWarning(w string) { r.Warning = w }
func (r *EndResult) setWarning(w string)   { r.Warning = w }

func (s *FlightSessionService) setMessage(msg string) {
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

// settle moves the machine to a terminal state and clears the loading flag
func (s *FlightSessionService) settle(state SessionState, draft *entities.FlightDraft) {
	s.mu.Lock()
	s.state = state
	s.draft = draft
	s.loading = false
	s.message = ""
	s.mu.Unlock()
}

func encodeAddress(addr *entities.Address) *string {
	if addr == nil {
		return nil
	}
	data, err := json.Marshal(addr)
	if err != nil {
		return nil
	}
	encoded := string(data)
	return &encoded
}
