package constants

import "time"

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixRadarStats CachePrefix = "RADAR_STATS"
)

// Landing outcome values stored in flight_tracks.landing_type
const (
	LandingTypeNormal = "NORMAL"
	LandingTypeForced = "FORCED"
)

// DraftStorageKey is the single key-value entry holding the in-progress
// flight draft. The key name matches what the mobile client used, so
// restored backups keep working.
const DraftStorageKey = "flight_state"

// LocationFixTimeout bounds every location request; past it the flight
// proceeds without coordinates.
const LocationFixTimeout = 5 * time.Second

// Progress messages surfaced while a session operation is in flight
const (
	MsgPreparingTakeoff  = "Preparing for takeoff..."
	MsgAcquiringLocation = "Acquiring current location..."
	MsgRecordingLanding  = "Recording landing data..."
	MsgSavingTrack       = "Saving flight record..."
	MsgDiscardingFlight  = "Discarding flight..."
)

// Non-fatal warnings a session operation can return alongside success
const (
	WarnLocationTimeout  = "LOCATION_TIMEOUT"
	WarnPermissionDenied = "PERMISSION_DENIED"
	WarnNoLocationFix    = "NO_LOCATION_FIX"
)
