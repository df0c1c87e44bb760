package dtos

import "blackbox/flightlog/internal/models/entities"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// RadarStats is the derived snapshot behind the analytics screen. It is
// recomputed from the full record set on demand and never persisted.
type RadarStats struct {
	TotalFlightHours   float64        `json:"totalFlightHours"`
	TotalMissions      int            `json:"totalMissions"`
	MonthlySorties     int            `json:"monthlySorties"`
	AvgDurationMinutes float64        `json:"avgDurationMinutes"`
	HourlyDistribution [24]int        `json:"hourlyDistribution"`
	WeeklyDistribution [7]int         `json:"weeklyDistribution"`
	RecentExperience   []int          `json:"recentExperience"`
	LandingStats       LandingStats   `json:"landingStats"`
	AvgExperience      float64        `json:"avgExperience"`
	TopLocations       []LocationRank `json:"topLocations"`
	GeoDiversity       int            `json:"geoDiversity"`
}

type LandingStats struct {
	Normal     int     `json:"normal"`
	Forced     int     `json:"forced"`
	ForcedRate float64 `json:"forcedRate"`
}

type LocationRank struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CockpitStats backs the home screen header: sortie counts for today and
// the current month plus the most recent record.
type CockpitStats struct {
	Today            int                   `json:"today"`
	Month            int                   `json:"month"`
	TotalFlightHours float64               `json:"totalFlightHours"`
	LastFlight       *entities.FlightTrack `json:"lastFlight"`
}

// SessionStatus is a read-only snapshot of the session state machine.
type SessionStatus struct {
	State           string   `json:"state"`
	IsFlying        bool     `json:"isFlying"`
	Loading         bool     `json:"loading"`
	LoadingMessage  string   `json:"loadingMessage,omitempty"`
	TakeoffTime     string   `json:"takeoffTime,omitempty"`
	TakeoffLat      *float64 `json:"takeoffLat,omitempty"`
	TakeoffLong     *float64 `json:"takeoffLong,omitempty"`
	TakeoffLocation *string  `json:"takeoffLocation,omitempty"`
}

type StartFlightResponse struct {
	State   string `json:"state"`
	Warning string `json:"warning,omitempty"`
}

type EndFlightResponse struct {
	TrackID int64  `json:"trackId"`
	Warning string `json:"warning,omitempty"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}
