package entities

// FlightDraft is the single in-progress, not-yet-landed flight. It lives in
// memory inside the session service and, for crash safety, as one JSON value
// in the key-value store under constants.DraftStorageKey.
type FlightDraft struct {
	IsFlying        bool     `json:"is_flying"`
	TakeoffTime     string   `json:"takeoff_time"`
	TakeoffLat      *float64 `json:"takeoff_lat"`
	TakeoffLong     *float64 `json:"takeoff_long"`
	TakeoffLocation *string  `json:"takeoff_location"`
}
