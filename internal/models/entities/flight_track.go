package entities

// FlightTrack is one completed takeoff-to-landing record ("sortie").
// Timestamps are stored as ISO-8601 text so rows sort lexicographically
// the same way they sort chronologically, and so exports from older
// mobile builds import unchanged.
type FlightTrack struct {
	ID          int64  `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	TakeoffTime string `json:"takeoffTime" db:"takeoff_time" gorm:"column:takeoff_time;not null"`
	LandingTime string `json:"landingTime" db:"landing_time" gorm:"column:landing_time;not null"`

	TakeoffLat      *float64 `json:"takeoffLat" db:"takeoff_lat" gorm:"column:takeoff_lat"`
	TakeoffLong     *float64 `json:"takeoffLong" db:"takeoff_long" gorm:"column:takeoff_long"`
	TakeoffLocation *string  `json:"takeoffLocation" db:"takeoff_location" gorm:"column:takeoff_location"`

	LandingLat      *float64 `json:"landingLat" db:"landing_lat" gorm:"column:landing_lat"`
	LandingLong     *float64 `json:"landingLong" db:"landing_long" gorm:"column:landing_long"`
	LandingLocation *string  `json:"landingLocation" db:"landing_location" gorm:"column:landing_location"`

	LandingType      string  `json:"landingType" db:"landing_type" gorm:"column:landing_type;not null"`
	Note             *string `json:"note" db:"note" gorm:"column:note"`
	FlightExperience *int    `json:"flightExperience" db:"flight_experience" gorm:"column:flight_experience"`
}

func (FlightTrack) TableName() string {
	return "flight_tracks"
}

// NormalizeCoordinates clears half-set lat/long pairs. A lone latitude or
// longitude is a data error, not a valid fix, so both sides are dropped.
func (t *FlightTrack) NormalizeCoordinates() {
	if (t.TakeoffLat == nil) != (t.TakeoffLong == nil) {
		t.TakeoffLat, t.TakeoffLong = nil, nil
	}
	if (t.LandingLat == nil) != (t.LandingLong == nil) {
		t.LandingLat, t.LandingLong = nil, nil
	}
}
