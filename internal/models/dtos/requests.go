package dtos

import (
	"fmt"

	"blackbox/flightlog/internal/constants"
)

type EndFlightRequest struct {
	LandingType string `json:"landingType"`
}

// TrackUpdateRequest carries a partial update; nil fields are left alone.
// Double-pointer-free on purpose: clearing a nullable column is done by
// sending an empty string / out-of-band delete, which the mobile client
// never did either.
type TrackUpdateRequest struct {
	Note             *string `json:"note"`
	FlightExperience *int    `json:"flightExperience"`
	LandingType      *string `json:"landingType"`
	TakeoffLocation  *string `json:"takeoffLocation"`
	LandingLocation  *string `json:"landingLocation"`
}

// Updates validates the request and returns the column map for a partial
// UPDATE. An empty map means there is nothing to do.
func (r *TrackUpdateRequest) Updates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if r.Note != nil {
		updates["note"] = *r.Note
	}
	if r.FlightExperience != nil {
		if *r.FlightExperience < 0 || *r.FlightExperience > 10 {
			return nil, fmt.Errorf("flightExperience must be between 0 and 10, got %d", *r.FlightExperience)
		}
		updates["flight_experience"] = *r.FlightExperience
	}
	if r.LandingType != nil {
		if *r.LandingType != constants.LandingTypeNormal && *r.LandingType != constants.LandingTypeForced {
			return nil, fmt.Errorf("landingType must be %s or %s", constants.LandingTypeNormal, constants.LandingTypeForced)
		}
		updates["landing_type"] = *r.LandingType
	}
	if r.TakeoffLocation != nil {
		updates["takeoff_location"] = *r.TakeoffLocation
	}
	if r.LandingLocation != nil {
		updates["landing_location"] = *r.LandingLocation
	}

	return updates, nil
}
