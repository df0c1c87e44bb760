package providers

import (
	"context"
	"errors"

	"blackbox/flightlog/internal/models/entities"
)

// ErrLocationTimeout means the bounded wait elapsed before a fix arrived.
// Callers treat it as recoverable but show a timeout-specific message.
var ErrLocationTimeout = errors.New("location request timed out")

// ErrNoFix means the agent answered but has no position available.
var ErrNoFix = errors.New("no location fix available")

// ErrPermissionDenied means the user refused location access on the device.
var ErrPermissionDenied = errors.New("location permission denied")

// Fix is one resolved position, optionally reverse-geocoded.
type Fix struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Address   *entities.Address `json:"address,omitempty"`
}

// LocationProvider supplies the current position with a caller-bounded
// wait: implementations must respect ctx cancellation and surface a
// deadline as ErrLocationTimeout, distinguishable from ErrNoFix.
type LocationProvider interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentFix(ctx context.Context) (*Fix, error)
}
