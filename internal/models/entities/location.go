package entities

import (
	"encoding/json"
	"strings"
)

// Address is the structured reverse-geocoded form stored (JSON-encoded)
// in takeoff_location / landing_location. Legacy rows may hold a plain
// string instead of a serialized Address.
type Address struct {
	Country  string `json:"country,omitempty"`
	Province string `json:"province,omitempty"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
	Street   string `json:"street,omitempty"`
	Name     string `json:"name,omitempty"`
	Address  string `json:"address,omitempty"`
}

// DeriveLocationName reduces a stored location value to a display/ranking
// name. Precedence for structured addresses: city, district, name, address.
// Values that are not JSON objects are used verbatim; no fuzzy matching is
// attempted, so {"city":"Beijing"} and the raw string "Beijing Airport"
// stay two distinct names. Returns "" when nothing usable is present.
func DeriveLocationName(stored *string) string {
	if stored == nil {
		return ""
	}
	raw := strings.TrimSpace(*stored)
	if raw == "" {
		return ""
	}

	var addr Address
	if err := json.Unmarshal([]byte(raw), &addr); err != nil || raw[0] != '{' {
		// Legacy/foreign format: the raw string is the name.
		return raw
	}

	for _, candidate := range []string{addr.City, addr.District, addr.Name, addr.Address} {
		if name := strings.TrimSpace(candidate); name != "" {
			return name
		}
	}
	return ""
}
