package services

import (
	"sort"
	"time"

	"blackbox/flightlog/internal/constants"
	"blackbox/flightlog/internal/models/dtos"
	"blackbox/flightlog/internal/models/entities"
)

// ComputeRadarStats derives the full analytics snapshot from a record
// set. Pure: the input slice is never mutated, and `now`/`loc` are
// injected so results are reproducible under test. An empty set yields
// zeroed fields, never NaN. A malformed record degrades (its bad field
// is skipped) without aborting the rest of the computation.
//
// Local time is deliberate throughout: the hourly and weekly histograms
// describe the user's personal rhythm, not UTC bookkeeping.
func ComputeRadarStats(tracks []entities.FlightTrack, now time.Time, loc *time.Location) *dtos.RadarStats {
	if loc == nil {
		loc = time.Local
	}
	stats := &dtos.RadarStats{
		RecentExperience: []int{},
		TopLocations:     []dtos.LocationRank{},
		TotalMissions:    len(tracks),
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	var totalSeconds float64
	for _, track := range tracks {
		takeoff, takeoffOk := parseTime(track.TakeoffTime)
		landing, landingOk := parseTime(track.LandingTime)

		// Sum per-record seconds, then convert once: averaging first
		// would accumulate rounding drift across the set.
		if takeoffOk && landingOk {
			seconds := landing.Sub(takeoff).Seconds()
			if seconds < 0 {
				// Pre-existing malformed rows (landing before takeoff)
				// contribute zero duration but still count as missions.
				seconds = 0
			}
			totalSeconds += seconds
		}

		if takeoffOk {
			local := takeoff.In(loc)
			stats.HourlyDistribution[local.Hour()]++
			stats.WeeklyDistribution[int(local.Weekday())]++
			if !local.Before(monthStart) && local.Before(nextMonthStart) {
				stats.MonthlySorties++
			}
		}

		if track.LandingType == constants.LandingTypeForced {
			stats.LandingStats.Forced++
		} else {
			stats.LandingStats.Normal++
		}
	}

	stats.TotalFlightHours = totalSeconds / 3600
	if stats.TotalMissions > 0 {
		stats.AvgDurationMinutes = totalSeconds / float64(stats.TotalMissions) / 60
		stats.LandingStats.ForcedRate = float64(stats.LandingStats.Forced) / float64(stats.TotalMissions)
	}

	stats.RecentExperience = recentExperienceTrend(tracks)
	stats.AvgExperience = averageExperience(tracks)
	stats.TopLocations, stats.GeoDiversity = rankLocations(tracks)

	return stats
}

// recentExperienceTrend picks the 10 most recent records by takeoff time,
// keeps the rated ones, and returns them oldest-first, which is the order
// a trend chart draws. The window is cut before filtering: unrated recent
// flights shrink the result rather than pulling older ratings in.
func recentExperienceTrend(tracks []entities.FlightTrack) []int {
	recent := sortedByTakeoffDesc(tracks)
	if len(recent) > 10 {
		recent = recent[:10]
	}

	trend := []int{}
	for i := len(recent) - 1; i >= 0; i-- {
		if exp := recent[i].FlightExperience; exp != nil {
			trend = append(trend, *exp)
		}
	}
	return trend
}

func averageExperience(tracks []entities.FlightTrack) float64 {
	sum, rated := 0, 0
	for _, track := range tracks {
		if track.FlightExperience != nil {
			sum += *track.FlightExperience
			rated++
		}
	}
	if rated == 0 {
		return 0
	}
	return float64(sum) / float64(rated)
}

// rankLocations builds the top-5 frequency ranking and the diversity
// count. Takeoff names feed both; landing names feed only the diversity
// set. The asymmetry is inherited behavior the analytics screen has
// always shown and is covered by tests, so keep it when touching this.
func rankLocations(tracks []entities.FlightTrack) ([]dtos.LocationRank, int) {
	counts := make(map[string]int)
	var order []string
	unique := make(map[string]struct{})

	for _, track := range tracks {
		if name := entities.DeriveLocationName(track.TakeoffLocation); name != "" {
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
			unique[name] = struct{}{}
		}
		if name := entities.DeriveLocationName(track.LandingLocation); name != "" {
			unique[name] = struct{}{}
		}
	}

	ranking := make([]dtos.LocationRank, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, dtos.LocationRank{Name: name, Count: counts[name]})
	}
	// Stable sort keeps first-encountered order among equal counts.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if len(ranking) > 5 {
		ranking = ranking[:5]
	}

	return ranking, len(unique)
}

func sortedByTakeoffDesc(tracks []entities.FlightTrack) []entities.FlightTrack {
	sorted := make([]entities.FlightTrack, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, iOk := parseTime(sorted[i].TakeoffTime)
		tj, jOk := parseTime(sorted[j].TakeoffTime)
		if iOk != jOk {
			return iOk
		}
		return ti.After(tj)
	})
	return sorted
}

func parseTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
