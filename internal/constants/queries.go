package constants

// Raw SQL used by the sqlx stats repository. Hour/weekday grouping is done
// in SQLite 'localtime' so the buckets line up with the in-memory engine,
// which computes them in the process-local zone.
const (
	CountTakeoffsBetween = `
	SELECT COUNT(*) FROM flight_tracks
	WHERE takeoff_time >= $1 AND takeoff_time < $2
	`

	SumFlightSeconds = `
	SELECT COALESCE(SUM(strftime('%s', landing_time) - strftime('%s', takeoff_time)), 0)
	FROM flight_tracks
	`

	AvgFlightExperience = `
	SELECT COALESCE(AVG(flight_experience), 0) FROM flight_tracks
	`

	CountByLandingType = `
	SELECT landing_type, COUNT(*) AS count FROM flight_tracks
	GROUP BY landing_type
	`

	CountByTakeoffHour = `
	SELECT CAST(strftime('%H', takeoff_time, 'localtime') AS INTEGER) AS bucket, COUNT(*) AS count
	FROM flight_tracks
	GROUP BY bucket
	`

	CountByTakeoffWeekday = `
	SELECT CAST(strftime('%w', takeoff_time, 'localtime') AS INTEGER) AS bucket, COUNT(*) AS count
	FROM flight_tracks
	GROUP BY bucket
	`
)
