package constants

import "time"

const (
	// An unfinished fixture counts as live for this long after its
	// scheduled start.
	MatchDuration = 120 * time.Minute

	// Rolling window for the upcoming bucket on the overview view.
	UpcomingHorizon = 24 * time.Hour

	// How far back the results feed is queried.
	ResultsLookback = 7 * 24 * time.Hour

	// The schedule feed is queried slightly into the past so fixtures
	// that already kicked off still show up as live.
	ScheduleLookback = 3 * time.Hour
)

const (
	TournamentRefreshTTL = 12 * time.Hour
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	CargoQueryLimit = 500
)
