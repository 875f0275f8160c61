package config

import "time"

const (
	// Karma
	KarmaResolveReward = 10

	// Punishment
	PunishmentVoteThreshold = 10

	// Archival
	ArchiveVoteThreshold = -5 // complaints strictly below this are candidates
	ArchiveMinAge        = 3 * 24 * time.Hour
	ArchiveInterval      = 24 * time.Hour
	ArchiveLockTTL       = 10 * time.Minute

	// Aggregates
	TrendingWindow       = 7 * 24 * time.Hour
	LeaderboardSize      = 5
	KarmaLeaderboardSize = 10
	AggregateCacheTTL    = 30 * time.Second

	// Storage conflict handling
	ConflictRetryAttempts = 3
	ConflictRetryBackoff  = 50 * time.Millisecond
)
