// Package complaint provides the core logic of the flat complaint lifecycle:
// filing, voting with punishment assignment, resolution with karma rewards,
// and the derived aggregate views.
package complaint

import (
	"errors"
	"fmt"
	"log"
	"time"

	"flatfeud/backend/internal/config"
	"flatfeud/backend/internal/models"
	"flatfeud/backend/internal/punishment"
	"flatfeud/backend/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidDirection = errors.New("vote must be \"up\" or \"down\"")
	ErrInvalidType      = errors.New("unknown complaint type")
	ErrInvalidSeverity  = errors.New("unknown complaint severity")
	ErrUnavailable      = errors.New("storage temporarily unavailable")
)

// Cache keys for the aggregate views. Mutations drop all of them.
const (
	cacheKeyLeaderboard = "agg:leaderboard"
	cacheKeyTypeStats   = "agg:type_stats"
	cacheKeyKarmaBoard  = "agg:karma_board"
)

// LeaderboardEntry is one row of the most-complained-about view, with the
// author reference already resolved to a display name.
type LeaderboardEntry struct {
	Name            string `json:"name"`
	ComplaintsCount int    `json:"complaintsCount"`
}

// Service handles the business logic for complaints.
type Service struct {
	Storage storage.Storage
	Picker  *punishment.Picker

	// Now is injectable so tests can pin the clock.
	Now func() time.Time
}

// NewService creates a new complaint service.
func NewService(s storage.Storage, p *punishment.Picker) *Service {
	return &Service{Storage: s, Picker: p, Now: time.Now}
}

// File creates a new Active complaint authored by the given user.
func (s *Service) File(authorID, title, description, ctype, severity string) (*models.Complaint, error) {
	if !models.ValidType(ctype) {
		return nil, ErrInvalidType
	}
	if !models.ValidSeverity(severity) {
		return nil, ErrInvalidSeverity
	}

	complaint := &models.Complaint{
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		Type:        ctype,
		Severity:    severity,
		Status:      models.StatusActive,
		CreatedAt:   s.Now(),
	}
	if err := s.Storage.CreateComplaint(complaint); err != nil {
		return nil, err
	}
	s.invalidateAggregates()
	return complaint, nil
}

// ListActive повертає всі активні скарги з іменами авторів.
func (s *Service) ListActive() ([]models.Complaint, error) {
	return s.Storage.GetActiveComplaints()
}

// Vote applies a single up/down vote. The counter update happens atomically
// in the store, and when the total first reaches the punishment threshold a
// random punishment from the catalog is attached permanently. Repeat votes by
// the same caller are allowed.
func (s *Service) Vote(id, direction string) (*models.Complaint, error) {
	var delta int
	switch direction {
	case "up":
		delta = 1
	case "down":
		delta = -1
	default:
		return nil, ErrInvalidDirection
	}

	var complaint *models.Complaint
	err := s.withRetry(func() error {
		var err error
		complaint, err = s.Storage.AddVote(id, delta)
		return err
	})
	if err != nil {
		return nil, err
	}

	if complaint.Votes >= config.PunishmentVoteThreshold && complaint.Punishment == nil {
		text := s.Picker.Pick()
		assigned, err := s.Storage.AssignPunishmentIfAbsent(id, text)
		switch {
		case err != nil:
			// The vote itself is committed; a transient failure here just
			// postpones the sentence until the next vote past the threshold.
			log.Printf("ERROR: Failed to assign punishment to complaint %s: %v", id, err)
		case assigned:
			complaint.Punishment = &text
		default:
			// Lost the race: a concurrent vote already attached one.
			if fresh, err := s.Storage.GetComplaintByID(id); err == nil {
				complaint = fresh
			}
		}
	}

	s.invalidateAggregates()
	return complaint, nil
}

// Resolve transitions the complaint to Resolved and credits the resolver
// with a fixed karma reward, as one atomic unit. Re-resolving fails with
// storage.ErrAlreadyResolved and never double-awards karma.
func (s *Service) Resolve(id, resolverID string) (*models.Complaint, *models.User, error) {
	var (
		complaint *models.Complaint
		resolver  *models.User
	)
	err := s.withRetry(func() error {
		var err error
		complaint, resolver, err = s.Storage.ResolveComplaint(id, resolverID, config.KarmaResolveReward)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.invalidateAggregates()
	return complaint, resolver, nil
}

// BestFlatmate returns the user with the highest karma, or nil when there
// are no users at all.
func (s *Service) BestFlatmate() (*models.User, error) {
	return s.Storage.BestFlatmate()
}

// Trending returns the highest-voted Active complaint filed within the
// trending window, or nil when nothing qualifies this week.
func (s *Service) Trending() (*models.Complaint, error) {
	since := s.Now().Add(-config.TrendingWindow)
	return s.Storage.TrendingComplaint(since)
}

// Leaderboard returns the top most-complained-about flatmates by complaint
// count. Authors whose user record is missing show up as "Unknown".
func (s *Service) Leaderboard() ([]LeaderboardEntry, error) {
	var cached []LeaderboardEntry
	if ok, _ := s.Storage.CacheGet(cacheKeyLeaderboard, &cached); ok {
		return cached, nil
	}

	counts, err := s.Storage.ComplaintCountsByAuthor(config.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(counts))
	for _, row := range counts {
		ids = append(ids, row.AuthorID)
	}
	users, err := s.Storage.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	entries := make([]LeaderboardEntry, 0, len(counts))
	for _, row := range counts {
		name, ok := names[row.AuthorID]
		if !ok {
			name = "Unknown"
		}
		entries = append(entries, LeaderboardEntry{Name: name, ComplaintsCount: row.ComplaintsCount})
	}

	if err := s.Storage.CacheSet(cacheKeyLeaderboard, entries, config.AggregateCacheTTL); err != nil {
		log.Printf("WARN: Failed to cache leaderboard: %v", err)
	}
	return entries, nil
}

// TypeStats returns complaint counts grouped by type, most common first.
func (s *Service) TypeStats() ([]storage.TypeCount, error) {
	var cached []storage.TypeCount
	if ok, _ := s.Storage.CacheGet(cacheKeyTypeStats, &cached); ok {
		return cached, nil
	}

	stats, err := s.Storage.ComplaintCountsByType()
	if err != nil {
		return nil, err
	}
	if err := s.Storage.CacheSet(cacheKeyTypeStats, stats, config.AggregateCacheTTL); err != nil {
		log.Printf("WARN: Failed to cache type stats: %v", err)
	}
	return stats, nil
}

// KarmaLeaderboard returns the top users by karma points, best first.
func (s *Service) KarmaLeaderboard() ([]models.User, error) {
	var cached []models.User
	if ok, _ := s.Storage.CacheGet(cacheKeyKarmaBoard, &cached); ok {
		return cached, nil
	}

	users, err := s.Storage.TopKarmaUsers(config.KarmaLeaderboardSize)
	if err != nil {
		return nil, err
	}
	if err := s.Storage.CacheSet(cacheKeyKarmaBoard, users, config.AggregateCacheTTL); err != nil {
		log.Printf("WARN: Failed to cache karma leaderboard: %v", err)
	}
	return users, nil
}

func (s *Service) invalidateAggregates() {
	err := s.Storage.CacheInvalidate(cacheKeyLeaderboard, cacheKeyTypeStats, cacheKeyKarmaBoard)
	if err != nil {
		log.Printf("WARN: Failed to invalidate aggregate caches: %v", err)
	}
}

// withRetry re-runs op a bounded number of times on transient Postgres
// conflicts before escalating to ErrUnavailable. Conflicts are never
// surfaced to the caller as user errors.
func (s *Service) withRetry(op func() error) error {
	var err error
	for attempt := 0; attempt < config.ConflictRetryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(config.ConflictRetryBackoff)
		}
		err = op()
		if err == nil || !retryable(err) {
			return err
		}
	}
	log.Printf("ERROR: Storage conflict persisted after %d attempts: %v", config.ConflictRetryAttempts, err)
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// retryable reports whether err is a serialization failure or deadlock, the
// two Postgres conditions worth retrying.
func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
