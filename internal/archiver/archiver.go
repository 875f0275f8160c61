// Package archiver runs the periodic sweep that demotes stale,
// heavily-downvoted complaints to Archived.
package archiver

import (
	"log"
	"time"

	"flatfeud/backend/internal/config"
	"flatfeud/backend/internal/storage"
)

// Service відповідає за щоденне архівування скарг.
// It talks to the rest of the system only through the shared store.
type Service struct {
	Storage  storage.Storage
	Interval time.Duration

	// Now is injectable so tests can pin the cutoff calculation.
	Now func() time.Time
}

// NewService створює новий Archiver.
func NewService(s storage.Storage) *Service {
	return &Service{
		Storage:  s,
		Interval: config.ArchiveInterval,
		Now:      time.Now,
	}
}

// Run запускає основну Goroutine Archiver'а.
// A failed or panicking sweep is logged and retried on the next tick; it
// must never take the hosting process down with it.
func (a *Service) Run() {
	log.Println("Archiver Service started.")

	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()

	for range ticker.C {
		a.runOnce()
	}
}

func (a *Service) runOnce() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Archival sweep panicked: %v", r)
		}
	}()

	if _, err := a.Sweep(); err != nil {
		log.Printf("ERROR: Archival sweep failed: %v", err)
	}
}

// Sweep archives every Active complaint older than the cutoff with a vote
// count below the archive threshold, and returns how many were affected.
// Idempotent: with no newly-qualifying complaints it changes nothing.
func (a *Service) Sweep() (int64, error) {
	locked, err := a.Storage.AcquireSweepLock(config.ArchiveLockTTL)
	if err != nil {
		// The lock is best-effort; a broken Redis must not stall archival.
		log.Printf("WARN: Sweep lock check failed, proceeding anyway: %v", err)
	} else if !locked {
		log.Println("Archival sweep skipped: another instance holds the lock.")
		return 0, nil
	}

	cutoff := a.Now().Add(-config.ArchiveMinAge)
	count, err := a.Storage.ArchiveStale(cutoff, config.ArchiveVoteThreshold)
	if err != nil {
		return 0, err
	}

	log.Printf("Archived %d complaints.", count)
	return count, nil
}
