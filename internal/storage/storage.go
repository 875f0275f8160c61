package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"flatfeud/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Sentinel errors surfaced by the storage layer. The complaint service maps
// these onto API responses.
var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyResolved   = errors.New("complaint is already resolved")
)

// AuthorCount is one leaderboard row before the author name is resolved.
type AuthorCount struct {
	AuthorID        string `json:"authorId"`
	ComplaintsCount int    `json:"complaintsCount"`
}

// TypeCount is one row of the complaint-type statistics.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type Storage interface {
	// Users
	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersByIDs(ids []string) ([]models.User, error)
	BestFlatmate() (*models.User, error)
	TopKarmaUsers(limit int) ([]models.User, error)

	// Complaints
	CreateComplaint(complaint *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	GetActiveComplaints() ([]models.Complaint, error)
	AddVote(id string, delta int) (*models.Complaint, error)
	AssignPunishmentIfAbsent(id, text string) (bool, error)
	ResolveComplaint(id, resolverID string, reward int) (*models.Complaint, *models.User, error)
	ArchiveStale(olderThan time.Time, voteThreshold int) (int64, error)
	TrendingComplaint(since time.Time) (*models.Complaint, error)
	ComplaintCountsByAuthor(limit int) ([]AuthorCount, error)
	ComplaintCountsByType() ([]TypeCount, error)

	// Cache and cross-process coordination (Redis)
	CacheGet(key string, dest any) (bool, error)
	CacheSet(key string, value any, ttl time.Duration) error
	CacheInvalidate(keys ...string) error
	AcquireSweepLock(ttl time.Duration) (bool, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser зберігає користувача в PostgreSQL
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUsersByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := s.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// BestFlatmate повертає користувача з найбільшою кармою.
// An empty users table yields (nil, nil), not an error.
func (s *Service) BestFlatmate() (*models.User, error) {
	var user models.User
	err := s.DB.Order("karma_points DESC").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TopKarmaUsers returns up to limit users ordered by karma, best first.
func (s *Service) TopKarmaUsers(limit int) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("karma_points DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	result := s.DB.Create(complaint)
	if result.Error != nil {
		log.Printf("ERROR: Failed to save complaint %q: %v", complaint.Title, result.Error)
		return result.Error
	}
	return nil
}

func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.Preload("Author").First(&complaint, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// GetActiveComplaints повертає всі активні скарги разом з авторами.
func (s *Service) GetActiveComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Preload("Author").
		Where("status = ?", models.StatusActive).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to load active complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

// AddVote applies a +1/-1 delta as a single in-database increment, so two
// concurrent votes can never read the same base value, and returns the
// refreshed complaint.
func (s *Service) AddVote(id string, delta int) (*models.Complaint, error) {
	result := s.DB.Model(&models.Complaint{}).
		Where("id = ?", id).
		UpdateColumn("votes", gorm.Expr("votes + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrComplaintNotFound
	}
	return s.GetComplaintByID(id)
}

// AssignPunishmentIfAbsent sets the punishment only when none is recorded
// yet. The `punishment IS NULL` guard makes the assignment at-most-once even
// when two votes cross the threshold at the same moment. Returns whether
// this call won the assignment.
func (s *Service) AssignPunishmentIfAbsent(id, text string) (bool, error) {
	result := s.DB.Model(&models.Complaint{}).
		Where("id = ? AND punishment IS NULL", id).
		UpdateColumn("punishment", text)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ResolveComplaint flips the complaint to Resolved and credits the resolver's
// karma inside one transaction. If the resolver record is gone the whole
// transaction rolls back, so a complaint is never left Resolved without the
// reward having been granted.
func (s *Service) ResolveComplaint(id, resolverID string, reward int) (*models.Complaint, *models.User, error) {
	var complaint models.Complaint
	var resolver models.User

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&complaint, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrComplaintNotFound
			}
			return err
		}
		if complaint.Status == models.StatusResolved {
			return ErrAlreadyResolved
		}

		// The status guard repeats inside the UPDATE: a concurrent resolve
		// that committed between the read above and this write loses here.
		result := tx.Model(&models.Complaint{}).
			Where("id = ? AND status <> ?", id, models.StatusResolved).
			Updates(map[string]interface{}{
				"status":      models.StatusResolved,
				"resolved_by": resolverID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyResolved
		}

		credit := tx.Model(&models.User{}).
			Where("id = ?", resolverID).
			UpdateColumn("karma_points", gorm.Expr("karma_points + ?", reward))
		if credit.Error != nil {
			return credit.Error
		}
		if credit.RowsAffected == 0 {
			return ErrUserNotFound
		}

		if err := tx.First(&resolver, "id = ?", resolverID).Error; err != nil {
			return err
		}
		complaint.Status = models.StatusResolved
		complaint.ResolvedBy = &resolver.ID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &complaint, &resolver, nil
}

// ArchiveStale archives every Active complaint that is both heavily
// downvoted and older than the cutoff, in one bulk UPDATE. Restricting to
// Active rows means the sweep can never demote a Resolved complaint.
func (s *Service) ArchiveStale(olderThan time.Time, voteThreshold int) (int64, error) {
	result := s.DB.Model(&models.Complaint{}).
		Where("status = ? AND votes < ? AND created_at <= ?",
			models.StatusActive, voteThreshold, olderThan).
		UpdateColumn("status", models.StatusArchived)
	if result.Error != nil {
		log.Printf("ERROR: Failed to archive stale complaints: %v", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// TrendingComplaint повертає найбільш підтриману активну скаргу за період.
// No qualifying complaint yields (nil, nil).
func (s *Service) TrendingComplaint(since time.Time) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.Preload("Author").
		Where("status = ? AND created_at >= ?", models.StatusActive, since).
		Order("votes DESC").
		First(&complaint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ComplaintCountsByAuthor groups complaints by author and returns the top
// offenders by count, most complained-about first.
func (s *Service) ComplaintCountsByAuthor(limit int) ([]AuthorCount, error) {
	var rows []AuthorCount
	err := s.DB.Model(&models.Complaint{}).
		Select("author_id, COUNT(*) AS complaints_count").
		Group("author_id").
		Order("complaints_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ComplaintCountsByType groups complaints by type, most common first.
func (s *Service) ComplaintCountsByType() ([]TypeCount, error) {
	var rows []TypeCount
	err := s.DB.Model(&models.Complaint{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CacheGet завантажує закешоване значення з Redis.
// Повертає false, якщо ключа немає або кеш вимкнено.
func (s *Service) CacheGet(key string, dest any) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	raw, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// CacheSet зберігає значення в Redis з TTL.
func (s *Service) CacheSet(key string, value any, ttl time.Duration) error {
	if s.Redis == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Redis.Set(s.Ctx, key, raw, ttl).Err()
}

// CacheInvalidate видаляє ключі кешу після мутацій.
func (s *Service) CacheInvalidate(keys ...string) error {
	if s.Redis == nil || len(keys) == 0 {
		return nil
	}
	return s.Redis.Del(s.Ctx, keys...).Err()
}

// AcquireSweepLock takes the cross-process archival lock via SET NX, so at
// most one instance runs the daily sweep. With no Redis configured the lock
// is a no-op and the sweep always proceeds.
func (s *Service) AcquireSweepLock(ttl time.Duration) (bool, error) {
	if s.Redis == nil {
		return true, nil
	}
	return s.Redis.SetNX(s.Ctx, "archive_sweep_lock", time.Now().Unix(), ttl).Result()
}
