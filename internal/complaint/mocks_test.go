package complaint_test

import (
	"time"

	"flatfeud/backend/internal/models"
	"flatfeud/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
// It uses testify/mock to allow flexible expectation setting in tests.
type MockStorage struct {
	mock.Mock
}

// User operations
func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUsersByIDs(ids []string) ([]models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) BestFlatmate() (*models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) TopKarmaUsers(limit int) ([]models.User, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// Complaint operations
func (m *MockStorage) CreateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) GetActiveComplaints() ([]models.Complaint, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) AddVote(id string, delta int) (*models.Complaint, error) {
	args := m.Called(id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) AssignPunishmentIfAbsent(id, text string) (bool, error) {
	args := m.Called(id, text)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) ResolveComplaint(id, resolverID string, reward int) (*models.Complaint, *models.User, error) {
	args := m.Called(id, resolverID, reward)
	var complaint *models.Complaint
	var resolver *models.User
	if args.Get(0) != nil {
		complaint = args.Get(0).(*models.Complaint)
	}
	if args.Get(1) != nil {
		resolver = args.Get(1).(*models.User)
	}
	return complaint, resolver, args.Error(2)
}

func (m *MockStorage) ArchiveStale(olderThan time.Time, voteThreshold int) (int64, error) {
	args := m.Called(olderThan, voteThreshold)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) TrendingComplaint(since time.Time) (*models.Complaint, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ComplaintCountsByAuthor(limit int) ([]storage.AuthorCount, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.AuthorCount), args.Error(1)
}

func (m *MockStorage) ComplaintCountsByType() ([]storage.TypeCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.TypeCount), args.Error(1)
}

// Cache operations
func (m *MockStorage) CacheGet(key string, dest any) (bool, error) {
	args := m.Called(key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CacheSet(key string, value any, ttl time.Duration) error {
	args := m.Called(key, value, ttl)
	return args.Error(0)
}

func (m *MockStorage) CacheInvalidate(keys ...string) error {
	args := m.Called(keys)
	return args.Error(0)
}

func (m *MockStorage) AcquireSweepLock(ttl time.Duration) (bool, error) {
	args := m.Called(ttl)
	return args.Bool(0), args.Error(1)
}

// expectCacheMiss wires the cache methods as a pass-through, which is the
// default posture for most service tests.
func (m *MockStorage) expectCacheMiss() {
	m.On("CacheGet", mock.Anything, mock.Anything).Return(false, nil).Maybe()
	m.On("CacheSet", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("CacheInvalidate", mock.Anything).Return(nil).Maybe()
}
