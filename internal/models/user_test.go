package models_test

import (
	"testing"

	"flatfeud/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	// Arrange
	user := &models.User{
		Name:     "Olha",
		Email:    "olha@example.com",
		Password: "$2a$10$hash",
		FlatCode: "FLAT-42",
	}

	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	// Act - Call the hook directly (GORM would call this automatically)
	err := user.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	// Assert
	assert.NoError(t, err, "BeforeCreate should not return an error")
	assert.NotEmpty(t, user.ID, "User ID must be populated after BeforeCreate")

	parsedUUID, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsedUUID, "Generated UUID should not be nil UUID")
}

// TestUserBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	user := &models.User{
		ID:    existingID,
		Name:  "Taras",
		Email: "taras@example.com",
	}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID, "BeforeCreate should preserve existing ID")
}

// TestUserKarmaStartsAtZero documents that a fresh user has no karma until
// the resolution workflow credits some.
func TestUserKarmaStartsAtZero(t *testing.T) {
	user := &models.User{Name: "Iryna", Email: "iryna@example.com"}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, user.KarmaPoints)
}
