package models_test

import (
	"testing"

	"flatfeud/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestComplaintBeforeCreate verifies the hook fills in the UUID and the
// starting status while leaving explicit values alone.
func TestComplaintBeforeCreate(t *testing.T) {
	complaint := &models.Complaint{
		AuthorID: "user-1",
		Title:    "Loud music at 3am",
		Type:     models.TypeNoise,
		Severity: models.SeverityNuclear,
	}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusActive, complaint.Status)
	assert.Equal(t, 0, complaint.Votes)
	assert.Nil(t, complaint.Punishment)
	assert.Nil(t, complaint.ResolvedBy)

	_, parseErr := uuid.Parse(complaint.ID)
	assert.NoError(t, parseErr, "Complaint ID must be a valid UUID string")
}

func TestComplaintBeforeCreate_PreservesStatus(t *testing.T) {
	complaint := &models.Complaint{Title: "t", Status: models.StatusArchived}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusArchived, complaint.Status)
}

func TestValidType(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{models.TypeNoise, true},
		{models.TypeCleanliness, true},
		{models.TypeBills, true},
		{models.TypePets, true},
		{"Parking", false},
		{"noise", false}, // enum values are case-sensitive
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ValidType(tt.value))
		})
	}
}

func TestValidSeverity(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{models.SeverityMild, true},
		{models.SeverityAnnoying, true},
		{models.SeverityMajor, true},
		{models.SeverityNuclear, true},
		{"Catastrophic", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ValidSeverity(tt.value))
		})
	}
}
