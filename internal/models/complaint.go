package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint types and severities are closed enumerations; anything else is
// rejected at the API boundary before a record is created.
const (
	TypeNoise       = "Noise"
	TypeCleanliness = "Cleanliness"
	TypeBills       = "Bills"
	TypePets        = "Pets"

	SeverityMild     = "Mild"
	SeverityAnnoying = "Annoying"
	SeverityMajor    = "Major"
	SeverityNuclear  = "Nuclear"
)

// Complaint status lifecycle: Active -> Resolved | Archived.
// Once a complaint leaves Active it never goes back.
const (
	StatusActive   = "Active"
	StatusResolved = "Resolved"
	StatusArchived = "Archived"
)

// Complaint represents one flatmate's grievance against the household.
// Votes, Status, Punishment and ResolvedByID are engine-owned fields:
// they are mutated only by the vote processor, the resolution workflow
// and the archival sweep, never directly by a caller.
type Complaint struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	AuthorID    string    `gorm:"not null;index" json:"authorId"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"not null;index" json:"type"`
	Severity    string    `gorm:"not null" json:"severity"`
	Votes       int       `json:"votes"`
	Status      string    `gorm:"not null;default:Active;index" json:"status"`
	Punishment  *string   `json:"punishment"` // nil until the vote threshold is first reached, then immutable
	CreatedAt   time.Time `json:"createdAt"`
	ResolvedBy  *string   `gorm:"column:resolved_by" json:"resolvedBy"` // set iff Status == Resolved
}

// BeforeCreate генерує UUID та виставляє стартовий статус.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	return
}

// ValidType reports whether t is one of the four accepted complaint types.
func ValidType(t string) bool {
	switch t {
	case TypeNoise, TypeCleanliness, TypeBills, TypePets:
		return true
	}
	return false
}

// ValidSeverity reports whether s is one of the accepted severities.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityMild, SeverityAnnoying, SeverityMajor, SeverityNuclear:
		return true
	}
	return false
}
