package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User представляє мешканця спільної квартири.
// KarmaPoints is engine-owned: only the resolution workflow credits it.
type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FlatCode    string    `json:"flatCode"`          // grouping key for the shared household
	KarmaPoints int       `json:"karmaPoints"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BeforeCreate — це хук GORM, який викликається перед створенням запису.
// Він генерує новий UUID для користувача, якщо ID ще не встановлено.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
