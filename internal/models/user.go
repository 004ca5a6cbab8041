// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created on first successful session exchange and only ever
// soft-deleted. The role is not stored; it is derived per request from
// the email (see services.RoleService).
type User struct {
	BaseModel
	Email   string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name    string `json:"name" gorm:"size:255"`
	Picture string `json:"picture,omitempty" gorm:"size:512"`
}

// Session holds an upstream-issued opaque token. Sessions are hard
// deleted on logout, so no DeletedAt here.
type Session struct {
	ID           string    `json:"id" gorm:"size:64;primaryKey"`
	UserID       string    `json:"user_id" gorm:"size:64;index;not null"`
	SessionToken string    `json:"session_token" gorm:"uniqueIndex;size:255;not null"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Role reference collections. Membership (not soft-deleted) grants the
// matching role during resolution.
type Partner struct {
	BaseModel
	Email string `json:"email" gorm:"index;size:255;not null"`
	Name  string `json:"name" gorm:"size:255"`
}

type Admin struct {
	BaseModel
	Email string `json:"email" gorm:"index;size:255;not null"`
	Name  string `json:"name" gorm:"size:255"`
}

type Subscriber struct {
	BaseModel
	Email string `json:"email" gorm:"index;size:255;not null"`
	Name  string `json:"name" gorm:"size:255"`
}
