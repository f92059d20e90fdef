package models

import (
	"time"
)

// Session is a logged-in agent session backing the cookie the browser
// holds after a successful PIN check.
type Session struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Agent     string    `gorm:"not null;type:varchar(16)" json:"agent"`
	Token     string    `gorm:"uniqueIndex;not null;type:varchar(128)" json:"-"`
	LoginAt   time.Time `gorm:"not null" json:"login_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
}

// TableName specifies the table name for Session model
func (Session) TableName() string {
	return "sessions"
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
