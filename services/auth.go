package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"case_cockpit_go/config"
	"case_cockpit_go/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// SessionTokenLength is the length of the session token in bytes (64 chars hex)
	SessionTokenLength = 32
	// DefaultSessionDuration is the default session duration
	DefaultSessionDuration = 24 * time.Hour
)

// Authenticator gates access behind the configured agent PIN. The PIN is
// hashed once at startup and never kept in plain text.
type Authenticator struct {
	pinHash string
	agent   string
}

// NewAuthenticator hashes the configured PIN and binds the agent code
func NewAuthenticator(cfg *config.Config) (*Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AccessPIN), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash access PIN: %w", err)
	}
	return &Authenticator{pinHash: string(hash), agent: cfg.AgentCode}, nil
}

// Agent returns the configured agent code
func (a *Authenticator) Agent() string {
	return a.agent
}

// CheckPIN verifies the entered PIN. Trailing whitespace and stray dots
// are stripped before comparing; numeric keypads produce both.
func (a *Authenticator) CheckPIN(pin string) bool {
	pin = strings.TrimSpace(pin)
	pin = strings.TrimRight(pin, ".")
	err := bcrypt.CompareHashAndPassword([]byte(a.pinHash), []byte(pin))
	return err == nil
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CreateSession creates a new session for the agent
func CreateSession(db *gorm.DB, agent, ipAddress, userAgent string) (*models.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		ID:        uuid.New().String(),
		Agent:     agent,
		Token:     token,
		LoginAt:   now,
		ExpiresAt: now.Add(DefaultSessionDuration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession validates a session token and returns the session if valid
func ValidateSession(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session

	err := db.Where("token = ?", token).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	if session.IsExpired() {
		// Delete expired session
		db.Delete(&session)
		return nil, fmt.Errorf("session expired")
	}
	return &session, nil
}

// DeleteSession removes a session by token (logout)
func DeleteSession(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.Session{}).Error
}

// CleanupExpiredSessions removes all expired sessions
func CleanupExpiredSessions(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
