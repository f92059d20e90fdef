package services

import (
	"testing"
	"time"

	"case_cockpit_go/config"
	"case_cockpit_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Session{})
	return db
}

func testAuthenticator(t *testing.T) *Authenticator {
	auth, err := NewAuthenticator(&config.Config{AccessPIN: "500011", AgentCode: "A017"})
	assert.NoError(t, err)
	return auth
}

func TestCheckPIN(t *testing.T) {
	auth := testAuthenticator(t)

	assert.True(t, auth.CheckPIN("500011"))
	assert.False(t, auth.CheckPIN("500012"))
	assert.False(t, auth.CheckPIN(""))
	assert.Equal(t, "A017", auth.Agent())
}

func TestCheckPINToleratesKeypadArtifacts(t *testing.T) {
	auth := testAuthenticator(t)

	// Numeric keypads leave trailing dots and whitespace behind
	assert.True(t, auth.CheckPIN("500011."))
	assert.True(t, auth.CheckPIN("500011.."))
	assert.True(t, auth.CheckPIN("500011 "))
	assert.True(t, auth.CheckPIN(" 500011.\n"))

	// A dot inside the PIN is still wrong
	assert.False(t, auth.CheckPIN("5000.11"))
}

func TestSessionLifecycle(t *testing.T) {
	db := setupAuthTestDB()

	// 1. Create
	session, err := CreateSession(db, "A017", "127.0.0.1", "TestAgent")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "A017", session.Agent)
	assert.WithinDuration(t, time.Now().Add(DefaultSessionDuration), session.ExpiresAt, 10*time.Second)

	// 2. Validate
	valid, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, valid.ID)

	// 3. Unknown token
	_, err = ValidateSession(db, "invalid-token")
	assert.Error(t, err)

	// 4. Logout
	assert.NoError(t, DeleteSession(db, session.Token))
	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)
}

func TestExpiredSessionIsRejectedAndDeleted(t *testing.T) {
	db := setupAuthTestDB()

	expired := &models.Session{
		ID:        "expired-session",
		Agent:     "A017",
		Token:     "expired-token",
		LoginAt:   time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}
	assert.NoError(t, db.Create(expired).Error)

	_, err := ValidateSession(db, expired.Token)
	assert.Error(t, err)

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupAuthTestDB()

	live, err := CreateSession(db, "A017", "", "")
	assert.NoError(t, err)
	db.Create(&models.Session{
		ID: "old", Agent: "A017", Token: "old-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	assert.NoError(t, CleanupExpiredSessions(db))

	var sessions []models.Session
	db.Find(&sessions)
	assert.Len(t, sessions, 1)
	assert.Equal(t, live.ID, sessions[0].ID)
}
