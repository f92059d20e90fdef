package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"case_cockpit_go/config"
	"case_cockpit_go/db"
	"case_cockpit_go/middleware"
	"case_cockpit_go/models"
	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupAPITest wires an API against a fresh in-memory database and
// returns a logged-in session cookie
func setupAPITest(t *testing.T) (*echo.Echo, *API, *http.Cookie) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	gdb.AutoMigrate(&models.KVEntry{}, &models.Session{})
	db.DB = gdb

	cfg := &config.Config{
		Environment:   "development",
		AccessPIN:     "500011",
		AgentCode:     "A017",
		EmailTestMode: true,
	}
	store := services.NewStore(gdb, cfg.AgentCode)
	auth, err := services.NewAuthenticator(cfg)
	if err != nil {
		panic("failed to create authenticator")
	}

	session, err := services.CreateSession(gdb, cfg.AgentCode, "127.0.0.1", "test")
	if err != nil {
		panic("failed to create session")
	}
	cookie := &http.Cookie{Name: middleware.SessionCookieName, Value: session.Token}

	return echo.New(), NewAPI(store, auth, cfg), cookie
}

// doJSON builds an echo context for a JSON request
func doJSON(e *echo.Echo, method, target, body string, cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
