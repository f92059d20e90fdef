package handlers

import (
	"net/http"

	"case_cockpit_go/db"
	"case_cockpit_go/middleware"
	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	PIN string `json:"pin" form:"pin"`
}

// Login verifies the agent PIN and opens a session
func (a *API) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if !a.Auth.CheckPIN(req.PIN) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Falsche PIN"})
	}

	session, err := services.CreateSession(db.DB, a.Auth.Agent(), c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return jsonError(c, err)
	}

	middleware.SetSessionCookie(c, session.Token, a.Cfg.Environment == "production")
	return c.JSON(http.StatusOK, map[string]string{
		"agent": session.Agent,
		"route": a.Store.LastRoute(),
	})
}

// Logout deletes the session and clears the cookie
func (a *API) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			return jsonError(c, err)
		}
	}
	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// SessionInfo reports the logged-in agent
func (a *API) SessionInfo(c echo.Context) error {
	session := middleware.GetCurrentSession(c)
	if session == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not logged in"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"agent":      session.Agent,
		"login_at":   session.LoginAt,
		"expires_at": session.ExpiresAt,
	})
}
