package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetSettings returns the persisted UI preferences
func (a *API) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"theme": a.Store.Theme(),
		"route": a.Store.LastRoute(),
	})
}

type settingsRequest struct {
	Theme string `json:"theme" form:"theme"`
	Route string `json:"route" form:"route"`
}

// UpdateSettings persists UI preferences; only provided fields change
func (a *API) UpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.Theme != "" {
		if err := a.Store.SetTheme(req.Theme); err != nil {
			return jsonError(c, err)
		}
	}
	if req.Route != "" {
		if err := a.Store.SetLastRoute(req.Route); err != nil {
			return jsonError(c, err)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"theme": a.Store.Theme(),
		"route": a.Store.LastRoute(),
	})
}
