package handlers

import (
	"errors"
	"net/http"

	"case_cockpit_go/config"
	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
)

// API bundles the dependencies the HTTP layer needs. The store is passed
// in explicitly; handlers never reach for package globals to find it.
type API struct {
	Store *services.Store
	Auth  *services.Authenticator
	Cfg   *config.Config
}

// NewAPI creates the handler set
func NewAPI(store *services.Store, auth *services.Authenticator, cfg *config.Config) *API {
	return &API{Store: store, Auth: auth, Cfg: cfg}
}

// jsonError maps service errors to HTTP responses
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidImportFormat):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrRemoteUnavailable):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
