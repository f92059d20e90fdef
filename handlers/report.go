package handlers

import (
	"net/http"

	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
)

type reportRequest struct {
	Kind  string `json:"kind" form:"kind"`
	Date  string `json:"date" form:"date"`
	Title string `json:"title" form:"title"`
	Body  string `json:"body" form:"body"`
}

// AddReport appends a report to the case
func (a *API) AddReport(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	report, err := services.AddReport(a.Store, c.Param("id"), req.Kind, req.Date, req.Title, req.Body)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, report)
}

// UpdateReport rewrites title and body of a report
func (a *API) UpdateReport(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	report, err := services.UpdateReport(a.Store, c.Param("id"), c.Param("reportId"), req.Title, req.Body)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// DeleteReport removes a report from the case
func (a *API) DeleteReport(c echo.Context) error {
	if err := services.DeleteReport(a.Store, c.Param("id"), c.Param("reportId")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// AddCaseShort appends a short note at case level
func (a *API) AddCaseShort(c echo.Context) error {
	var req shortNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	note, err := services.AddCaseShort(a.Store, c.Param("id"), req.DT, req.Text)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}

// DeleteCaseShort removes a case-level short note
func (a *API) DeleteCaseShort(c echo.Context) error {
	if err := services.DeleteCaseShort(a.Store, c.Param("id"), c.Param("noteId")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
