package handlers

import (
	"fmt"
	"net/http"

	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
)

// ListCases returns the case list, optionally filtered by ?q=
func (a *API) ListCases(c echo.Context) error {
	return c.JSON(http.StatusOK, services.SearchCases(a.Store, c.QueryParam("q")))
}

type createCaseRequest struct {
	Title string `json:"title" form:"title"`
}

// CreateCase creates a new case. Without an explicit title the next case
// number in the sequence is assigned.
func (a *API) CreateCase(c echo.Context) error {
	var req createCaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	title := req.Title
	if title == "" {
		number, err := a.Store.NextCaseNumber()
		if err != nil {
			return jsonError(c, err)
		}
		title = number
	}

	created, err := services.CreateCase(a.Store, title)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetCase returns one case with all nested records
func (a *API) GetCase(c echo.Context) error {
	found, err := services.GetCase(a.Store, c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	if err := a.Store.SetLastRoute("/cases/" + found.ID); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

type caseStatusRequest struct {
	Status string `json:"status" form:"status"`
}

// UpdateCaseStatus sets the case status
func (a *API) UpdateCaseStatus(c echo.Context) error {
	var req caseStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := services.UpdateCaseStatus(a.Store, c.Param("id"), req.Status); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteCase removes a case and its stored files
func (a *API) DeleteCase(c echo.Context) error {
	if err := services.DeleteCase(c.Request().Context(), a.Store, services.Storage, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// CasePDF renders the printable case file as PDF
func (a *API) CasePDF(c echo.Context) error {
	found, err := services.GetCase(a.Store, c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	doc := services.BuildCaseDocument(found)
	pdf, err := services.GenerateCaseDocumentPDF(doc, services.DefaultPDFOptions())
	if err != nil {
		return jsonError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "fallakte-"+found.Title+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
