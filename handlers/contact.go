package handlers

import (
	"net/http"

	"case_cockpit_go/models"
	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
)

type contactRequest struct {
	Role string `json:"role" form:"role"`
	models.PersonData
}

// AddContact appends a contact to the case and folds it into the person
// registry
func (a *API) AddContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	contact, err := services.AddContact(a.Store, c.Param("id"), req.Role, req.PersonData)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, contact)
}

// UpdateContact rewrites a contact and re-applies the registry merge
func (a *API) UpdateContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	contact, err := services.UpdateContact(a.Store, c.Param("id"), c.Param("contactId"), req.Role, req.PersonData)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// DeleteContact removes a contact from the case; the registry person
// survives
func (a *API) DeleteContact(c echo.Context) error {
	if err := services.DeleteContact(a.Store, c.Param("id"), c.Param("contactId")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

type shortNoteRequest struct {
	DT   string `json:"dt" form:"dt"`
	Text string `json:"text" form:"text"`
}

// AddContactShort appends a short note to a contact
func (a *API) AddContactShort(c echo.Context) error {
	var req shortNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	note, err := services.AddContactShort(a.Store, c.Param("id"), c.Param("contactId"), req.DT, req.Text)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}
