package handlers

import (
	"net/http"
	"sort"
	"strings"

	"case_cockpit_go/models"
	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
)

// ListPeople returns the person registry, optionally filtered by ?q=
// (name, EL number or phone), sorted by name
func (a *API) ListPeople(c echo.Context) error {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	people := a.Store.People()

	matched := people[:0]
	for _, p := range people {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.ELNumber), q) ||
			strings.Contains(p.Phone, q) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
	})
	return c.JSON(http.StatusOK, matched)
}

// GetPerson returns one registry entry by id
func (a *API) GetPerson(c echo.Context) error {
	personID := c.Param("id")
	for _, p := range a.Store.People() {
		if p.ID == personID {
			return c.JSON(http.StatusOK, p)
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "Person not found"})
}

// DeletePerson removes a registry entry
func (a *API) DeletePerson(c echo.Context) error {
	if err := services.DeletePerson(a.Store, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

type splitPersonRequest struct {
	CaseID string `json:"case_id" form:"case_id"`
}

// SplitPerson detaches one case reference into a fresh registry entry.
// Undoes a false merge of two people sharing name and date of birth.
func (a *API) SplitPerson(c echo.Context) error {
	var req splitPersonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	split, err := services.SplitPerson(a.Store, c.Param("id"), req.CaseID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, split)
}

// ResyncPeople replays all case contacts into the registry
func (a *API) ResyncPeople(c echo.Context) error {
	if err := services.SyncPeopleFromCases(a.Store); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "synced",
		"count":  len(a.Store.People()),
	})
}

// Dashboard reports record counts and the current status distribution
func (a *API) Dashboard(c echo.Context) error {
	cases := a.Store.Cases()
	byStatus := map[string]int{
		models.CaseStatusOpen:       0,
		models.CaseStatusInProgress: 0,
		models.CaseStatusClosed:     0,
	}
	reports := 0
	for _, cs := range cases {
		byStatus[cs.Status]++
		reports += len(cs.Reports)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"cases":     len(cases),
		"people":    len(a.Store.People()),
		"reports":   reports,
		"by_status": byStatus,
		"theme":     a.Store.Theme(),
	})
}
