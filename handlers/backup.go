package handlers

import (
	"fmt"
	"io"
	"net/http"

	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
)

// ExportBackup downloads the full snapshot as JSON
func (a *API) ExportBackup(c echo.Context) error {
	data, filename, err := services.ExportSnapshotJSON(a.Store)
	if err != nil {
		return jsonError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/json", data)
}

// ImportBackup replaces all local records with an uploaded snapshot.
// Accepts either a multipart "file" field or a raw JSON body.
func (a *API) ImportBackup(c echo.Context) error {
	var raw []byte

	if fileHeader, err := c.FormFile("file"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return jsonError(c, err)
		}
		defer src.Close()
		if raw, err = io.ReadAll(src); err != nil {
			return jsonError(c, err)
		}
	} else {
		var err error
		if raw, err = io.ReadAll(c.Request().Body); err != nil {
			return jsonError(c, err)
		}
	}

	if err := services.ImportSnapshot(a.Store, raw); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "imported",
		"cases":  len(a.Store.Cases()),
		"people": len(a.Store.People()),
	})
}

// SyncBackup merges the person registry with the remote snapshot and
// uploads the merged state
func (a *API) SyncBackup(c echo.Context) error {
	if err := services.SyncToRemote(c.Request().Context(), a.Store, services.Storage); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "synced"})
}

// ExportWorkbook downloads the Excel companion export
func (a *API) ExportWorkbook(c echo.Context) error {
	buf, err := services.GenerateWorkbook(a.Store)
	if err != nil {
		return jsonError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", services.WorkbookFileName))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
