package handlers

import (
	"fmt"
	"net/http"

	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
)

// 50 MB upload limit, same ceiling the body limit middleware enforces
const maxUploadSize = 50 << 20

type folderRequest struct {
	Name string `json:"name" form:"name"`
}

// AddFolder appends a named folder to the case
func (a *API) AddFolder(c echo.Context) error {
	var req folderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	folder, err := services.AddFolder(a.Store, c.Param("id"), req.Name)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, folder)
}

// UploadFile stores an uploaded file in blob storage and records its
// metadata in the folder
func (a *API) UploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file provided"})
	}
	if fileHeader.Size > maxUploadSize {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "File too large"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, err)
	}
	defer src.Close()

	meta, err := services.AttachFile(
		c.Request().Context(), a.Store, services.Storage,
		c.Param("id"), c.Param("folderId"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, src,
	)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, meta)
}

// DownloadFile streams a stored file back to the client
func (a *API) DownloadFile(c echo.Context) error {
	found, err := services.GetCase(a.Store, c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	fileID := c.Param("fileId")
	var name, mimeType string
	for _, folder := range found.Folders {
		for _, meta := range folder.Files {
			if meta.ID == fileID {
				name, mimeType = meta.Name, meta.MimeType
			}
		}
	}
	if name == "" {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "File not found"})
	}

	body, storedType, err := services.Storage.GetBlob(c.Request().Context(), fileID)
	if err != nil {
		return jsonError(c, err)
	}
	defer body.Close()

	// Metadata wins over whatever the blob store reports
	if mimeType == "" {
		mimeType = storedType
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Stream(http.StatusOK, mimeType, body)
}

// DeleteFile removes a file and its blob
func (a *API) DeleteFile(c echo.Context) error {
	err := services.DeleteFile(
		c.Request().Context(), a.Store, services.Storage,
		c.Param("id"), c.Param("folderId"), c.Param("fileId"),
	)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
