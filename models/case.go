package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Case status constants
const (
	CaseStatusOpen       = "open"
	CaseStatusInProgress = "in_progress"
	CaseStatusClosed     = "closed"
)

// Case is an investigation record grouping contacts, reports, folders and
// short notes under one case number.
type Case struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"` // case number label, unique by convention
	Created time.Time `json:"created"`
	Status  string    `json:"status"`

	Folders  []Folder    `json:"folders"`
	Reports  []Report    `json:"reports"`
	Contacts []Contact   `json:"contacts"`
	Shorts   []ShortNote `json:"shorts"` // legacy quick notes, superseded by Kurzbericht reports

	// Optional reference to a folder in the remote object store
	DriveFolderID *string `json:"drive_folder_id,omitempty"`
}

// Folder is a named subdivision of the case file. Files hold metadata
// only; the bytes live in blob storage.
type Folder struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Files   []FileMeta `json:"files"`
	Created time.Time  `json:"created"`
}

// FileMeta describes a stored file without its content
type FileMeta struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	MimeType string    `json:"mime_type"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
	IsImage  bool      `json:"is_image"`
}

// ShortNote is a timestamped one-liner, attached to a case or a contact
type ShortNote struct {
	ID      string    `json:"id"`
	DT      string    `json:"dt"` // YYYY-MM-DDTHH:MM as entered
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// NewCase creates a case with a fresh id and a seeded reports folder
func NewCase(title string) Case {
	return Case{
		ID:       uuid.New().String(),
		Title:    strings.TrimSpace(title),
		Created:  time.Now(),
		Status:   CaseStatusOpen,
		Folders:  []Folder{NewFolder("Berichte")},
		Reports:  []Report{},
		Contacts: []Contact{},
		Shorts:   []ShortNote{},
	}
}

// NewFolder creates an empty folder
func NewFolder(name string) Folder {
	return Folder{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(name),
		Files:   []FileMeta{},
		Created: time.Now(),
	}
}

// NewShortNote creates a short note; callers must not persist one with
// empty text.
func NewShortNote(dt, text string) ShortNote {
	return ShortNote{
		ID:      uuid.New().String(),
		DT:      dt,
		Text:    strings.TrimSpace(text),
		Created: time.Now(),
	}
}

// IsValidCaseStatus checks if the status is one of the known values
func IsValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusOpen, CaseStatusInProgress, CaseStatusClosed:
		return true
	}
	return false
}

// NormalizeCaseStatus maps legacy status spellings onto the current enum.
// Earlier data used "progress" for the middle state.
func NormalizeCaseStatus(status string) string {
	if status == "progress" {
		return CaseStatusInProgress
	}
	if !IsValidCaseStatus(status) {
		return CaseStatusOpen
	}
	return status
}

// IsClosed checks if the case is closed
func (c *Case) IsClosed() bool {
	return c.Status == CaseStatusClosed
}

// FindFolder returns the folder with the given name, or nil
func (c *Case) FindFolder(name string) *Folder {
	for i := range c.Folders {
		if c.Folders[i].Name == name {
			return &c.Folders[i]
		}
	}
	return nil
}

// FindContact returns the contact with the given id, or nil
func (c *Case) FindContact(id string) *Contact {
	for i := range c.Contacts {
		if c.Contacts[i].ID == id {
			return &c.Contacts[i]
		}
	}
	return nil
}

// Ref returns the back-reference registry entries keep for this case
func (c *Case) Ref() CaseRef {
	return CaseRef{ID: c.ID, Title: c.Title}
}
