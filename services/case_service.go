package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"case_cockpit_go/models"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Report bodies may carry simple markup; everything else is plain text.
var (
	reportBodyPolicy = bluemonday.UGCPolicy()
	plainTextPolicy  = bluemonday.StrictPolicy()
)

// CreateCase appends a new case with the given case number label.
// An empty title is rejected and nothing is written.
func CreateCase(store *Store, title string) (models.Case, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Case{}, fmt.Errorf("%w: case title is required", ErrValidation)
	}
	newCase := models.NewCase(title)
	cases := append(store.Cases(), newCase)
	if err := store.SaveCases(cases); err != nil {
		return models.Case{}, err
	}
	return newCase, nil
}

// GetCase returns the case with the given id
func GetCase(store *Store, caseID string) (models.Case, error) {
	for _, c := range store.Cases() {
		if c.ID == caseID {
			return c, nil
		}
	}
	return models.Case{}, fmt.Errorf("%w: case %s", ErrNotFound, caseID)
}

// UpdateCaseStatus sets the case status. Legacy spellings are accepted
// and normalized.
func UpdateCaseStatus(store *Store, caseID, status string) error {
	status = models.NormalizeCaseStatus(status)
	return mutateCase(store, caseID, func(c *models.Case) error {
		c.Status = status
		return nil
	})
}

// DeleteCase removes a case and its stored file blobs. The person
// registry is left untouched; registry entries are only deleted
// explicitly.
func DeleteCase(ctx context.Context, store *Store, blobs StorageProvider, caseID string) error {
	cases := store.Cases()
	idx := -1
	for i := range cases {
		if cases[i].ID == caseID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: case %s", ErrNotFound, caseID)
	}

	if blobs != nil {
		for _, folder := range cases[idx].Folders {
			for _, meta := range folder.Files {
				// Blob cleanup is best-effort, the metadata goes away regardless
				if err := blobs.DeleteBlob(ctx, meta.ID); err != nil {
					log.Printf("Failed to delete blob %s: %v", meta.ID, err)
				}
			}
		}
	}

	cases = append(cases[:idx], cases[idx+1:]...)
	return store.SaveCases(cases)
}

// SearchCases filters cases by case number, contact name or EL number,
// newest first. An empty query returns everything.
func SearchCases(store *Store, query string) []models.Case {
	q := strings.ToLower(strings.TrimSpace(query))
	cases := store.Cases()

	matched := cases[:0]
	for _, c := range cases {
		if q == "" || caseMatches(c, q) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Created.After(matched[j].Created)
	})
	return matched
}

func caseMatches(c models.Case, q string) bool {
	if strings.Contains(strings.ToLower(c.Title), q) {
		return true
	}
	for _, contact := range c.Contacts {
		if strings.Contains(strings.ToLower(contact.Name), q) ||
			strings.Contains(strings.ToLower(contact.ELNumber), q) {
			return true
		}
	}
	return false
}

// AddContact validates and appends a contact to the case, then folds it
// into the person registry. A contact without a name is a no-op: no
// contact is added and no person is created.
func AddContact(store *Store, caseID, role string, data models.PersonData) (models.Contact, error) {
	data = sanitizePersonData(data)
	if strings.TrimSpace(data.Name) == "" {
		return models.Contact{}, fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	data.Name = strings.TrimSpace(data.Name)

	contact := models.NewContact(role, data)
	var ref models.CaseRef
	err := mutateCase(store, caseID, func(c *models.Case) error {
		c.Contacts = append(c.Contacts, contact)
		ref = c.Ref()
		return nil
	})
	if err != nil {
		return models.Contact{}, err
	}

	// Case collection and person registry are persisted independently;
	// a crash between the two writes is repaired by the replay on load.
	if _, err := UpsertPersonFromContact(store, &ref, contact); err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

// UpdateContact rewrites the denormalized contact copy and re-applies the
// registry merge with the new data.
func UpdateContact(store *Store, caseID, contactID, role string, data models.PersonData) (models.Contact, error) {
	data = sanitizePersonData(data)
	if strings.TrimSpace(data.Name) == "" {
		return models.Contact{}, fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	data.Name = strings.TrimSpace(data.Name)

	var updated models.Contact
	var ref models.CaseRef
	err := mutateCase(store, caseID, func(c *models.Case) error {
		contact := c.FindContact(contactID)
		if contact == nil {
			return fmt.Errorf("%w: contact %s", ErrNotFound, contactID)
		}
		contact.PersonData = data
		if models.IsValidContactRole(role) {
			contact.Role = role
		}
		updated = *contact
		ref = c.Ref()
		return nil
	})
	if err != nil {
		return models.Contact{}, err
	}

	if _, err := UpsertPersonFromContact(store, &ref, updated); err != nil {
		return models.Contact{}, err
	}
	return updated, nil
}

// DeleteContact removes a contact from the case. The registry person
// survives; only explicit deletion removes registry entries.
func DeleteContact(store *Store, caseID, contactID string) error {
	return mutateCase(store, caseID, func(c *models.Case) error {
		for i := range c.Contacts {
			if c.Contacts[i].ID == contactID {
				c.Contacts = append(c.Contacts[:i], c.Contacts[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: contact %s", ErrNotFound, contactID)
	})
}

// AddReport appends a report to the case. A report with neither title nor
// body is rejected and nothing is written.
func AddReport(store *Store, caseID, kind, date, title, body string) (models.Report, error) {
	report := models.NewReport(kind, date, plainTextPolicy.Sanitize(title), reportBodyPolicy.Sanitize(body))
	if !report.HasContent() {
		return models.Report{}, fmt.Errorf("%w: report needs a title or a body", ErrValidation)
	}
	err := mutateCase(store, caseID, func(c *models.Case) error {
		c.Reports = append(c.Reports, report)
		return nil
	})
	if err != nil {
		return models.Report{}, err
	}
	return report, nil
}

// UpdateReport rewrites title and body of an existing report
func UpdateReport(store *Store, caseID, reportID, title, body string) (models.Report, error) {
	title = strings.TrimSpace(plainTextPolicy.Sanitize(title))
	body = strings.TrimSpace(reportBodyPolicy.Sanitize(body))
	if title == "" && body == "" {
		return models.Report{}, fmt.Errorf("%w: report needs a title or a body", ErrValidation)
	}

	var updated models.Report
	err := mutateCase(store, caseID, func(c *models.Case) error {
		for i := range c.Reports {
			if c.Reports[i].ID == reportID {
				c.Reports[i].Title = title
				c.Reports[i].Body = body
				c.Reports[i].Updated = time.Now()
				updated = c.Reports[i]
				return nil
			}
		}
		return fmt.Errorf("%w: report %s", ErrNotFound, reportID)
	})
	if err != nil {
		return models.Report{}, err
	}
	return updated, nil
}

// DeleteReport removes a report from the case
func DeleteReport(store *Store, caseID, reportID string) error {
	return mutateCase(store, caseID, func(c *models.Case) error {
		for i := range c.Reports {
			if c.Reports[i].ID == reportID {
				c.Reports = append(c.Reports[:i], c.Reports[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: report %s", ErrNotFound, reportID)
	})
}

// AddCaseShort appends a short note at case level. Empty text is a no-op.
func AddCaseShort(store *Store, caseID, dt, text string) (models.ShortNote, error) {
	note := models.NewShortNote(dt, plainTextPolicy.Sanitize(text))
	if note.Text == "" {
		return models.ShortNote{}, fmt.Errorf("%w: short note text is required", ErrValidation)
	}
	err := mutateCase(store, caseID, func(c *models.Case) error {
		c.Shorts = append(c.Shorts, note)
		return nil
	})
	if err != nil {
		return models.ShortNote{}, err
	}
	return note, nil
}

// DeleteCaseShort removes a case-level short note
func DeleteCaseShort(store *Store, caseID, noteID string) error {
	return mutateCase(store, caseID, func(c *models.Case) error {
		for i := range c.Shorts {
			if c.Shorts[i].ID == noteID {
				c.Shorts = append(c.Shorts[:i], c.Shorts[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: short note %s", ErrNotFound, noteID)
	})
}

// AddContactShort appends a short note to a contact within the case
func AddContactShort(store *Store, caseID, contactID, dt, text string) (models.ShortNote, error) {
	note := models.NewShortNote(dt, plainTextPolicy.Sanitize(text))
	if note.Text == "" {
		return models.ShortNote{}, fmt.Errorf("%w: short note text is required", ErrValidation)
	}
	err := mutateCase(store, caseID, func(c *models.Case) error {
		contact := c.FindContact(contactID)
		if contact == nil {
			return fmt.Errorf("%w: contact %s", ErrNotFound, contactID)
		}
		contact.Shorts = append(contact.Shorts, note)
		return nil
	})
	if err != nil {
		return models.ShortNote{}, err
	}
	return note, nil
}

// AddFolder appends a named folder to the case
func AddFolder(store *Store, caseID, name string) (models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Folder{}, fmt.Errorf("%w: folder name is required", ErrValidation)
	}
	folder := models.NewFolder(name)
	err := mutateCase(store, caseID, func(c *models.Case) error {
		c.Folders = append(c.Folders, folder)
		return nil
	})
	if err != nil {
		return models.Folder{}, err
	}
	return folder, nil
}

// AttachFile stores the uploaded bytes in blob storage and records the
// file metadata in the folder.
func AttachFile(ctx context.Context, store *Store, blobs StorageProvider, caseID, folderID, name, contentType string, size int64, reader io.Reader) (models.FileMeta, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.FileMeta{}, fmt.Errorf("%w: file name is required", ErrValidation)
	}

	meta := models.FileMeta{
		ID:       uuid.New().String(),
		Name:     name,
		MimeType: contentType,
		Size:     size,
		Created:  time.Now(),
		IsImage:  strings.HasPrefix(contentType, "image/"),
	}

	if err := blobs.PutBlob(ctx, meta.ID, reader, contentType, size); err != nil {
		return models.FileMeta{}, err
	}

	err := mutateCase(store, caseID, func(c *models.Case) error {
		for i := range c.Folders {
			if c.Folders[i].ID == folderID {
				c.Folders[i].Files = append(c.Folders[i].Files, meta)
				return nil
			}
		}
		return fmt.Errorf("%w: folder %s", ErrNotFound, folderID)
	})
	if err != nil {
		// Metadata write failed; drop the orphaned blob
		_ = blobs.DeleteBlob(ctx, meta.ID)
		return models.FileMeta{}, err
	}
	return meta, nil
}

// DeleteFile removes the file metadata and its blob
func DeleteFile(ctx context.Context, store *Store, blobs StorageProvider, caseID, folderID, fileID string) error {
	err := mutateCase(store, caseID, func(c *models.Case) error {
		for i := range c.Folders {
			if c.Folders[i].ID != folderID {
				continue
			}
			files := c.Folders[i].Files
			for j := range files {
				if files[j].ID == fileID {
					c.Folders[i].Files = append(files[:j], files[j+1:]...)
					return nil
				}
			}
		}
		return fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	})
	if err != nil {
		return err
	}
	return blobs.DeleteBlob(ctx, fileID)
}

// mutateCase loads the collection, applies fn to the addressed case and
// persists the whole collection. The write is all-or-nothing: when fn
// fails nothing is saved.
func mutateCase(store *Store, caseID string, fn func(*models.Case) error) error {
	cases := store.Cases()
	for i := range cases {
		if cases[i].ID == caseID {
			if err := fn(&cases[i]); err != nil {
				return err
			}
			return store.SaveCases(cases)
		}
	}
	return fmt.Errorf("%w: case %s", ErrNotFound, caseID)
}

func sanitizePersonData(d models.PersonData) models.PersonData {
	d.Name = plainTextPolicy.Sanitize(d.Name)
	d.Address = plainTextPolicy.Sanitize(d.Address)
	d.Notes = plainTextPolicy.Sanitize(d.Notes)
	return d
}
