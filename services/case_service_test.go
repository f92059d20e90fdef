package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"case_cockpit_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateCase(t *testing.T) {
	store := setupStoreTest()

	created, err := CreateCase(store, "F010A017")
	assert.NoError(t, err)
	assert.Equal(t, "F010A017", created.Title)
	assert.Equal(t, models.CaseStatusOpen, created.Status)

	// Every new case starts with the reports folder
	assert.Len(t, created.Folders, 1)
	assert.Equal(t, "Berichte", created.Folders[0].Name)

	// Empty title is rejected and nothing is written
	_, err = CreateCase(store, "   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, store.Cases(), 1)
}

func TestUpdateCaseStatus(t *testing.T) {
	store := setupStoreTest()
	created, _ := CreateCase(store, "F010A017")

	assert.NoError(t, UpdateCaseStatus(store, created.ID, "closed"))
	loaded, _ := GetCase(store, created.ID)
	assert.Equal(t, models.CaseStatusClosed, loaded.Status)

	// Legacy spelling normalizes
	assert.NoError(t, UpdateCaseStatus(store, created.ID, "progress"))
	loaded, _ = GetCase(store, created.ID)
	assert.Equal(t, models.CaseStatusInProgress, loaded.Status)

	err := UpdateCaseStatus(store, "no-such-case", "open")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddContactFoldsIntoRegistry(t *testing.T) {
	store := setupStoreTest()
	created, _ := CreateCase(store, "F010A017")

	contact, err := AddContact(store, created.ID, models.ContactRoleZeuge, models.PersonData{
		Name: "Max Mustermann", DOB: "1990-04-12",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, contact.ID)

	loaded, _ := GetCase(store, created.ID)
	assert.Len(t, loaded.Contacts, 1)

	people := store.People()
	assert.Len(t, people, 1)
	assert.Equal(t, created.ID, people[0].Cases[0].ID)
}

func TestAddContactWithoutNameIsNoOp(t *testing.T) {
	store := setupStoreTest()
	created, _ := CreateCase(store, "F010A017")

	_, err := AddContact(store, created.ID, models.ContactRoleZeuge, models.PersonData{Phone: "0151 1234567"})
	assert.ErrorIs(t, err, ErrValidation)

	// Neither a contact nor a registry entry was created
	loaded, _ := GetCase(store, created.ID)
	assert.Empty(t, loaded.Contacts)
	assert.Empty(t, store.People())
}

func TestDeleteContactKeepsRegistryPerson(t *testing.T) {
	store := setupStoreTest()
	created, _ := CreateCase(store, "F010A017")
	contact, _ := AddContact(store, created.ID, models.ContactRoleZeuge, models.PersonData{
		Name: "Max Mustermann", DOB: "1990-04-12",
	})

	assert.NoError(t, DeleteContact(store, created.ID, contact.ID))

	loaded, _ := GetCase(store, created.ID)
	assert.Empty(t, loaded.Contacts)
	// The registry person survives the contact deletion
	assert.Len(t, store.People(), 1)
}

func TestUpdateContactReappliesMerge(t *testing.T) {
	store := setupStoreTest()
	created, _ := CreateCase(store, "F010A017")
	contact, _ := AddContact(store, created.ID, models.ContactRoleZeuge, models.PersonData{
		Name: "Max Mustermann", DOB: "1990-04-12",
	})

	updated, err := UpdateContact(store, created.ID, contact.ID, models.ContactRoleBeschuldigt, models.PersonData{
		Name: "Max Mustermann", DOB: "1990-04-12", Phone: "0151 1234567",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ContactRoleBeschuldigt, updated.Role)

	// The new phone number reached the registry
	people := store.People()
	assert.Len(t, people, 1)
	assert.Equal(t, "0151 1234567", people[0].Phone)
}

func TestReportValidation(t *testing.T) {
	store := setupStoreTest()
	created, _ := CreateCase(store, "F010A017")

	// A report needs a title or a body
	_, err := AddReport(store, created.ID, models.ReportKindKurzbericht, "2026-08-30", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	report, err := AddReport(store, created.ID, models.ReportKindErstbericht, "2026-08-30", "Erstbericht Einbruch", "")
	assert.NoError(t, err)
	assert.Equal(t, models.ReportKindErstbericht, report.Kind)

	updated, err := UpdateReport(store, created.ID, report.ID, "Erstbericht Einbruch", "Sachverhalt aufgenommen.")
	assert.NoError(t, err)
	assert.Equal(t, "Sachverhalt aufgenommen.", updated.Body)

	assert.NoError(t, DeleteReport(store, created.ID, report.ID))
	loaded, _ := GetCase(store, created.ID)
	assert.Empty(t, loaded.Reports)
}

func TestReportBodySanitization(t *testing.T) {
	store := setupStoreTest()
	created, _ := CreateCase(store, "F010A017")

	report, err := AddReport(store, created.ID, models.ReportKindKurzbericht, "2026-08-30",
		"<script>alert(1)</script>Titel", "<b>fett</b><script>alert(1)</script>")
	assert.NoError(t, err)
	assert.NotContains(t, report.Title, "<script>")
	assert.NotContains(t, report.Body, "<script>")
	// Simple formatting survives in the body
	assert.Contains(t, report.Body, "<b>fett</b>")
}

func TestShortNotes(t *testing.T) {
	store := setupStoreTest()
	created, _ := CreateCase(store, "F010A017")

	_, err := AddCaseShort(store, created.ID, "2026-08-30 14:00", "  ")
	assert.ErrorIs(t, err, ErrValidation)

	note, err := AddCaseShort(store, created.ID, "2026-08-30 14:00", "Streifenfahrt ohne Befund")
	assert.NoError(t, err)

	contact, _ := AddContact(store, created.ID, models.ContactRoleZeuge, models.PersonData{Name: "Max Mustermann"})
	_, err = AddContactShort(store, created.ID, contact.ID, "2026-08-30 15:00", "telefonisch erreicht")
	assert.NoError(t, err)

	loaded, _ := GetCase(store, created.ID)
	assert.Len(t, loaded.Shorts, 1)
	assert.Len(t, loaded.Contacts[0].Shorts, 1)

	assert.NoError(t, DeleteCaseShort(store, created.ID, note.ID))
	loaded, _ = GetCase(store, created.ID)
	assert.Empty(t, loaded.Shorts)
}

func TestSearchCases(t *testing.T) {
	store := setupStoreTest()
	a, _ := CreateCase(store, "F010A017")
	b, _ := CreateCase(store, "F011A017")
	_, err := AddContact(store, b.ID, models.ContactRoleBeschuldigt, models.PersonData{
		Name: "Max Mustermann", DOB: "1990-04-12", ELNumber: "EL-2026-042",
	})
	assert.NoError(t, err)

	// Empty query returns everything
	assert.Len(t, SearchCases(store, ""), 2)

	// Case number
	found := SearchCases(store, "f010")
	assert.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	// Contact name and EL number
	assert.Len(t, SearchCases(store, "mustermann"), 1)
	assert.Len(t, SearchCases(store, "el-2026"), 1)
	assert.Empty(t, SearchCases(store, "no-match-at-all"))
}

func TestFoldersAndFiles(t *testing.T) {
	store := setupStoreTest()
	blobs := NewLocalStorage(t.TempDir())
	created, _ := CreateCase(store, "F010A017")

	folder, err := AddFolder(store, created.ID, "Spurensicherung")
	assert.NoError(t, err)

	content := []byte("fake image bytes")
	meta, err := AttachFile(context.Background(), store, blobs, created.ID, folder.ID,
		"tatort.jpg", "image/jpeg", int64(len(content)), bytes.NewReader(content))
	assert.NoError(t, err)
	assert.True(t, meta.IsImage)

	loaded, _ := GetCase(store, created.ID)
	assert.Len(t, loaded.Folders, 2)
	assert.Len(t, loaded.Folders[1].Files, 1)

	// The blob is readable
	body, _, err := blobs.GetBlob(context.Background(), meta.ID)
	assert.NoError(t, err)
	body.Close()

	assert.NoError(t, DeleteFile(context.Background(), store, blobs, created.ID, folder.ID, meta.ID))
	loaded, _ = GetCase(store, created.ID)
	assert.Empty(t, loaded.Folders[1].Files)
}

func TestAttachFileUnknownFolderCleansUpBlob(t *testing.T) {
	store := setupStoreTest()
	blobs := NewLocalStorage(t.TempDir())
	created, _ := CreateCase(store, "F010A017")

	content := []byte("data")
	_, err := AttachFile(context.Background(), store, blobs, created.ID, "no-such-folder",
		"notiz.txt", "text/plain", int64(len(content)), bytes.NewReader(content))
	assert.ErrorIs(t, err, ErrNotFound)

	// The orphaned blob was removed again
	entries, _ := os.ReadDir(filepath.Join(blobs.baseDir, "files"))
	assert.Empty(t, entries)
}

func TestDeleteCaseRemovesBlobsKeepsRegistry(t *testing.T) {
	store := setupStoreTest()
	blobs := NewLocalStorage(t.TempDir())
	created, _ := CreateCase(store, "F010A017")
	_, err := AddContact(store, created.ID, models.ContactRoleZeuge, models.PersonData{Name: "Max Mustermann"})
	assert.NoError(t, err)

	loaded, _ := GetCase(store, created.ID)
	content := []byte("report scan")
	meta, err := AttachFile(context.Background(), store, blobs, created.ID, loaded.Folders[0].ID,
		"scan.pdf", "application/pdf", int64(len(content)), bytes.NewReader(content))
	assert.NoError(t, err)

	assert.NoError(t, DeleteCase(context.Background(), store, blobs, created.ID))
	assert.Empty(t, store.Cases())
	// Registry people survive case deletion
	assert.Len(t, store.People(), 1)
	// The blob is gone
	_, _, err = blobs.GetBlob(context.Background(), meta.ID)
	assert.Error(t, err)
}
