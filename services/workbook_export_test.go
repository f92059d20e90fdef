package services

import (
	"testing"

	"case_cockpit_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestGenerateWorkbook(t *testing.T) {
	store := setupStoreTest()

	c := models.NewCase("F010A017")
	c.Status = models.CaseStatusClosed
	c.Contacts = []models.Contact{
		models.NewContact(models.ContactRoleZeuge, models.PersonData{Name: "Max Mustermann", DOB: "1990-04-12"}),
	}
	assert.NoError(t, store.SaveCases([]models.Case{c}))
	assert.NoError(t, SyncPeopleFromCases(store))

	buf, err := GenerateWorkbook(store)
	assert.NoError(t, err)
	assert.NotZero(t, buf.Len())

	// Read the workbook back and verify both sheets
	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Fälle", "Personen"}, f.GetSheetList())

	caseNumber, err := f.GetCellValue("Fälle", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "F010A017", caseNumber)

	status, err := f.GetCellValue("Fälle", "C2")
	assert.NoError(t, err)
	assert.Equal(t, "Abgeschlossen", status)

	name, err := f.GetCellValue("Personen", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "Max Mustermann", name)

	cases, err := f.GetCellValue("Personen", "H2")
	assert.NoError(t, err)
	assert.Equal(t, "F010A017", cases)
}

func TestGenerateWorkbookEmptyStore(t *testing.T) {
	store := setupStoreTest()

	buf, err := GenerateWorkbook(store)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	// Headers only
	rows, err := f.GetRows("Fälle")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
