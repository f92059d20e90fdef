package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookFileName is the suggested download name for the Excel export
const WorkbookFileName = "case-cockpit-export.xlsx"

// GenerateWorkbook builds an Excel workbook with one sheet for the case
// list and one for the person registry. Spreadsheet companion to the JSON
// snapshot for manual backups and offline review.
func GenerateWorkbook(store *Store) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	// --- Cases sheet ---
	sheetCases := "Fälle"
	f.SetSheetName("Sheet1", sheetCases)
	caseHeaders := []string{"Fallnummer", "Angelegt", "Status", "Kontakte", "Berichte", "Kurzberichte", "Ordner"}
	for i, header := range caseHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetCases, cell, header)
	}
	f.SetColWidth(sheetCases, "A", "G", 18)
	f.SetCellStyle(sheetCases, "A1", "G1", headerStyle)

	for row, c := range store.Cases() {
		values := []interface{}{
			c.Title,
			c.Created.Format("2006-01-02 15:04"),
			caseStatusLabels[c.Status],
			len(c.Contacts),
			len(c.Reports),
			len(c.Shorts),
			len(c.Folders),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetCases, cell, v)
		}
	}

	// --- People sheet ---
	sheetPeople := "Personen"
	f.NewSheet(sheetPeople)
	peopleHeaders := []string{"Name", "Geburtsdatum", "Telefon", "E-Mail", "Adresse", "Nationalität", "EL-Nr.", "Fälle"}
	for i, header := range peopleHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetPeople, cell, header)
	}
	f.SetColWidth(sheetPeople, "A", "H", 20)
	f.SetCellStyle(sheetPeople, "A1", "H1", headerStyle)

	for row, p := range store.People() {
		titles := make([]string, 0, len(p.Cases))
		for _, ref := range p.Cases {
			titles = append(titles, ref.Title)
		}
		values := []interface{}{
			p.Name, p.DOB, p.Phone, p.Email, p.Address, p.Nationality, p.ELNumber,
			strings.Join(titles, ", "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetPeople, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}
