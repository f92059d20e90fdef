package services

import (
	"testing"

	"case_cockpit_go/models"

	"github.com/stretchr/testify/assert"
)

func buildDocumentTestCase() models.Case {
	c := models.NewCase("F010A017")
	c.Status = models.CaseStatusInProgress
	c.Contacts = []models.Contact{
		models.NewContact(models.ContactRoleZeuge, models.PersonData{
			Name: "Max Mustermann", DOB: "1990-04-12", ELNumber: "EL-2026-042",
		}),
		models.NewContact(models.ContactRoleBeschuldigt, models.PersonData{Name: "Anton Berger"}),
	}
	c.Reports = []models.Report{
		models.NewReport(models.ReportKindErstbericht, "2026-08-29", "Erstbericht Einbruch", "Sachverhalt aufgenommen."),
	}
	c.Shorts = []models.ShortNote{models.NewShortNote("2026-08-30 14:00", "Streifenfahrt ohne Befund")}
	return c
}

func TestBuildCaseDocument(t *testing.T) {
	doc := BuildCaseDocument(buildDocumentTestCase())

	assert.Equal(t, "Fallakte F010A017", doc.Title)
	// Master data, contacts, one report, short notes
	assert.Len(t, doc.Sections, 4)

	assert.Equal(t, "Falldaten", doc.Sections[0].Label)
	assert.Equal(t, "In Bearbeitung", doc.Sections[0].Table[1][2])

	assert.Equal(t, "Kontakte", doc.Sections[1].Label)
	// Sorted by role: beschuldigt before zeuge
	assert.Equal(t, "Anton Berger", doc.Sections[1].Table[1][1])
	assert.Equal(t, "Max Mustermann", doc.Sections[1].Table[2][1])
	// Empty fields render as a dash
	assert.Equal(t, "–", doc.Sections[1].Table[1][2])

	assert.Equal(t, "Erstbericht: Erstbericht Einbruch (2026-08-29)", doc.Sections[2].Label)
	assert.Equal(t, "Sachverhalt aufgenommen.", doc.Sections[2].Text)

	assert.Equal(t, "Kurzberichte", doc.Sections[3].Label)
}

func TestBuildCaseDocumentMinimalCase(t *testing.T) {
	doc := BuildCaseDocument(models.NewCase("F010A017"))

	// Only the master data section for an empty case
	assert.Len(t, doc.Sections, 1)
	assert.Equal(t, "Falldaten", doc.Sections[0].Label)
}

func TestRenderDocumentHTMLEscapes(t *testing.T) {
	doc := CaseDocument{
		Title: "Fallakte <F010>",
		Sections: []DocumentSection{
			{Label: "Notizen", Text: "Aussage: <script>alert(1)</script>"},
			{Label: "Tabelle", Table: [][]string{{"Spalte & Wert"}, {"a < b"}}},
		},
	}

	html := RenderDocumentHTML(doc)
	assert.Contains(t, html, "Fallakte &lt;F010&gt;")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "Spalte &amp; Wert")
	assert.Contains(t, html, "<th>")
	assert.Contains(t, html, "<td>a &lt; b</td>")
}
