package services

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"case_cockpit_go/models"
)

// A printable case document is an ordered list of labeled sections; each
// section carries either running text or a table. The renderer below and
// the PDF generator consume it, nothing in the document depends on how it
// is ultimately displayed.

// DocumentSection is one labeled block of a printable document
type DocumentSection struct {
	Label string     `json:"label"`
	Text  string     `json:"text,omitempty"`
	Table [][]string `json:"table,omitempty"` // first row is the header
}

// CaseDocument is the printable rendition of a case file
type CaseDocument struct {
	Title    string            `json:"title"`
	Sections []DocumentSection `json:"sections"`
}

var contactRoleLabels = map[string]string{
	models.ContactRoleErmittler:   "Ermittler",
	models.ContactRoleBeschuldigt: "Beschuldigte Person",
	models.ContactRoleZeuge:       "Zeuge",
	models.ContactRoleOpfer:       "Opfer",
	models.ContactRoleSonstige:    "Sonstige Person",
}

var caseStatusLabels = map[string]string{
	models.CaseStatusOpen:       "Offen",
	models.CaseStatusInProgress: "In Bearbeitung",
	models.CaseStatusClosed:     "Abgeschlossen",
}

// BuildCaseDocument assembles the printable document for a case: master
// data, contacts, reports (newest first) and short notes.
func BuildCaseDocument(c models.Case) CaseDocument {
	doc := CaseDocument{Title: "Fallakte " + c.Title}

	doc.Sections = append(doc.Sections, DocumentSection{
		Label: "Falldaten",
		Table: [][]string{
			{"Fallnummer", "Angelegt", "Status"},
			{c.Title, c.Created.Format("02.01.2006 15:04"), caseStatusLabels[c.Status]},
		},
	})

	if len(c.Contacts) > 0 {
		rows := [][]string{{"Rolle", "Name", "Geburtsdatum", "EL-Nr.", "Telefon", "E-Mail"}}
		contacts := append([]models.Contact(nil), c.Contacts...)
		sort.Slice(contacts, func(i, j int) bool {
			if contacts[i].Role != contacts[j].Role {
				return contacts[i].Role < contacts[j].Role
			}
			return contacts[i].Name < contacts[j].Name
		})
		for _, ct := range contacts {
			rows = append(rows, []string{
				contactRoleLabels[ct.Role], ct.Name, orDash(ct.DOB), orDash(ct.ELNumber),
				orDash(ct.Phone), orDash(ct.Email),
			})
		}
		doc.Sections = append(doc.Sections, DocumentSection{Label: "Kontakte", Table: rows})
	}

	reports := append([]models.Report(nil), c.Reports...)
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Updated.After(reports[j].Updated)
	})
	for _, r := range reports {
		label := r.Kind
		if r.Title != "" {
			label = fmt.Sprintf("%s: %s (%s)", r.Kind, r.Title, r.Date)
		} else if r.Date != "" {
			label = fmt.Sprintf("%s (%s)", r.Kind, r.Date)
		}
		doc.Sections = append(doc.Sections, DocumentSection{Label: label, Text: r.Body})
	}

	if len(c.Shorts) > 0 {
		rows := [][]string{{"Datum/Zeit", "Text"}}
		shorts := append([]models.ShortNote(nil), c.Shorts...)
		sort.Slice(shorts, func(i, j int) bool {
			return shorts[i].DT > shorts[j].DT
		})
		for _, s := range shorts {
			rows = append(rows, []string{s.DT, s.Text})
		}
		doc.Sections = append(doc.Sections, DocumentSection{Label: "Kurzberichte", Table: rows})
	}

	return doc
}

// RenderDocumentHTML turns a document into the standalone HTML page the
// PDF generator prints.
func RenderDocumentHTML(doc CaseDocument) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:Helvetica,Arial,sans-serif;font-size:11pt;color:#111;}")
	b.WriteString("h1{font-size:16pt;border-bottom:2px solid #111;padding-bottom:4px;}")
	b.WriteString("h2{font-size:12pt;margin-top:18px;}")
	b.WriteString("table{border-collapse:collapse;width:100%;margin-top:6px;}")
	b.WriteString("th,td{border:1px solid #999;padding:4px 6px;text-align:left;font-size:10pt;}")
	b.WriteString("th{background:#eee;}")
	b.WriteString("p{white-space:pre-wrap;}")
	b.WriteString("</style></head><body>")
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(doc.Title))

	for _, section := range doc.Sections {
		fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(section.Label))
		if len(section.Table) > 0 {
			b.WriteString("<table>")
			for i, row := range section.Table {
				b.WriteString("<tr>")
				tag := "td"
				if i == 0 {
					tag = "th"
				}
				for _, cell := range row {
					fmt.Fprintf(&b, "<%s>%s</%s>", tag, html.EscapeString(cell), tag)
				}
				b.WriteString("</tr>")
			}
			b.WriteString("</table>")
		}
		if section.Text != "" {
			fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(section.Text))
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "–"
	}
	return s
}
