package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report kind constants
const (
	ReportKindPersonenbericht  = "Personenbericht"
	ReportKindErstbericht      = "Erstbericht"
	ReportKindAbschlussbericht = "Abschlussbericht"
	ReportKindKurzbericht      = "Kurzbericht"
)

// Report is a dated write-up filed under a case
type Report struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Date    string    `json:"date"` // YYYY-MM-DD as entered
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// NewReport creates a report with a fresh id and timestamps
func NewReport(kind, date, title, body string) Report {
	if !IsValidReportKind(kind) {
		kind = ReportKindKurzbericht
	}
	now := time.Now()
	return Report{
		ID:      uuid.New().String(),
		Kind:    kind,
		Date:    date,
		Title:   strings.TrimSpace(title),
		Body:    strings.TrimSpace(body),
		Created: now,
		Updated: now,
	}
}

// HasContent reports whether the report carries enough text to persist.
// A report with neither title nor body is dropped.
func (r Report) HasContent() bool {
	return strings.TrimSpace(r.Title) != "" || strings.TrimSpace(r.Body) != ""
}

// IsValidReportKind checks if the kind is one of the known values
func IsValidReportKind(kind string) bool {
	switch kind {
	case ReportKindPersonenbericht, ReportKindErstbericht, ReportKindAbschlussbericht, ReportKindKurzbericht:
		return true
	}
	return false
}
