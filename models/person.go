package models

import (
	"time"

	"github.com/google/uuid"
)

// CaseRef is a back-reference from a registry person to a case
type CaseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Person is the deduplicated, case-independent registry entry for a real
// individual. Persons are never deleted implicitly; only an explicit user
// action removes one.
type Person struct {
	PersonData

	ID      string    `json:"id"`
	Cases   []CaseRef `json:"cases"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// NewPersonFromContact creates a registry entry copying all contact fields
func NewPersonFromContact(contact Contact, caseRef *CaseRef) Person {
	now := time.Now()
	p := Person{
		PersonData: contact.PersonData,
		ID:         uuid.New().String(),
		Cases:      []CaseRef{},
		Created:    now,
		Updated:    now,
	}
	if caseRef != nil {
		p.Cases = append(p.Cases, *caseRef)
	}
	return p
}

// AddCaseRef appends the reference unless a ref with the same case id is
// already present. Returns true if the list changed.
func (p *Person) AddCaseRef(ref CaseRef) bool {
	for _, existing := range p.Cases {
		if existing.ID == ref.ID {
			return false
		}
	}
	p.Cases = append(p.Cases, ref)
	return true
}
