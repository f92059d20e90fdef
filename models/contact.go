package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact role constants (role of the person within the case)
const (
	ContactRoleErmittler   = "ermittler"
	ContactRoleBeschuldigt = "beschuldigt"
	ContactRoleZeuge       = "zeuge"
	ContactRoleOpfer       = "opfer"
	ContactRoleSonstige    = "sonstige"
)

// Contact is a case-scoped reference to a person involved in a case.
// It carries its own copy of the person data so a case stays
// self-contained and exportable.
type Contact struct {
	PersonData

	ID      string      `json:"id"`
	Role    string      `json:"role"`
	Created time.Time   `json:"created"`
	Shorts  []ShortNote `json:"shorts,omitempty"`
}

// NewContact creates a contact with a fresh id and creation timestamp
func NewContact(role string, data PersonData) Contact {
	if !IsValidContactRole(role) {
		role = ContactRoleSonstige
	}
	return Contact{
		PersonData: data,
		ID:         uuid.New().String(),
		Role:       role,
		Created:    time.Now(),
	}
}

// IsValidContactRole checks if the role is one of the known values
func IsValidContactRole(role string) bool {
	switch role {
	case ContactRoleErmittler, ContactRoleBeschuldigt, ContactRoleZeuge, ContactRoleOpfer, ContactRoleSonstige:
		return true
	}
	return false
}
