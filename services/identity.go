package services

import (
	"fmt"
	"time"

	"case_cockpit_go/models"

	"github.com/google/uuid"
)

// The person registry deduplicates contacts entered independently across
// cases. Contacts are deliberately not normalized into foreign keys; the
// registry is a best-effort secondary index that can be rebuilt at any
// time by replaying all contacts (SyncPeopleFromCases).

// UpsertPersonFromContact folds a saved contact into the global registry.
// A person with the same identity key absorbs the contact's fields
// additively: a non-empty incoming field lands only where the person's
// field is still empty. The case reference is appended once, keyed by
// case id. The full registry is persisted after every upsert.
func UpsertPersonFromContact(store *Store, caseRef *models.CaseRef, contact models.Contact) (models.Person, error) {
	if contact.Name == "" {
		return models.Person{}, fmt.Errorf("%w: contact name is required", ErrValidation)
	}

	people := store.People()
	key := contact.IdentityKey()

	for i := range people {
		if people[i].IdentityKey() != key {
			continue
		}
		people[i].FillMissingFrom(contact.PersonData)
		people[i].Updated = time.Now()
		if caseRef != nil {
			people[i].AddCaseRef(*caseRef)
		}
		if err := store.SavePeople(people); err != nil {
			return models.Person{}, err
		}
		return people[i], nil
	}

	person := models.NewPersonFromContact(contact, caseRef)
	people = append(people, person)
	if err := store.SavePeople(people); err != nil {
		return models.Person{}, err
	}
	return person, nil
}

// SyncPeopleFromCases rebuilds the registry by replaying every contact of
// every case. The replay is idempotent: running it twice produces neither
// duplicate persons nor duplicate case back-references. Existing registry
// entries are kept (a person is never deleted implicitly).
func SyncPeopleFromCases(store *Store) error {
	for _, c := range store.Cases() {
		ref := c.Ref()
		for _, contact := range c.Contacts {
			if contact.Name == "" {
				continue
			}
			if _, err := UpsertPersonFromContact(store, &ref, contact); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeletePerson removes a registry entry by id. Deletion is only ever
// explicit; nothing in the merge path removes a person.
func DeletePerson(store *Store, personID string) error {
	people := store.People()
	kept := people[:0]
	for _, p := range people {
		if p.ID != personID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(people) {
		return fmt.Errorf("%w: person %s", ErrNotFound, personID)
	}
	return store.SavePeople(kept)
}

// SplitPerson detaches one case back-reference from a person into a fresh
// registry entry carrying the same data. Manual escape hatch for the known
// limitation that two distinct people sharing name and date of birth merge
// into one entry.
func SplitPerson(store *Store, personID, caseID string) (models.Person, error) {
	people := store.People()
	for i := range people {
		if people[i].ID != personID {
			continue
		}
		var detached *models.CaseRef
		kept := make([]models.CaseRef, 0, len(people[i].Cases))
		for _, ref := range people[i].Cases {
			if ref.ID == caseID {
				r := ref
				detached = &r
				continue
			}
			kept = append(kept, ref)
		}
		if detached == nil {
			return models.Person{}, fmt.Errorf("%w: person %s has no reference to case %s", ErrNotFound, personID, caseID)
		}
		people[i].Cases = kept
		people[i].Updated = time.Now()

		split := people[i]
		split.ID = uuid.New().String()
		split.Cases = []models.CaseRef{*detached}
		now := time.Now()
		split.Created = now
		split.Updated = now

		people = append(people, split)
		if err := store.SavePeople(people); err != nil {
			return models.Person{}, err
		}
		return split, nil
	}
	return models.Person{}, fmt.Errorf("%w: person %s", ErrNotFound, personID)
}
