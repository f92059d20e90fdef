package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"case_cockpit_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known keys of the persistent key-value store
const (
	KeyCases    = "cases"
	KeyPeople   = "people"
	KeySequence = "case-sequence-counter"
	KeyTheme    = "theme"
	KeyRoute    = "route"
)

// The sequence counter starts here so the first generated number is F010
const sequenceSeed = 9

// Store wraps the key-value table and exposes the case and person
// collections. It is constructed once at startup and passed explicitly to
// everything that mutates records.
type Store struct {
	db        *gorm.DB
	agentCode string
}

// NewStore creates a store bound to the given database connection
func NewStore(db *gorm.DB, agentCode string) *Store {
	return &Store{db: db, agentCode: agentCode}
}

// Get returns the raw value stored under key, and whether it was present
func (s *Store) Get(key string) (string, bool) {
	var entry models.KVEntry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		return "", false
	}
	return entry.Value, true
}

// Set writes the raw value under key, replacing any previous value.
// The write is a single-row upsert; it either fully succeeds or leaves
// the previous value in place.
func (s *Store) Set(key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Load decodes the JSON stored under key into v. A missing key or a value
// that fails to parse both yield false; corruption is logged but never
// surfaced, the collection is simply treated as absent.
func (s *Store) Load(key string, v interface{}) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Printf("[WARNING] Corrupt JSON under key %q, treating as empty: %v", key, err)
		return false
	}
	return true
}

// Save serializes v to JSON and persists it under key
func (s *Store) Save(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize value for key %q: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// Cases returns the case collection. Absent or corrupt data yields an
// empty slice. Legacy status spellings are normalized on the way out.
func (s *Store) Cases() []models.Case {
	var cases []models.Case
	if !s.Load(KeyCases, &cases) || cases == nil {
		return []models.Case{}
	}
	for i := range cases {
		cases[i].Status = models.NormalizeCaseStatus(cases[i].Status)
	}
	return cases
}

// SaveCases persists the full case collection
func (s *Store) SaveCases(cases []models.Case) error {
	return s.Save(KeyCases, cases)
}

// People returns the person registry. Absent or corrupt data yields an
// empty slice.
func (s *Store) People() []models.Person {
	var people []models.Person
	if !s.Load(KeyPeople, &people) || people == nil {
		return []models.Person{}
	}
	return people
}

// SavePeople persists the full person registry
func (s *Store) SavePeople(people []models.Person) error {
	return s.Save(KeyPeople, people)
}

// NextCaseNumber increments the persisted sequence counter and returns
// the next case number: F + zero-padded sequence + agent code
// (e.g. F010A017). Numbers are strictly increasing per store; a collision
// is only possible if the persisted counter is reset externally.
func (s *Store) NextCaseNumber() (string, error) {
	seq := sequenceSeed
	if raw, ok := s.Get(KeySequence); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			seq = n
		}
	}
	seq++
	if err := s.Set(KeySequence, strconv.Itoa(seq)); err != nil {
		return "", err
	}
	return fmt.Sprintf("F%03d%s", seq, s.agentCode), nil
}

// Theme returns the persisted theme preference, defaulting to dark
func (s *Store) Theme() string {
	if v, ok := s.Get(KeyTheme); ok && (v == "dark" || v == "light") {
		return v
	}
	return "dark"
}

// SetTheme persists the theme preference
func (s *Store) SetTheme(theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("%w: unknown theme %q", ErrValidation, theme)
	}
	return s.Set(KeyTheme, theme)
}

// LastRoute returns the last visited route, defaulting to "/"
func (s *Store) LastRoute() string {
	if v, ok := s.Get(KeyRoute); ok && v != "" {
		return v
	}
	return "/"
}

// SetLastRoute persists the last visited route
func (s *Store) SetLastRoute(route string) error {
	return s.Set(KeyRoute, route)
}
