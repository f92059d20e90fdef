package services

import (
	"testing"

	"case_cockpit_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStoreTest() *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.KVEntry{}, &models.Session{})
	return NewStore(db, "A017")
}

func TestStoreGetSet(t *testing.T) {
	store := setupStoreTest()

	// Missing key
	_, ok := store.Get("nothing-here")
	assert.False(t, ok)

	// Write and read back
	assert.NoError(t, store.Set("greeting", "hallo"))
	v, ok := store.Get("greeting")
	assert.True(t, ok)
	assert.Equal(t, "hallo", v)

	// Overwrite replaces
	assert.NoError(t, store.Set("greeting", "servus"))
	v, _ = store.Get("greeting")
	assert.Equal(t, "servus", v)
}

func TestStoreLoadSaveRoundTrip(t *testing.T) {
	store := setupStoreTest()

	original := []models.Case{models.NewCase("F010A017"), models.NewCase("F011A017")}
	assert.NoError(t, store.SaveCases(original))

	loaded := store.Cases()
	assert.Len(t, loaded, 2)
	assert.Equal(t, original[0].ID, loaded[0].ID)
	assert.Equal(t, original[1].Title, loaded[1].Title)
}

func TestStoreCorruptValueTreatedAsEmpty(t *testing.T) {
	store := setupStoreTest()

	// Corrupt JSON under the cases key must not surface as an error; the
	// collection simply reads as empty
	assert.NoError(t, store.Set(KeyCases, "{definitely not json"))
	assert.Empty(t, store.Cases())

	// And a save afterwards repairs the key
	assert.NoError(t, store.SaveCases([]models.Case{models.NewCase("F010A017")}))
	assert.Len(t, store.Cases(), 1)
}

func TestStoreEmptyCollections(t *testing.T) {
	store := setupStoreTest()

	// Absent collections are empty slices, never nil panics
	assert.Empty(t, store.Cases())
	assert.Empty(t, store.People())

	// A stored JSON null also reads as empty
	assert.NoError(t, store.Set(KeyPeople, "null"))
	assert.Empty(t, store.People())
}

func TestNextCaseNumberSequence(t *testing.T) {
	store := setupStoreTest()

	// The very first number on a fresh store
	first, err := store.NextCaseNumber()
	assert.NoError(t, err)
	assert.Equal(t, "F010A017", first)

	second, err := store.NextCaseNumber()
	assert.NoError(t, err)
	assert.Equal(t, "F011A017", second)

	// The counter is persisted, not in-memory
	reopened := NewStore(store.db, "A017")
	third, err := reopened.NextCaseNumber()
	assert.NoError(t, err)
	assert.Equal(t, "F012A017", third)
}

func TestNextCaseNumberAgentCode(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	db.AutoMigrate(&models.KVEntry{})

	store := NewStore(db, "B204")
	number, err := store.NextCaseNumber()
	assert.NoError(t, err)
	assert.Equal(t, "F010B204", number)
}

func TestStoreStatusNormalizationOnLoad(t *testing.T) {
	store := setupStoreTest()

	// Legacy status spelling stored by an older client
	assert.NoError(t, store.Set(KeyCases, `[{"id":"c1","title":"F010A017","status":"progress"}]`))

	cases := store.Cases()
	assert.Len(t, cases, 1)
	assert.Equal(t, models.CaseStatusInProgress, cases[0].Status)
}

func TestStoreThemeValidation(t *testing.T) {
	store := setupStoreTest()

	assert.Equal(t, "dark", store.Theme())
	assert.NoError(t, store.SetTheme("light"))
	assert.Equal(t, "light", store.Theme())

	err := store.SetTheme("neon")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "light", store.Theme())
}

func TestStoreLastRoute(t *testing.T) {
	store := setupStoreTest()

	assert.Equal(t, "/", store.LastRoute())
	assert.NoError(t, store.SetLastRoute("/cases/abc"))
	assert.Equal(t, "/cases/abc", store.LastRoute())
}
