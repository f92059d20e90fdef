package models

import "time"

// KVEntry is one row of the persistent key-value store. Collections
// (cases, people) and small preferences are each stored as a single
// JSON value under a well-known key.
type KVEntry struct {
	Key       string    `gorm:"primarykey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for KVEntry model
func (KVEntry) TableName() string {
	return "kv_entries"
}
