package models

import "time"

// StoredValue is one row of the key/value table backing persistent storage.
type StoredValue struct {
	Key       string    `gorm:"primaryKey;column:storage_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
