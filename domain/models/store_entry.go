package models

import "time"

// StoreEntry is single key/value row of the database backed store
type StoreEntry struct {
	Key       string `gorm:"primaryKey;not null" validate:"required"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
