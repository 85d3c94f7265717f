package models

import "time"

// ProfileEntry is one key/value pair owned by a shopper profile.
// The cart lives in the row whose EntryKey is "cart".
type ProfileEntry struct {
	ProfileID string    `gorm:"primaryKey;size:128"`
	EntryKey  string    `gorm:"primaryKey;size:128"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProfileEntry) TableName() string {
	return "profile_entries"
}
