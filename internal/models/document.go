package models

import "time"

// Document is one schema-less record of a collection, stored as JSON.
type Document struct {
	ID         string `gorm:"primaryKey;size:36"`
	Collection string `gorm:"size:64;not null;index"`
	Data       string `gorm:"type:jsonb;not null"`

	CreatedAt time.Time `gorm:"index"`
}
