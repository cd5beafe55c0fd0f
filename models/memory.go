package models

import (
	"time"

	"github.com/lib/pq"
)

// Memory is a record of a completed date, created from a Place or an Idea.
// Append-only; reads return newest first.
type Memory struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	PlaceIDs    pq.StringArray `json:"placeIds" gorm:"type:text[]"`
	Rating      *int           `json:"rating,omitempty"`
	Notes       string         `json:"notes,omitempty" gorm:"type:text"`
}
