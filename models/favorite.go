package models

import (
	"time"

	"github.com/lib/pq"
)

// Favorite is an Idea the user saved, stored verbatim. Newest first on read.
type Favorite struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(64)"`
	SavedAt       time.Time      `json:"savedAt" gorm:"not null;index"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	PlaceIDs      pq.StringArray `json:"placeIds" gorm:"type:text[]"`
	EstimatedCost string         `json:"estimatedCost"`
	Duration      string         `json:"duration"`
}
