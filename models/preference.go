package models

import (
	"github.com/lib/pq"
)

// DefaultRadiusKm is the search radius applied before the user ever saves
// preferences.
const DefaultRadiusKm = 5.0

// Preference is the singleton per-device preferences record. One row,
// overwritten wholesale on save, read at session start.
type Preference struct {
	ID                uint           `json:"-" gorm:"primaryKey"`
	Radius            float64        `json:"radius" gorm:"not null;default:5"`
	DefaultMood       string         `json:"defaultMood,omitempty"`
	DefaultBudget     string         `json:"defaultBudget,omitempty"`
	UseMiles          bool           `json:"useMiles"`
	WeatherEnabled    bool           `json:"weatherEnabled"`
	DefaultCategories pq.StringArray `json:"defaultCategories,omitempty" gorm:"type:text[]"`
}
