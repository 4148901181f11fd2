package models

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserPreferences represents user preferences in the database
type UserPreferences struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PreferencesJSON string    `gorm:"type:text" json:"preferences_json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPreferencesData represents the structured preferences data
type UserPreferencesData struct {
	PageFormat  string  `json:"page_format"`
	SizeLimitMB float64 `json:"size_limit_mb"`
	OutputDir   string  `json:"output_dir"`
}

// GetPreferences parses the stored preferences. Fields missing from the
// stored JSON keep the values in defaults.
func (up *UserPreferences) GetPreferences(defaults UserPreferencesData) UserPreferencesData {
	if up.PreferencesJSON == "" {
		return defaults
	}

	prefs := defaults
	if err := json.Unmarshal([]byte(up.PreferencesJSON), &prefs); err != nil {
		return defaults
	}

	return prefs
}

// SetPreferences sets the preferences data
func (up *UserPreferences) SetPreferences(prefs UserPreferencesData) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	up.PreferencesJSON = string(data)
	return nil
}

// GetOrCreatePreferences gets or creates the global preferences row
func GetOrCreatePreferences(db *gorm.DB, defaults UserPreferencesData) (*UserPreferences, error) {
	var prefs UserPreferences

	result := db.First(&prefs, 1)
	if result.Error == nil {
		return &prefs, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	prefs = UserPreferences{ID: 1}
	if err := prefs.SetPreferences(defaults); err != nil {
		return nil, err
	}
	if err := db.Create(&prefs).Error; err != nil {
		return nil, err
	}

	return &prefs, nil
}
