package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gorm.io/gorm"

	"imagepdf/internal/document"
	"imagepdf/internal/models"
)

var ErrInvalidPreference = errors.New("invalid preference")

// PreferencesService handles user preferences operations
type PreferencesService struct {
	db       *gorm.DB
	defaults models.UserPreferencesData
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(db *gorm.DB, defaults models.UserPreferencesData) *PreferencesService {
	return &PreferencesService{db: db, defaults: defaults}
}

// GetPreferences gets the current user preferences
func (s *PreferencesService) GetPreferences() (*models.UserPreferencesData, error) {
	prefs, err := models.GetOrCreatePreferences(s.db, s.defaults)
	if err != nil {
		return nil, err
	}

	prefsData := prefs.GetPreferences(s.defaults)
	return &prefsData, nil
}

// UpdatePreferences applies the known keys in data. Values arrive from the
// frontend as decoded JSON, so numbers are float64. Nothing is saved if any
// value is invalid.
func (s *PreferencesService) UpdatePreferences(data map[string]interface{}) error {
	prefs, err := models.GetOrCreatePreferences(s.db, s.defaults)
	if err != nil {
		return err
	}

	currentPrefs := prefs.GetPreferences(s.defaults)

	if val, ok := data["page_format"]; ok {
		name, ok := val.(string)
		if !ok {
			return fmt.Errorf("%w: page_format must be a string", ErrInvalidPreference)
		}
		format, err := document.LookupPageFormat(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPreference, err)
		}
		currentPrefs.PageFormat = format.Name
	}

	if val, ok := data["size_limit_mb"]; ok {
		limit, ok := val.(float64)
		if !ok || limit <= 0 {
			return fmt.Errorf("%w: size_limit_mb must be a positive number", ErrInvalidPreference)
		}
		currentPrefs.SizeLimitMB = limit
	}

	if val, ok := data["output_dir"]; ok {
		dir, ok := val.(string)
		if !ok {
			return fmt.Errorf("%w: output_dir must be a string", ErrInvalidPreference)
		}
		expanded, err := homedir.Expand(strings.TrimSpace(dir))
		if err != nil {
			return fmt.Errorf("%w: output_dir: %v", ErrInvalidPreference, err)
		}
		currentPrefs.OutputDir = expanded
	}

	if err := prefs.SetPreferences(currentPrefs); err != nil {
		return err
	}

	return s.db.Save(prefs).Error
}

// GetOutputFolder returns the preferred output folder, falling back to the
// configured default.
func (s *PreferencesService) GetOutputFolder() (string, error) {
	prefs, err := s.GetPreferences()
	if err != nil {
		return "", err
	}
	if prefs.OutputDir == "" {
		return s.defaults.OutputDir, nil
	}
	return prefs.OutputDir, nil
}
