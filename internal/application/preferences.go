package application

import (
	"imagepdf/internal/models"
	"imagepdf/internal/services"
)

type PreferencesHandler struct {
	prefsService *services.PreferencesService
}

func NewPreferencesHandler(prefsService *services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		prefsService: prefsService,
	}
}

func (h *PreferencesHandler) GetPreferences() (*models.UserPreferencesData, error) {
	prefs, err := h.prefsService.GetPreferences()
	if err != nil {
		return nil, NewPreferencesError("load", err)
	}
	return prefs, nil
}

func (h *PreferencesHandler) UpdatePreferences(data map[string]interface{}) error {
	if err := h.prefsService.UpdatePreferences(data); err != nil {
		return NewPreferencesError("update", err)
	}
	return nil
}
