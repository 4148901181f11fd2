package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDefaults = UserPreferencesData{PageFormat: "a4", SizeLimitMB: 10, OutputDir: "/tmp/out"}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&UserPreferences{}, &ConversionRecord{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestGetPreferences_EmptyUsesDefaults(t *testing.T) {
	prefs := &UserPreferences{}

	if got := prefs.GetPreferences(testDefaults); got != testDefaults {
		t.Errorf("Expected defaults %+v, got %+v", testDefaults, got)
	}
}

func TestGetPreferences_PartialJSONKeepsDefaults(t *testing.T) {
	prefs := &UserPreferences{PreferencesJSON: `{"page_format":"letter"}`}

	got := prefs.GetPreferences(testDefaults)
	if got.PageFormat != "letter" {
		t.Errorf("Expected page format letter, got %s", got.PageFormat)
	}
	if got.SizeLimitMB != 10 {
		t.Errorf("Expected size limit to stay 10, got %v", got.SizeLimitMB)
	}
}

func TestGetPreferences_CorruptJSON(t *testing.T) {
	prefs := &UserPreferences{PreferencesJSON: "{broken"}

	if got := prefs.GetPreferences(testDefaults); got != testDefaults {
		t.Errorf("Expected defaults for corrupt JSON, got %+v", got)
	}
}

func TestGetOrCreatePreferences(t *testing.T) {
	db := setupTestDB(t)

	created, err := GetOrCreatePreferences(db, testDefaults)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.ID != 1 {
		t.Errorf("Expected preferences row 1, got %d", created.ID)
	}

	if err := created.SetPreferences(UserPreferencesData{PageFormat: "a3", SizeLimitMB: 2}); err != nil {
		t.Fatalf("Failed to set preferences: %v", err)
	}
	if err := db.Save(created).Error; err != nil {
		t.Fatalf("Failed to save preferences: %v", err)
	}

	loaded, err := GetOrCreatePreferences(db, testDefaults)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := loaded.GetPreferences(testDefaults); got.PageFormat != "a3" {
		t.Errorf("Expected stored page format a3, got %s", got.PageFormat)
	}
}

func TestConversionRecord_Succeeded(t *testing.T) {
	if !(&ConversionRecord{}).Succeeded() {
		t.Error("Expected record without error to succeed")
	}
	if (&ConversionRecord{Error: "decode failed"}).Succeeded() {
		t.Error("Expected record with error to fail")
	}
}
