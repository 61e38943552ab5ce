package models

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer, float
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppSettings represents the application settings structure
type AppSettings struct {
	SiteTitle            string `json:"site_title" validate:"required,min=1,max=255"`
	SiteDescription      string `json:"site_description" validate:"max=500"`
	QuestionnaireEnabled bool   `json:"questionnaire_enabled"`
	ChatEnabled          bool   `json:"chat_enabled"`
	UploadsEnabled       bool   `json:"uploads_enabled"`
	mu                   sync.RWMutex
}

// Global settings instance
var (
	appSettings *AppSettings
	settingsMu  sync.RWMutex
)

// GetAppSettings returns the current application settings
func GetAppSettings() *AppSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if appSettings == nil {
		return &AppSettings{
			SiteTitle:            "VisaPilot",
			QuestionnaireEnabled: true,
			ChatEnabled:          true,
			UploadsEnabled:       true,
		}
	}
	return appSettings
}

// LoadSettings loads settings from database into memory
func LoadSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Initialize with defaults
	appSettings = &AppSettings{
		SiteTitle:            "VisaPilot",
		SiteDescription:      "UK Innovator Founder visa preparation",
		QuestionnaireEnabled: true,
		ChatEnabled:          true,
		UploadsEnabled:       true,
	}

	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case "site_title":
			appSettings.SiteTitle = setting.Value
		case "site_description":
			appSettings.SiteDescription = setting.Value
		case "questionnaire_enabled":
			appSettings.QuestionnaireEnabled = setting.Value == "true"
		case "chat_enabled":
			appSettings.ChatEnabled = setting.Value == "true"
		case "uploads_enabled":
			appSettings.UploadsEnabled = setting.Value == "true"
		}
	}

	return nil
}

// SaveSettings saves current settings to database
func SaveSettings(db *gorm.DB, settings *AppSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	settingsMap := map[string]interface{}{
		"site_title":            settings.SiteTitle,
		"site_description":      settings.SiteDescription,
		"questionnaire_enabled": fmt.Sprintf("%t", settings.QuestionnaireEnabled),
		"chat_enabled":          fmt.Sprintf("%t", settings.ChatEnabled),
		"uploads_enabled":       fmt.Sprintf("%t", settings.UploadsEnabled),
	}

	for key, value := range settingsMap {
		var setting Setting
		result := db.Where("setting_key = ?", key).First(&setting)

		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				setting = Setting{
					Key:   key,
					Value: fmt.Sprintf("%v", value),
					Type:  getSettingType(key),
				}
				if err := db.Create(&setting).Error; err != nil {
					return fmt.Errorf("failed to create setting %s: %w", key, err)
				}
			} else {
				return fmt.Errorf("failed to query setting %s: %w", key, result.Error)
			}
		} else {
			setting.Value = fmt.Sprintf("%v", value)
			if err := db.Save(&setting).Error; err != nil {
				return fmt.Errorf("failed to update setting %s: %w", key, err)
			}
		}
	}

	appSettings = settings
	return nil
}

// getSettingType returns the type of a setting based on its key
func getSettingType(key string) string {
	switch key {
	case "questionnaire_enabled", "chat_enabled", "uploads_enabled":
		return "boolean"
	default:
		return "string"
	}
}

// Validate validates the settings
func (s *AppSettings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// ToJSON converts settings to JSON
func (s *AppSettings) ToJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s)
}

// FromJSON loads settings from JSON
func (s *AppSettings) FromJSON(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Unmarshal(data, s)
}

// GetSiteTitle returns the site title
func (s *AppSettings) GetSiteTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SiteTitle
}

// IsQuestionnaireEnabled reports whether new submissions are accepted
func (s *AppSettings) IsQuestionnaireEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.QuestionnaireEnabled
}

// IsChatEnabled reports whether the assistant is available
func (s *AppSettings) IsChatEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ChatEnabled
}

// IsUploadsEnabled reports whether document uploads are accepted
func (s *AppSettings) IsUploadsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.UploadsEnabled
}
