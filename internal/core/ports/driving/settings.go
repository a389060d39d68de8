package driving

import "github.com/custodia-labs/campusnav/internal/core/domain"

// SettingsService manages navigation settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for unset keys.
	Get() (*domain.NavigationSettings, error)

	// Save validates and persists settings.
	Save(settings *domain.NavigationSettings) error

	// Set updates a single dot-separated key, e.g. "navigation.forward_speed".
	// The resulting settings are validated before being persisted.
	Set(key, value string) error

	// Keys returns every supported settings key.
	Keys() []string

	// Values returns the current value of every key as Set would accept it.
	Values() (map[string]string, error)

	// Validate checks settings against their constraints.
	Validate(settings *domain.NavigationSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.NavigationSettings
}
