package preferences

import (
	"countdown/internal/config"
	"countdown/internal/core/model"
)

// DefaultEndpoint is the public countdown API used when nothing else is configured.
const DefaultEndpoint = "https://digidates.de/api/v1/countdown"

// Settings defines editable user preferences.
type Settings struct {
	Endpoint      string
	RemoteEnabled bool
	ChimeOnExpiry bool
	TrayStatus    bool
}

// DefaultSettings returns default settings for the countdown widget.
func DefaultSettings() Settings {
	return Settings{
		Endpoint:      DefaultEndpoint,
		RemoteEnabled: true,
		ChimeOnExpiry: true,
		TrayStatus:    true,
	}
}

// FromConfig returns defaults seeded from the environment configuration.
func FromConfig(cfg *config.Config) Settings {
	settings := DefaultSettings()
	if cfg == nil {
		return settings
	}
	if cfg.Endpoint != "" {
		settings.Endpoint = cfg.Endpoint
	}
	settings.RemoteEnabled = cfg.RemoteEnabled
	return settings
}

// CountdownConfig converts settings to CountdownConfig.
func (settings Settings) CountdownConfig() model.CountdownConfig {
	return model.CountdownConfig{
		RemoteEnabled: settings.RemoteEnabled && settings.Endpoint != "",
		Endpoint:      settings.Endpoint,
		ChimeOnExpiry: settings.ChimeOnExpiry,
	}
}
