package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"countdown/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Only widget preferences are stored, never a chosen target date.
type yamlSettings struct {
	Endpoint      string `yaml:"endpoint,omitempty"`
	RemoteEnabled *bool  `yaml:"remote_enabled,omitempty"`
	ChimeOnExpiry *bool  `yaml:"chime_on_expiry,omitempty"`
	TrayStatus    *bool  `yaml:"tray_status,omitempty"`
}

// LoadSettings reads user preferences for appName from the user config dir.
// If the file does not exist, defaults are returned unchanged.
func LoadSettings(appName string, defaults preferences.Settings) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return defaults, err
	}
	return LoadSettingsFile(configPath, defaults)
}

// LoadSettingsFile reads user preferences from configPath on top of defaults.
func LoadSettingsFile(configPath string, defaults preferences.Settings) (preferences.Settings, error) {
	settings := defaults

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences for appName.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Endpoint:      settings.Endpoint,
		RemoteEnabled: boolPtr(settings.RemoteEnabled),
		ChimeOnExpiry: boolPtr(settings.ChimeOnExpiry),
		TrayStatus:    boolPtr(settings.TrayStatus),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns <user config dir>/<appName>/settings.yaml.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if endpoint := strings.TrimSpace(fileData.Endpoint); validEndpoint(endpoint) {
		settings.Endpoint = endpoint
	}
	if fileData.RemoteEnabled != nil {
		settings.RemoteEnabled = *fileData.RemoteEnabled
	}
	if fileData.ChimeOnExpiry != nil {
		settings.ChimeOnExpiry = *fileData.ChimeOnExpiry
	}
	if fileData.TrayStatus != nil {
		settings.TrayStatus = *fileData.TrayStatus
	}
}

func validEndpoint(value string) bool {
	if value == "" {
		return false
	}
	parsed, err := url.Parse(value)
	return err == nil && parsed.Host != "" && (parsed.Scheme == "http" || parsed.Scheme == "https")
}

func boolPtr(value bool) *bool {
	return &value
}
