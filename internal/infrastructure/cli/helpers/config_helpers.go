package helpers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/qrgen/internal/app"
	configapp "github.com/doeshing/qrgen/internal/application/config"
	"github.com/doeshing/qrgen/internal/domain"
	configinfra "github.com/doeshing/qrgen/internal/infrastructure/config"
)

// GetConfigLoader extracts the config loader from container with error handling
func GetConfigLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, fmt.Errorf("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// SaveConfigWithValidation validates and saves configuration with automatic backup.
// It returns the backup path, empty when there was no file to back up.
func SaveConfigWithValidation(container *app.Container, cfg domain.Config) (string, error) {
	loader, err := GetConfigLoader(container)
	if err != nil {
		return "", err
	}

	if err := configapp.Validate(cfg); err != nil {
		return "", fmt.Errorf("configuration validation failed: %w", err)
	}

	backup, err := BackupIfExists(loader)
	if err != nil {
		return "", err
	}

	if err := loader.Save(cfg); err != nil {
		return backup, fmt.Errorf("failed to save configuration: %w", err)
	}

	return backup, nil
}

// BackupIfExists copies the config file aside when it exists.
func BackupIfExists(loader *configinfra.FileLoader) (string, error) {
	if _, err := os.Stat(loader.Path()); err != nil {
		return "", nil
	}
	backup, err := loader.Backup()
	if err != nil {
		return "", fmt.Errorf("failed to create configuration backup: %w", err)
	}
	return backup, nil
}

// ConfigToMap converts cfg into a YAML-keyed map.
func ConfigToMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var cfgMap map[string]interface{}
	if err := yaml.Unmarshal(raw, &cfgMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to map: %w", err)
	}
	return cfgMap, nil
}

// MapToConfig converts a YAML-keyed map back into domain.Config.
func MapToConfig(cfgMap map[string]interface{}) (domain.Config, error) {
	raw, err := yaml.Marshal(cfgMap)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to marshal updated map: %w", err)
	}

	var updated domain.Config
	if err := yaml.Unmarshal(raw, &updated); err != nil {
		return domain.Config{}, fmt.Errorf("failed to unmarshal to Config: %w", err)
	}
	return updated, nil
}

// ParseYAMLValue parses a string value as YAML, falling back to literal string
func ParseYAMLValue(input string) (interface{}, error) {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil {
		return input, nil
	}
	return parsed, nil
}

// SetNestedMapValue sets a value in a nested map using a key path.
// Intermediate keys must already exist so typos are not silently added.
func SetNestedMapValue(root map[string]interface{}, keyPath []string, value interface{}) bool {
	if len(keyPath) == 0 {
		return false
	}

	current := root
	for _, key := range keyPath[:len(keyPath)-1] {
		child, isMap := current[key].(map[string]interface{})
		if !isMap {
			return false
		}
		current = child
	}

	last := keyPath[len(keyPath)-1]
	if _, exists := current[last]; !exists {
		return false
	}
	current[last] = value
	return true
}

// TraverseNestedMap retrieves a value from a nested map using a key path
// Returns the value and true if found, nil and false otherwise
func TraverseNestedMap(data interface{}, keyPath []string) (interface{}, bool) {
	if len(keyPath) == 0 {
		return data, true
	}

	switch node := data.(type) {
	case map[string]interface{}:
		next, exists := node[keyPath[0]]
		if !exists {
			return nil, false
		}
		return TraverseNestedMap(next, keyPath[1:])
	default:
		return nil, false
	}
}
