package ads

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds file-based SDK settings applied at startup, typically from a
// mobileads.yaml next to the application binary.
type Config struct {
	RequestConfiguration *RequestConfigurationConfig `yaml:"requestConfiguration"`
	SameAppKeyEnabled    *bool                       `yaml:"sameAppKeyEnabled"`
}

// RequestConfigurationConfig is the YAML form of RequestConfiguration.
type RequestConfigurationConfig struct {
	MaxAdContentRating           string   `yaml:"maxAdContentRating"`
	TagForChildDirectedTreatment *int     `yaml:"tagForChildDirectedTreatment"`
	TagForUnderAgeOfConsent      *int     `yaml:"tagForUnderAgeOfConsent"`
	TestDeviceIDs                []string `yaml:"testDeviceIds"`
}

// LoadConfigFile reads a YAML config file. A missing file is not an error
// and yields the zero config.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read ads config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse ads config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply pushes the configured settings to the native SDK through the
// manager. Unset sections are skipped.
func (c Config) Apply(m *AdInstanceManager) error {
	if rc := c.RequestConfiguration; rc != nil {
		err := m.UpdateRequestConfiguration(RequestConfiguration{
			MaxAdContentRating:           rc.MaxAdContentRating,
			TagForChildDirectedTreatment: rc.TagForChildDirectedTreatment,
			TagForUnderAgeOfConsent:      rc.TagForUnderAgeOfConsent,
			TestDeviceIDs:                rc.TestDeviceIDs,
		})
		if err != nil {
			return err
		}
	}
	if c.SameAppKeyEnabled != nil {
		if err := m.SetSameAppKeyEnabled(*c.SameAppKeyEnabled); err != nil {
			return err
		}
	}
	return nil
}

// ApplyConfigFile loads path and applies it to the process-wide manager.
func ApplyConfigFile(path string) error {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return err
	}
	return cfg.Apply(Instance())
}
