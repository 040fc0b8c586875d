package application

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	importer "talentdesk/internal/importer/domain"
)

// Policy carries the import defaults an operator can tune per deployment.
type Policy struct {
	FridayFallback  string `yaml:"friday_fallback"`
	DefaultTimezone string `yaml:"default_timezone"`
	DefaultCountry  string `yaml:"default_country"`
	AvailableLabel  string `yaml:"available_label"`
	SessionTTL      string `yaml:"session_ttl"`
}

// LoadPolicy loads policy from env with an optional yaml overlay pointed at
// by IMPORT_CONFIG.
func LoadPolicy() (Policy, error) {
	policy := Policy{
		FridayFallback:  getenvDefault("IMPORT_FRIDAY_FALLBACK", string(importer.FridaySatSun)),
		DefaultTimezone: getenvDefault("IMPORT_DEFAULT_TIMEZONE", "America/Los_Angeles"),
		DefaultCountry:  getenvDefault("IMPORT_DEFAULT_COUNTRY", "USA"),
		AvailableLabel:  getenvDefault("IMPORT_AVAILABLE_LABEL", "Available"),
		SessionTTL:      getenvDefault("IMPORT_SESSION_TTL", "1h"),
	}

	if path := os.Getenv("IMPORT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return policy, err
		}
		if err := yaml.Unmarshal(data, &policy); err != nil {
			return policy, err
		}
	}

	if _, ok := importer.ParseFridayPolicy(policy.FridayFallback); !ok {
		return policy, fmt.Errorf("import config: invalid friday_fallback %q", policy.FridayFallback)
	}
	if _, err := time.ParseDuration(policy.SessionTTL); err != nil {
		return policy, fmt.Errorf("import config: invalid session_ttl %q", policy.SessionTTL)
	}
	return policy, nil
}

// FridayPolicy returns the validated fallback policy.
func (p Policy) FridayPolicy() importer.FridayPolicy {
	policy, ok := importer.ParseFridayPolicy(p.FridayFallback)
	if !ok {
		return importer.FridaySatSun
	}
	return policy
}

// TTL returns the validated session time-to-live.
func (p Policy) TTL() time.Duration {
	ttl, err := time.ParseDuration(p.SessionTTL)
	if err != nil || ttl <= 0 {
		return time.Hour
	}
	return ttl
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
