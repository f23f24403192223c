package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/lucabaldini/turnario/pkg/core/coverage"
	"github.com/lucabaldini/turnario/pkg/core/model"
)

// ValidationConfig is the externally supplied labor-rest configuration
type ValidationConfig struct {
	MinRestHours       float64 `yaml:"minRestHours" validate:"required,gt=0"`
	MaxConsecutiveDays int     `yaml:"maxConsecutiveDays" validate:"required,min=1"`
}

// TargetOverrideConfig adjusts staffing targets for dates matched by an
// rrule (e.g. every Sunday, public holidays)
type TargetOverrideConfig struct {
	RRule   string         `yaml:"rrule" validate:"required"`
	Optimal map[string]int `yaml:"optimal" validate:"required,dive,min=0"`
}

// CoverageConfig holds the optimal staffing targets per category
type CoverageConfig struct {
	Optimal   map[string]int         `yaml:"optimal" validate:"required,dive,min=0"`
	Overrides []TargetOverrideConfig `yaml:"overrides,omitempty" validate:"dive"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string           `yaml:"databaseURL" validate:"required"`
	HistoryCapacity int              `yaml:"historyCapacity,omitempty" validate:"omitempty,min=1"`
	Validation      ValidationConfig `yaml:"validation" validate:"required"`
	Coverage        CoverageConfig   `yaml:"coverage" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates turnario_config.<env>.yaml, looking in
// the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("turnario_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the category names, and
// the rrule syntax of every target override
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := validateCategories(cfg.Coverage.Optimal); err != nil {
		return err
	}

	for i, override := range cfg.Coverage.Overrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in coverage.overrides[%d]: %w", i, err)
		}
		if err := validateCategories(override.Optimal); err != nil {
			return fmt.Errorf("coverage.overrides[%d]: %w", i, err)
		}
	}

	return nil
}

// validateCategories rejects unknown coverage category names
func validateCategories(optimal map[string]int) error {
	for name := range optimal {
		if _, err := parseCategory(name); err != nil {
			return err
		}
	}
	return nil
}

// parseCategory maps a config key to a coverage category
func parseCategory(name string) (coverage.Category, error) {
	switch strings.ToLower(name) {
	case "morning":
		return coverage.CategoryMorning, nil
	case "afternoon":
		return coverage.CategoryAfternoon, nil
	case "night":
		return coverage.CategoryNight, nil
	case "postnightrest":
		return coverage.CategoryPostNightRest, nil
	}
	return "", fmt.Errorf("unknown coverage category %q", name)
}

// Rules returns the validation rules for the engine
func (c *Config) Rules() model.ValidationRules {
	return model.ValidationRules{
		MinRestHours:       c.Validation.MinRestHours,
		MaxConsecutiveDays: c.Validation.MaxConsecutiveDays,
	}
}

// Targets builds the coverage targets for a month, turning each rrule
// override into a date predicate. The rrule's DTSTART is pinned to a
// window around the month so weekly/monthly patterns expand correctly.
func (c *Config) Targets(month model.MonthKey) (coverage.Targets, error) {
	targets := coverage.Targets{Base: make(map[coverage.Category]int)}

	for name, value := range c.Coverage.Optimal {
		category, err := parseCategory(name)
		if err != nil {
			return coverage.Targets{}, err
		}
		targets.Base[category] = value
	}

	monthStart, err := month.Time()
	if err != nil {
		return coverage.Targets{}, err
	}
	days, err := month.Days()
	if err != nil {
		return coverage.Targets{}, err
	}

	// A one-week buffer on both sides covers rules anchored just
	// outside the month
	searchStart := monthStart.AddDate(0, 0, -7)
	searchEnd := monthStart.AddDate(0, 0, days+7)

	for i, override := range c.Coverage.Overrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return coverage.Targets{}, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}
		rule.DTStart(searchStart)

		matched := make(map[string]bool)
		for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
			matched[occurrence.Format("2006-01-02")] = true
		}

		optimal := make(map[coverage.Category]int, len(override.Optimal))
		for name, value := range override.Optimal {
			category, err := parseCategory(name)
			if err != nil {
				return coverage.Targets{}, fmt.Errorf("coverage.overrides[%d]: %w", i, err)
			}
			optimal[category] = value
		}

		targets.Overrides = append(targets.Overrides, coverage.TargetOverride{
			AppliesTo: func(date time.Time) bool {
				return matched[date.Format("2006-01-02")]
			},
			Optimal: optimal,
		})
	}

	return targets, nil
}

// findConfigFile searches for the named file in the current directory
// and the home directory
func findConfigFile(configFileName string) (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
