package scheduler

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

type Configuration struct {
	CatalogFile       string    `yaml:"catalog_file"`
	Delimiter         string    `yaml:"delimiter"`
	MinCredits        float64   `yaml:"min_credits"`
	MaxCredits        float64   `yaml:"max_credits"`
	SelectionCount    int       `yaml:"selection_count"`
	Strategy          Strategy  `yaml:"strategy"`
	NoMornings        bool      `yaml:"no_mornings"`
	NoNights          bool      `yaml:"no_nights"`
	SkipMalformedRows bool      `yaml:"skip_malformed_rows"`
	OutputDir         string    `yaml:"output_dir"`
	Formats           []string  `yaml:"formats"`
	TermStart         time.Time `yaml:"term_start"`
	TermWeeks         int       `yaml:"term_weeks"`
	LogLevel          string    `yaml:"log_level"`
	LogFormat         string    `yaml:"log_format"`
}

var validFormats = []string{"csv", "ics", "text"}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		CatalogFile:    "_input csv.csv",
		Delimiter:      "\t",
		MinCredits:     16,
		MaxCredits:     16,
		SelectionCount: 10,
		Strategy:       StrategyCompactness,
		OutputDir:      "_output schedules " + time.Now().Format("2006-01-02 15-04-05"),
		Formats:        []string{"csv"},
		TermStart:      nextMonday(time.Now()),
		TermWeeks:      15,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfiguration overlays the YAML file at path on top of the defaults.
func LoadConfiguration(path string) (*Configuration, error) {
	cfg := NewDefaultConfiguration()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the search cannot honour.
func (c *Configuration) Validate() error {
	if c.MinCredits > c.MaxCredits {
		return fmt.Errorf("%w: min credits %v exceed max credits %v", ErrInvalidConfiguration, c.MinCredits, c.MaxCredits)
	}
	if c.SelectionCount < 0 {
		return fmt.Errorf("%w: selection count must not be negative", ErrInvalidConfiguration)
	}
	if _, ok := rankings[c.Strategy]; !ok {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, c.Strategy)
	}
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("%w: delimiter must be a single character", ErrInvalidConfiguration)
	}
	for _, f := range c.Formats {
		if !slices.Contains(validFormats, f) {
			return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfiguration, f)
		}
	}
	if c.TermWeeks <= 0 {
		return fmt.Errorf("%w: term weeks must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// DelimiterRune returns the catalog field separator.
func (c *Configuration) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return '\t'
}

func nextMonday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}
