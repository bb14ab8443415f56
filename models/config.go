package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Figure and table output styles.
const (
	StyleMarkdown = "markdown"
	StyleHTML     = "html"
)

// ConversionSettings controls how figures and tables are rendered during
// HTML to Markdown conversion. Immutable for the lifetime of one run.
type ConversionSettings struct {
	FigureStyle string `yaml:"figure_style"`
	TableStyle  string `yaml:"table_style"`
}

// DefaultConversionSettings returns the fixed defaults: markdown for both.
func DefaultConversionSettings() ConversionSettings {
	return ConversionSettings{
		FigureStyle: StyleMarkdown,
		TableStyle:  StyleMarkdown,
	}
}

// Validate checks that both styles are one of the known values.
func (s ConversionSettings) Validate() error {
	if s.FigureStyle != StyleMarkdown && s.FigureStyle != StyleHTML {
		return fmt.Errorf("invalid figure style: %q", s.FigureStyle)
	}
	if s.TableStyle != StyleMarkdown && s.TableStyle != StyleHTML {
		return fmt.Errorf("invalid table style: %q", s.TableStyle)
	}
	return nil
}

// ArchiveConfig holds runtime configuration for one archive invocation.
// CLI flags override config file values, which override defaults.
type ArchiveConfig struct {
	URLs        []string
	WorkerCount int
	OutputDir   string
	Conversion  ConversionSettings
}

// configFile is the YAML shape of an optional config file. Pointer fields
// distinguish "absent" from "explicitly set" so the merge is shallow:
// absent fields keep the default, present fields override it.
type configFile struct {
	URLs        []string `yaml:"urls"`
	WorkerCount *int     `yaml:"workers"`
	OutputDir   *string  `yaml:"output_dir"`
	FigureStyle *string  `yaml:"figure_style"`
	TableStyle  *string  `yaml:"table_style"`
}

// LoadConfig reads an optional YAML config file and merges it over defaults.
func LoadConfig(path string) (*ArchiveConfig, error) {
	config := &ArchiveConfig{
		WorkerCount: 4,
		OutputDir:   "archives",
		Conversion:  DefaultConversionSettings(),
	}

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(file.URLs) > 0 {
		config.URLs = file.URLs
	}
	if file.WorkerCount != nil && *file.WorkerCount > 0 {
		config.WorkerCount = *file.WorkerCount
	}
	if file.OutputDir != nil && *file.OutputDir != "" {
		config.OutputDir = *file.OutputDir
	}
	if file.FigureStyle != nil {
		config.Conversion.FigureStyle = *file.FigureStyle
	}
	if file.TableStyle != nil {
		config.Conversion.TableStyle = *file.TableStyle
	}

	if err := config.Conversion.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
