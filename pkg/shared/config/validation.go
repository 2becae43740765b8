package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scan-io-git/scanio-parser/pkg/shared/files"
)

const (
	DefaultEntrySuffix  = ".json"
	DefaultOutputFormat = "jsonl"
)

var (
	outputFormats  = []string{"jsonl", "sarif", "postgres"}
	parserPolicies = []string{"abort", "skip"}
)

// ValidateConfig checks if the global configurations have valid values and
// applies environment overrides and defaults.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateScanioConfig(cfg); err != nil {
		return fmt.Errorf("YAML global config: scanio directive is invalid: %w", err)
	}
	if err := ValidateParserConfig(&cfg.Parser); err != nil {
		return fmt.Errorf("YAML global config: parser directive is invalid: %w", err)
	}
	if err := ValidateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("YAML global config: output directive is invalid: %w", err)
	}
	if err := ValidatePostgresConfig(&cfg.Postgres); err != nil {
		return fmt.Errorf("YAML global config: postgres directive is invalid: %w", err)
	}
	return nil
}

// ValidateScanioConfig resolves the home and plugins folders.
func ValidateScanioConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("scanio configuration is nil")
	}
	if err := updateHome(cfg); err != nil {
		return fmt.Errorf("failed to update home folder: %w", err)
	}
	if err := updateFolder(&cfg.Scanio.PluginsFolder, "SCANIO_PLUGINS_FOLDER", "plugins", cfg); err != nil {
		return fmt.Errorf("failed to update plugins folder: %w", err)
	}
	return nil
}

// ValidateParserConfig checks the parser settings. The generation name is
// checked when the vocabulary is selected.
func ValidateParserConfig(parser *Parser) error {
	if parser == nil {
		return fmt.Errorf("parser configuration is nil")
	}
	if generation := os.Getenv("SCANIO_PARSER_GENERATION"); generation != "" {
		parser.Generation = generation
	}
	if parser.Policy != "" && !oneOf(parser.Policy, parserPolicies) {
		return fmt.Errorf("policy must be one of %s, got %q", strings.Join(parserPolicies, ", "), parser.Policy)
	}
	parser.EntrySuffix = SetThen(parser.EntrySuffix, DefaultEntrySuffix)
	return nil
}

// ValidateOutputConfig checks the default output format.
func ValidateOutputConfig(output *Output) error {
	if output == nil {
		return fmt.Errorf("output configuration is nil")
	}
	output.Format = SetThen(output.Format, DefaultOutputFormat)
	if !oneOf(output.Format, outputFormats) {
		return fmt.Errorf("format must be one of %s, got %q", strings.Join(outputFormats, ", "), output.Format)
	}
	return nil
}

// ValidatePostgresConfig checks the postgres connection settings.
func ValidatePostgresConfig(pg *Postgres) error {
	if pg == nil {
		return fmt.Errorf("postgres configuration is nil")
	}
	if pg.Port != 0 {
		if err := validatePort(pg.Port); err != nil {
			return err
		}
	}
	return nil
}

// validatePort checks if the port is in the valid range.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}

// updateHome updates the HomeFolder in the Scanio config from environment variables or sets a default value.
func updateHome(cfg *Config) error {
	if scanioHomeFolder := os.Getenv("SCANIO_HOME"); scanioHomeFolder != "" {
		cfg.Scanio.HomeFolder = scanioHomeFolder
	} else if cfg.Scanio.HomeFolder == "" {
		homeFolder, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to get user home folder: %w", err)
		}
		cfg.Scanio.HomeFolder = filepath.Join(homeFolder, ".scanio")
	}

	expandedHomePath, err := files.ExpandPath(cfg.Scanio.HomeFolder)
	if err != nil {
		return fmt.Errorf("failed to expand new home path %q: %w", cfg.Scanio.HomeFolder, err)
	}
	cfg.Scanio.HomeFolder = expandedHomePath
	return nil
}

// updateFolder updates a folder path in the Scanio configuration.
func updateFolder(folder *string, envVar, defaultSubFolder string, cfg *Config) error {
	if envVarValue := os.Getenv(envVar); envVarValue != "" {
		*folder = envVarValue
	} else if *folder == "" {
		*folder = filepath.Join(GetScanioHome(cfg), defaultSubFolder)
	}

	expandedPath, err := files.ExpandPath(*folder)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", *folder, err)
	}
	*folder = expandedPath
	return nil
}
