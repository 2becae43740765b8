package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is the global configuration loaded from the YAML config file.
type Config struct {
	Logger   Logger   `yaml:"logger"`
	Scanio   Scanio   `yaml:"scanio"`
	Parser   Parser   `yaml:"parser"`
	Output   Output   `yaml:"output"`
	Postgres Postgres `yaml:"postgres"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type Scanio struct {
	HomeFolder    string `yaml:"home_folder"`
	PluginsFolder string `yaml:"plugins_folder"`
}

// Parser configures how scan documents are decoded.
type Parser struct {
	// Generation selects the attribute vocabulary: legacy, enum, base64 or latest.
	Generation string `yaml:"generation"`
	// Policy is the per-finding failure policy: abort or skip.
	Policy string `yaml:"policy"`
	// EntrySuffix selects the scan document inside a zip container.
	EntrySuffix string `yaml:"entry_suffix"`
	// EngineType is compared against the engineType of scan.info when set.
	EngineType string `yaml:"engine_type"`
}

type Output struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Postgres holds the connection settings of the postgres output.
type Postgres struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the config file at configPath. A missing file yields an
// empty configuration so that defaults and environment variables apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}
	if err := LoadYAML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	return config, nil
}
