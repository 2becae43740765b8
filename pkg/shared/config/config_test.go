package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: debug
parser:
  generation: enum
  policy: skip
  engine_type: SAMPLE
output:
  format: sarif
  path: ~/reports
postgres:
  host: localhost
  port: 5432
  name: scans
  sslmode: disable
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, Parser{Generation: "enum", Policy: "skip", EngineType: "SAMPLE"}, cfg.Parser)
	assert.Equal(t, Output{Format: "sarif", Path: "~/reports"}, cfg.Output)
	assert.Equal(t, Postgres{Host: "localhost", Port: 5432, Name: "scans", SSLMode: "disable"}, cfg.Postgres)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "is a directory")

	path := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("parser: [unclosed"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SCANIO_HOME", home)
	t.Setenv("SCANIO_PLUGINS_FOLDER", "")
	t.Setenv("SCANIO_PARSER_GENERATION", "legacy")

	cfg := &Config{}
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, home, cfg.Scanio.HomeFolder)
	assert.Equal(t, filepath.Join(home, "plugins"), GetScanioPluginsHome(cfg))
	assert.Equal(t, "legacy", cfg.Parser.Generation)
	assert.Equal(t, DefaultEntrySuffix, cfg.Parser.EntrySuffix)
	assert.Equal(t, DefaultOutputFormat, cfg.Output.Format)
}

func TestValidateConfigErrors(t *testing.T) {
	t.Setenv("SCANIO_HOME", t.TempDir())
	t.Setenv("SCANIO_PARSER_GENERATION", "")

	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "nil", cfg: nil, wantErr: "configuration object is nil"},
		{name: "policy", cfg: &Config{Parser: Parser{Policy: "retry"}}, wantErr: "parser directive is invalid"},
		{name: "format", cfg: &Config{Output: Output{Format: "xml"}}, wantErr: "output directive is invalid"},
		{name: "port", cfg: &Config{Postgres: Postgres{Port: 70000}}, wantErr: "port must be between 1 and 65535, got 70000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, ValidateConfig(tt.cfg), tt.wantErr)
		})
	}
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, ".json", SetThen("", ".json"))
	assert.Equal(t, ".scan", SetThen(".scan", ".json"))
	assert.Equal(t, 5432, SetThen(0, 5432))
}
