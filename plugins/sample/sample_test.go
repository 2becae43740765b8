package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/scanio-parser/internal/generator"
	"github.com/scan-io-git/scanio-parser/pkg/shared"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
)

func newTestParser(t *testing.T, cfg config.Config) *ParserSample {
	t.Helper()
	g := newParserSample(hclog.NewNullLogger())
	ok, err := g.Setup(cfg)
	require.NoError(t, err)
	require.True(t, ok)
	return g
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "steady.zip")
	require.NoError(t, generator.Steady(input))

	g := newTestParser(t, config.Config{Output: config.Output{Format: "jsonl"}})
	resp, err := g.Parse(shared.ParserParseRequest{
		InputPath:  input,
		OutputPath: filepath.Join(dir, "out"),
	})
	require.NoError(t, err)

	assert.Equal(t, generator.EngineType, resp.EngineType)
	assert.Equal(t, 10, resp.Findings)
	assert.Equal(t, 10, resp.Written)

	raw, err := os.ReadFile(filepath.Join(dir, "out", "scanio-parser-report.jsonl"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(raw)), "\n"), 11)
}

func TestParseValidation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "steady.zip")
	require.NoError(t, generator.Steady(input))

	tests := []struct {
		name    string
		cfg     config.Config
		req     shared.ParserParseRequest
		wantErr string
	}{
		{
			name:    "missing input",
			req:     shared.ParserParseRequest{OutputPath: dir},
			wantErr: "input path is required",
		},
		{
			name:    "stdout",
			req:     shared.ParserParseRequest{InputPath: input, OutputPath: "-"},
			wantErr: "an output path is required when parsing through a plugin",
		},
		{
			name:    "no output configured",
			cfg:     config.Config{Output: config.Output{Format: "sarif"}},
			req:     shared.ParserParseRequest{InputPath: input},
			wantErr: "an output path is required when parsing through a plugin",
		},
		{
			name:    "postgres with path",
			req:     shared.ParserParseRequest{InputPath: input, OutputFormat: "postgres", OutputPath: dir},
			wantErr: "output path cannot be used with the postgres format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestParser(t, tt.cfg)
			_, err := g.Parse(tt.req)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestParseUnknownGeneration(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "steady.zip")
	require.NoError(t, generator.Steady(input))

	g := newTestParser(t, config.Config{Parser: config.Parser{Generation: "ancient"}})
	_, err := g.Parse(shared.ParserParseRequest{InputPath: input, OutputPath: dir})
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "scanio-parser-report.jsonl"))
}
