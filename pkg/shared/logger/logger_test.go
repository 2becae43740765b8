package logger

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
)

func TestGetLogLevel(t *testing.T) {
	tests := map[string]hclog.Level{
		"TRACE": hclog.Trace,
		"DEBUG": hclog.Debug,
		"INFO":  hclog.Info,
		"WARN":  hclog.Warn,
		"ERROR": hclog.Error,
		"":      hclog.Info,
		"LOUD":  hclog.Info,
	}
	for input, want := range tests {
		assert.Equal(t, want, getLogLevel(input), input)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	t.Setenv("SCANIO_LOG_LEVEL", "error")

	var out bytes.Buffer
	cfg := &config.Config{Logger: config.Logger{Level: "debug"}}
	l := newLogger(cfg, "core-parse", &out)
	l.Debug("decoded finding", "sequence", 1)
	assert.Contains(t, out.String(), "[DEBUG] core-parse: decoded finding: sequence=1")

	out.Reset()
	l = newLogger(nil, "core-parse", &out)
	l.Warn("dropped")
	assert.Empty(t, out.String())
	l.Error("failed")
	assert.Contains(t, out.String(), "[ERROR] core-parse: failed")
}
