package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
)

// NewLogger returns a named logger writing to stderr, so that parse results
// written to stdout stay machine readable.
func NewLogger(config *config.Config, name string) hclog.Logger {
	return newLogger(config, name, os.Stderr)
}

func newLogger(config *config.Config, name string, output io.Writer) hclog.Logger {
	var logLevel hclog.Level

	if config != nil && config.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(config.Logger.Level))
	} else {
		// env variables has the second priority
		logLevelEnv := os.Getenv("SCANIO_LOG_LEVEL")
		logLevel = getLogLevel(strings.ToUpper(logLevelEnv))
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      output,
		Level:       logLevel,
	})
}

// NewPluginLogger returns the JSON logger a plugin process writes to stderr.
// The host side of go-plugin parses these lines and re-emits them.
func NewPluginLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      getLogLevel(strings.ToUpper(os.Getenv("SCANIO_LOG_LEVEL"))),
		Output:     os.Stderr,
		JSONFormat: true,
	})
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
