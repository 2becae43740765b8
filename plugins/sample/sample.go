package main

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/scan-io-git/scanio-parser/internal/parser"
	"github.com/scan-io-git/scanio-parser/pkg/shared"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
	"github.com/scan-io-git/scanio-parser/pkg/shared/logger"
)

// Metadata of the plugin
var (
	Version       = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// ParserSample parses artifacts produced by the SAMPLE engine.
type ParserSample struct {
	logger       hclog.Logger
	globalConfig *config.Config
}

// newParserSample creates a new instance of ParserSample.
func newParserSample(logger hclog.Logger) *ParserSample {
	return &ParserSample{
		logger: logger,
	}
}

// setGlobalConfig sets the global configuration for the ParserSample instance.
func (g *ParserSample) setGlobalConfig(globalConfig *config.Config) {
	g.globalConfig = globalConfig
}

// Parse decodes the artifact named in args into the requested output.
func (g *ParserSample) Parse(args shared.ParserParseRequest) (shared.ParserParseResponse, error) {
	var result shared.ParserParseResponse
	g.logger.Info("parse is starting", "input", args.InputPath)
	g.logger.Debug("debug info", "args", args)

	if err := g.validateParse(&args); err != nil {
		g.logger.Error("validation failed for parse operation", "error", err)
		return result, err
	}

	opts, out := parser.FromRequest(g.globalConfig, args)
	if opts.EngineType == "" {
		opts.EngineType = engineType
	}
	p, err := parser.New(opts, g.logger)
	if err != nil {
		g.logger.Error("failed to prepare parser", "error", err)
		return result, err
	}

	res, err := p.Run(context.Background(), args.InputPath, out)
	if err != nil {
		g.logger.Error("parse failed", "input", args.InputPath, "error", err)
		return res.Response(), err
	}
	g.logger.Info("parse finished", "input", args.InputPath, "written", res.Written)
	return res.Response(), nil
}

// Setup initializes the global configuration for the ParserSample instance.
func (g *ParserSample) Setup(configData config.Config) (bool, error) {
	g.setGlobalConfig(&configData)
	return true, nil
}

func main() {
	logger := logger.NewPluginLogger("plugin-sample")

	sampleInstance := newParserSample(logger)

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: shared.HandshakeConfig,
		Plugins: map[string]plugin.Plugin{
			shared.PluginTypeParser: &shared.ParserPlugin{Impl: sampleInstance},
		},
		Logger: logger,
	})
}
