package parse

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/scanio-parser/internal/parser"
	"github.com/scan-io-git/scanio-parser/pkg/shared"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
)

// buildParseRequest converts the command options into a plugin request.
func buildParseRequest(options *RunOptionsParse, inputPath string) shared.ParserParseRequest {
	return shared.ParserParseRequest{
		InputPath:    inputPath,
		OutputFormat: options.OutputFormat,
		OutputPath:   options.OutputPath,
		Generation:   options.Generation,
		Policy:       options.Policy,
		MetadataOnly: options.MetadataOnly,
	}
}

// runParse parses in-process when pluginName is empty, otherwise through the
// named parser plugin.
func runParse(ctx context.Context, cfg *config.Config, logger hclog.Logger, pluginName string, req shared.ParserParseRequest) (shared.ParserParseResponse, error) {
	if pluginName == "" {
		return parseInProcess(ctx, cfg, logger, req)
	}
	return parseWithPlugin(cfg, pluginName, req)
}

func parseInProcess(ctx context.Context, cfg *config.Config, logger hclog.Logger, req shared.ParserParseRequest) (shared.ParserParseResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, out := parser.FromRequest(cfg, req)
	p, err := parser.New(opts, logger)
	if err != nil {
		return shared.ParserParseResponse{}, err
	}
	res, err := p.Run(ctx, req.InputPath, out)
	return res.Response(), err
}

func parseWithPlugin(cfg *config.Config, pluginName string, req shared.ParserParseRequest) (shared.ParserParseResponse, error) {
	var resp shared.ParserParseResponse
	err := shared.WithPlugin(cfg, "plugin-parser", shared.PluginTypeParser, pluginName, func(raw interface{}) error {
		parserPlugin, ok := raw.(shared.Parser)
		if !ok {
			return fmt.Errorf("invalid plugin type")
		}

		var globalConfig config.Config
		if cfg != nil {
			globalConfig = *cfg
		}
		if _, err := parserPlugin.Setup(globalConfig); err != nil {
			return fmt.Errorf("failed to set up plugin %q: %w", pluginName, err)
		}

		var err error
		resp, err = parserPlugin.Parse(req)
		return err
	})
	return resp, err
}
