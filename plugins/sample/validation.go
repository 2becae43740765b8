package main

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/scanio-parser/internal/sink"
	"github.com/scan-io-git/scanio-parser/pkg/shared"
	"github.com/scan-io-git/scanio-parser/pkg/shared/validation"
)

// engineType is the scan.info engine type this plugin expects.
const engineType = "SAMPLE"

// validateParse checks the necessary fields in ParserParseRequest and returns errors if they are not set.
func (g *ParserSample) validateParse(args *shared.ParserParseRequest) error {
	if err := validation.ValidateParseArgs(args); err != nil {
		return err
	}

	format := args.OutputFormat
	if format == "" && g.globalConfig != nil {
		format = g.globalConfig.Output.Format
	}
	outputPath := args.OutputPath
	if outputPath == "" && g.globalConfig != nil {
		outputPath = g.globalConfig.Output.Path
	}
	// the plugin's stdout belongs to the plugin protocol
	if !strings.EqualFold(format, sink.FormatPostgres) && (outputPath == "" || outputPath == sink.StdoutPath) {
		return fmt.Errorf("an output path is required when parsing through a plugin")
	}
	return nil
}
