package parser

import (
	"github.com/scan-io-git/scanio-parser/internal/sink"
	"github.com/scan-io-git/scanio-parser/pkg/shared"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
)

// FromRequest merges a parse request over the global configuration. Request
// fields win when set.
func FromRequest(cfg *config.Config, req shared.ParserParseRequest) (Options, sink.Options) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	opts := Options{
		Generation:   firstNonEmpty(req.Generation, cfg.Parser.Generation),
		Policy:       firstNonEmpty(req.Policy, cfg.Parser.Policy),
		EntrySuffix:  cfg.Parser.EntrySuffix,
		EngineType:   cfg.Parser.EngineType,
		MetadataOnly: req.MetadataOnly,
	}
	out := sink.Options{
		Format:   firstNonEmpty(req.OutputFormat, cfg.Output.Format),
		Path:     firstNonEmpty(req.OutputPath, cfg.Output.Path),
		Postgres: cfg.Postgres,
	}
	return opts, out
}

// Response converts r for the plugin protocol.
func (r Result) Response() shared.ParserParseResponse {
	return shared.ParserParseResponse{
		Document:   r.Document,
		EngineType: r.EngineType,
		Findings:   r.Findings,
		Skipped:    r.Skipped,
		Written:    r.Written,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
