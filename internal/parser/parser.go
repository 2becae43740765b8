// Package parser runs the decoder over a scan artifact and streams the result
// into an output sink.
package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/scanio-parser/internal/decoder"
	"github.com/scan-io-git/scanio-parser/internal/scandata"
	"github.com/scan-io-git/scanio-parser/internal/sink"
	"github.com/scan-io-git/scanio-parser/internal/vocabulary"
	"github.com/scan-io-git/scanio-parser/pkg/builder"
)

// Options configures a Parser.
type Options struct {
	// Generation selects the attribute vocabulary, empty means latest.
	Generation string
	// Policy is "abort" or "skip", empty means abort.
	Policy string
	// EntrySuffix selects the document inside a zip container.
	EntrySuffix string
	// EngineType, when set, is compared against scan.info of a container.
	EngineType string
	// MetadataOnly stops after the scan metadata pass.
	MetadataOnly bool
}

// Result summarises one parsed artifact.
type Result struct {
	Document   string
	EngineType string
	Findings   int
	Skipped    int
	// Written is the number of records stored by the sink, set by Run.
	Written int
}

// Parser converts scan artifacts. It is safe to reuse for many artifacts.
type Parser struct {
	logger  hclog.Logger
	decoder *decoder.Decoder
	opts    Options
}

// New validates opts and prepares the decoder.
func New(opts Options, logger hclog.Logger) (*Parser, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	table, err := vocabulary.ForGeneration(vocabulary.Generation(opts.Generation))
	if err != nil {
		return nil, err
	}
	policy, err := decoder.ParsePolicy(opts.Policy)
	if err != nil {
		return nil, err
	}
	return &Parser{
		logger:  logger,
		decoder: decoder.New(table, decoder.WithPolicy(policy), decoder.WithLogger(logger.Named("decoder"))),
		opts:    opts,
	}, nil
}

// Parse makes two passes over the document at path: the first feeds scan
// metadata to sb, the second feeds findings to vh. The scan record is therefore
// complete before the first vulnerability is started.
func (p *Parser) Parse(ctx context.Context, path string, sb builder.ScanBuilder, vh builder.VulnerabilityHandler) (Result, error) {
	a, err := scandata.Open(path, p.opts.EntrySuffix)
	if err != nil {
		return Result{}, err
	}
	defer a.Close()

	res := Result{Document: a.DocumentName(), EngineType: a.EngineType()}
	p.checkEngineType(a)
	p.logger.Debug("parsing scan document", "path", path, "document", res.Document, "archive", a.IsArchive())

	if _, err := p.pass(ctx, a, sb, nil); err != nil {
		return res, fmt.Errorf("scan metadata: %w", err)
	}
	if p.opts.MetadataOnly {
		return res, nil
	}

	stats, err := p.pass(ctx, a, nil, vh)
	res.Findings, res.Skipped = stats.Findings, stats.Skipped
	if err != nil {
		return res, fmt.Errorf("findings: %w", err)
	}
	return res, nil
}

// Run parses the artifact at path into the sink described by out. The sink is
// flushed only after a successful parse and always closed.
func (p *Parser) Run(ctx context.Context, path string, out sink.Options) (res Result, err error) {
	b, err := sink.Open(ctx, out)
	if err != nil {
		return Result{}, fmt.Errorf("open output: %w", err)
	}
	defer func() {
		if closeErr := b.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	res, err = p.Parse(ctx, path, b, b)
	if err != nil {
		return res, err
	}
	if err := b.Flush(); err != nil {
		return res, fmt.Errorf("flush output: %w", err)
	}
	res.Written = b.Written()

	p.logger.Info("scan parsed",
		"document", res.Document,
		"findings", res.Findings,
		"skipped", res.Skipped,
		"format", out.Format,
	)
	return res, nil
}

func (p *Parser) pass(ctx context.Context, a *scandata.Artifact, sb builder.ScanBuilder, vh builder.VulnerabilityHandler) (decoder.Stats, error) {
	doc, err := a.Document()
	if err != nil {
		return decoder.Stats{}, err
	}
	defer doc.Close()
	return p.decoder.Decode(ctx, doc, sb, vh)
}

func (p *Parser) checkEngineType(a *scandata.Artifact) {
	if p.opts.EngineType == "" || !a.IsArchive() {
		return
	}
	if actual := a.EngineType(); !strings.EqualFold(actual, p.opts.EngineType) {
		p.logger.Warn("scan.info engine type does not match, parsing anyway",
			"expected", p.opts.EngineType,
			"actual", actual,
		)
	}
}
