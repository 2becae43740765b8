package sink

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/scanio-parser/internal/findings"
)

const (
	sarifToolName       = "scanio-parser"
	sarifInformationURI = "https://github.com/scan-io-git/scanio-parser"

	// custom attribute preferred as the rule id when present
	ruleIDProperty = "categoryId"
	unknownRuleID  = "uncategorized"
)

// SARIFWriter collects records into a single SARIF 2.1.0 run and writes the
// report on Flush.
type SARIFWriter struct {
	out     io.WriteCloser
	report  *sarif.Report
	run     *sarif.Run
	flushed bool
}

// NewSARIFWriter returns a SARIFWriter over out. Close closes out.
func NewSARIFWriter(out io.WriteCloser) (*SARIFWriter, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}
	return &SARIFWriter{
		out:    out,
		report: report,
		run:    sarif.NewRunWithInformationURI(sarifToolName, sarifInformationURI),
	}, nil
}

func (w *SARIFWriter) WriteScan(scan findings.Scan) error {
	if scan.EngineVersion != "" {
		w.run.Tool.Driver.WithVersion(scan.EngineVersion)
	}
	inv := w.run.AddInvocation(true).WithStartTimeUTC(scan.ScanDate)
	if scan.ElapsedTime != nil {
		inv.WithEndTimeUTC(scan.ScanDate.Add(time.Duration(*scan.ElapsedTime) * time.Second))
	}
	if scan.HostName != "" {
		inv.WithMachine(scan.HostName)
	}
	return nil
}

func (w *SARIFWriter) WriteVulnerability(v findings.Vulnerability) error {
	rule := w.run.AddRule(sarifRuleID(v))
	if v.Category != "" {
		rule.WithDescription(v.Category)
	}

	message := v.VulnerabilityAbstract
	if message == "" {
		message = v.Category
	}
	result := sarif.NewRuleResult(rule.ID).
		WithMessage(sarif.NewTextMessage(message)).
		WithLevel(toSarifLevel(v.Priority))

	if v.FileName != "" {
		physical := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(v.FileName))
		// SARIF lines are 1-based
		if v.LineNumber != nil && *v.LineNumber > 0 {
			physical.WithRegion(sarif.NewRegion().WithStartLine(*v.LineNumber))
		}
		result.WithLocations([]*sarif.Location{sarif.NewLocation().WithPhysicalLocation(physical)})
	}

	pb := sarif.NewPropertyBag()
	pb.Add("uniqueId", v.UniqueID)
	if v.Priority != "" {
		pb.Add("priority", v.Priority)
	}
	if v.Confidence != nil {
		pb.Add("confidence", *v.Confidence)
	}
	if v.Impact != nil {
		pb.Add("impact", *v.Impact)
	}
	for _, p := range v.Properties {
		pb.Add(p.Name, p.Value)
	}
	result.AttachPropertyBag(pb)

	w.run.AddResult(result)
	return nil
}

// Flush writes the report. Later calls do nothing.
func (w *SARIFWriter) Flush() error {
	if w.flushed {
		return nil
	}
	w.report.AddRun(w.run)
	if err := w.report.PrettyWrite(w.out); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	w.flushed = true
	return nil
}

func (w *SARIFWriter) Close() error {
	return w.out.Close()
}

func sarifRuleID(v findings.Vulnerability) string {
	if p, ok := v.Property(ruleIDProperty); ok && p.Value != "" {
		return p.Value
	}
	if v.Category != "" {
		return v.Category
	}
	return unknownRuleID
}

func toSarifLevel(priority string) string {
	switch strings.ToUpper(priority) {
	case "CRITICAL", "HIGH":
		return "error"
	case "MEDIUM", "":
		return "warning"
	case "LOW":
		return "note"
	default:
		return "none"
	}
}
