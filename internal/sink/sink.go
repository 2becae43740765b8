// Package sink implements the builder contract on top of output writers that
// persist normalized scan and vulnerability records.
package sink

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/inf.v0"

	"github.com/scan-io-git/scanio-parser/internal/dates"
	"github.com/scan-io-git/scanio-parser/internal/findings"
	"github.com/scan-io-git/scanio-parser/pkg/builder"
)

// Supported output formats.
const (
	FormatJSONL    = "jsonl"
	FormatSARIF    = "sarif"
	FormatPostgres = "postgres"
)

// ErrUnknownFormat is returned for an output format no writer exists for.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatJSONL, FormatSARIF, FormatPostgres}
}

// ParseFormat normalizes s to one of Formats; empty means jsonl.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	switch f {
	case "":
		return FormatJSONL, nil
	case FormatJSONL, FormatSARIF, FormatPostgres:
		return f, nil
	}
	return "", fmt.Errorf("%w %q, expected one of %s", ErrUnknownFormat, s, strings.Join(Formats(), ", "))
}

// Writer persists normalized records. Flush makes everything written so far
// durable; Close releases resources and discards anything not flushed.
type Writer interface {
	WriteScan(scan findings.Scan) error
	WriteVulnerability(v findings.Vulnerability) error
	Flush() error
	Close() error
}

// Builder adapts a Writer to builder.ScanBuilder and builder.VulnerabilityHandler.
// Records are handed to the writer when they are completed.
type Builder struct {
	w             Writer
	scan          findings.Scan
	scanCompleted bool
	written       int
}

// New returns a Builder writing to w.
func New(w Writer) *Builder {
	return &Builder{w: w}
}

func (b *Builder) SetScanDate(date time.Time)      { b.scan.ScanDate = date }
func (b *Builder) SetEngineVersion(version string) { b.scan.EngineVersion = version }
func (b *Builder) SetHostName(name string)         { b.scan.HostName = name }

func (b *Builder) SetElapsedTime(seconds int) {
	b.scan.ElapsedTime = &seconds
}

// CompleteScan writes the scan record. It may be called once.
func (b *Builder) CompleteScan() error {
	if b.scanCompleted {
		return builder.ErrScanCompleted
	}
	if err := b.w.WriteScan(b.scan); err != nil {
		return fmt.Errorf("write scan: %w", err)
	}
	b.scanCompleted = true
	return nil
}

// Written returns the number of vulnerabilities handed to the writer.
func (b *Builder) Written() int {
	return b.written
}

// Flush flushes the underlying writer.
func (b *Builder) Flush() error {
	return b.w.Flush()
}

// Close closes the underlying writer.
func (b *Builder) Close() error {
	return b.w.Close()
}

func (b *Builder) StartStaticVulnerability(uniqueID string) (builder.StaticVulnerabilityBuilder, error) {
	if uniqueID == "" {
		return nil, builder.ErrEmptyUniqueID
	}
	return &vulnerability{
		owner: b,
		rec:   findings.Vulnerability{UniqueID: uniqueID},
	}, nil
}

type vulnerability struct {
	owner     *Builder
	rec       findings.Vulnerability
	decimals  map[string]*inf.Dec
	completed bool
}

func (v *vulnerability) SetCategory(category string) { v.rec.Category = category }
func (v *vulnerability) SetFileName(fileName string) { v.rec.FileName = fileName }

func (v *vulnerability) SetVulnerabilityAbstract(text string) {
	v.rec.VulnerabilityAbstract = text
}

func (v *vulnerability) SetLineNumber(line int)           { v.rec.LineNumber = &line }
func (v *vulnerability) SetConfidence(confidence float32) { v.rec.Confidence = &confidence }
func (v *vulnerability) SetImpact(impact float32)         { v.rec.Impact = &impact }

func (v *vulnerability) SetPriority(priority builder.Priority) {
	v.rec.Priority = priority.String()
}

func (v *vulnerability) SetStringCustomAttributeValue(name, value string) {
	v.rec.SetProperty(findings.Property{Name: name, Kind: findings.KindString, Value: value})
}

func (v *vulnerability) SetLongStringCustomAttributeValue(name, value string) {
	v.rec.SetProperty(findings.Property{Name: name, Kind: findings.KindLongString, Value: value})
}

func (v *vulnerability) SetDateCustomAttributeValue(name string, value time.Time) {
	v.rec.SetProperty(findings.Property{Name: name, Kind: findings.KindDate, Value: dates.Encode(value)})
}

func (v *vulnerability) SetDecimalCustomAttributeValue(name string, value *inf.Dec) {
	if value == nil {
		return
	}
	if v.decimals == nil {
		v.decimals = make(map[string]*inf.Dec)
	}
	v.decimals[name] = value
	v.rec.SetProperty(findings.Property{Name: name, Kind: findings.KindDecimal, Value: value.String()})
}

// CompleteVulnerability validates decimal scales and hands the record to the writer.
func (v *vulnerability) CompleteVulnerability() error {
	if v.completed {
		return builder.ErrVulnerabilityCompleted
	}
	for _, p := range v.rec.Properties {
		if p.Kind != findings.KindDecimal {
			continue
		}
		if err := builder.CheckDecimalScale(p.Name, v.decimals[p.Name]); err != nil {
			return err
		}
	}
	if err := v.owner.w.WriteVulnerability(v.rec); err != nil {
		return fmt.Errorf("write vulnerability %q: %w", v.rec.UniqueID, err)
	}
	v.completed = true
	v.owner.written++
	return nil
}
