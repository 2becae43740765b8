// Package decoder walks a scan document in a single streaming pass and feeds
// scan metadata and findings to the host builders.
package decoder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/inf.v0"

	"github.com/scan-io-git/scanio-parser/internal/finding"
	"github.com/scan-io-git/scanio-parser/internal/vocabulary"
	"github.com/scan-io-git/scanio-parser/pkg/builder"
)

// Stats summarises one Decode call.
type Stats struct {
	// Findings is the number of committed findings.
	Findings int
	// Skipped is the number of findings dropped under PolicySkip.
	Skipped int
}

// Decoder maps scan documents of one vocabulary generation. A Decoder holds no
// per-document state and may run concurrent decodes of different streams.
type Decoder struct {
	table   *vocabulary.Table
	policy  Policy
	logger  hclog.Logger
	scale   inf.Scale
	bufSize int
}

// New returns a Decoder for table.
func New(table *vocabulary.Table, opts ...Option) *Decoder {
	d := &Decoder{
		table:   table,
		policy:  PolicyAbort,
		logger:  hclog.NewNullLogger(),
		scale:   builder.MaxDecimalScale,
		bufSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads exactly one JSON object from r. Anything but whitespace after
// its closing brace is a *StructureError.
//
// Scan metadata goes to sb as it is encountered and CompleteScan is called once
// the object closes. Each element of the findings array is committed to vh as
// soon as its closing brace is read. A nil sb ignores scan metadata and a nil vh
// skips the findings array without inspecting it, so a host can make separate
// metadata and findings passes over the same document.
//
// Reader errors and context cancellation are returned unchanged. The caller owns r.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, sb builder.ScanBuilder, vh builder.VulnerabilityHandler) (Stats, error) {
	w := &walk{
		Decoder: d,
		ctx:     ctx,
		cur:     newCursor(ctx, r, d.bufSize),
		sb:      sb,
		vh:      vh,
	}
	if err := w.root(); err != nil {
		return w.stats, err
	}
	if err := w.cur.end(); err != nil {
		return w.stats, err
	}
	if sb == nil {
		return w.stats, nil
	}
	if !w.sawScanDate {
		return w.stats, ErrMissingScanDate
	}
	if err := sb.CompleteScan(); err != nil {
		return w.stats, fmt.Errorf("complete scan: %w", err)
	}
	return w.stats, nil
}

// walk is the state of one Decode call.
type walk struct {
	*Decoder
	ctx         context.Context
	cur         *cursor
	sb          builder.ScanBuilder
	vh          builder.VulnerabilityHandler
	stats       Stats
	sequence    int
	sawScanDate bool
}

func (w *walk) root() error {
	if w.cur.next() != jsoniter.ObjectValue {
		return w.cur.structure("expected object start")
	}
	return w.object(w.topField)
}

// object reads one object, handing each field name to fn positioned at its value.
func (w *walk) object(fn func(field string) error) error {
	var failure error
	ok := w.cur.iter.ReadObjectCB(func(_ *jsoniter.Iterator, field string) bool {
		w.cur.tokens++
		if err := w.cur.failure(); err != nil {
			failure = err
			return false
		}
		if err := fn(field); err != nil {
			failure = err
			return false
		}
		return true
	})
	if failure != nil {
		return failure
	}
	if err := w.cur.failure(); err != nil {
		return err
	}
	if !ok {
		return w.cur.structure("malformed object")
	}
	return nil
}

func (w *walk) topField(field string) error {
	if field == vocabulary.FindingsField {
		if w.vh == nil {
			w.cur.skip()
			return w.cur.failure()
		}
		return w.findings()
	}

	attr, ok := w.table.LookupScan(field)
	if !ok || w.sb == nil {
		w.cur.skip()
		return w.cur.failure()
	}
	v, present, err := readValue(w.cur, attr, w.scale)
	if err != nil || !present {
		return err
	}

	switch attr.Symbol {
	case vocabulary.ScanDate:
		w.sb.SetScanDate(v.Time)
		w.sawScanDate = true
	case vocabulary.EngineVersion:
		w.sb.SetEngineVersion(v.Str)
	case vocabulary.Elapsed:
		w.sb.SetElapsedTime(v.Int)
	case vocabulary.BuildServer:
		w.sb.SetHostName(v.Str)
	}
	return nil
}

func (w *walk) findings() error {
	w.cur.tokens++
	if w.cur.next() != jsoniter.ArrayValue {
		return w.cur.structure("expected array for findings")
	}

	var failure error
	ok := w.cur.iter.ReadArrayCB(func(*jsoniter.Iterator) bool {
		if err := w.finding(); err != nil {
			failure = err
			return false
		}
		return true
	})
	if failure != nil {
		return failure
	}
	if err := w.cur.failure(); err != nil {
		return err
	}
	if !ok {
		return w.cur.structure("malformed findings array")
	}
	return nil
}

func (w *walk) finding() error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	seq := w.sequence
	w.sequence++

	w.cur.tokens++
	if w.cur.next() != jsoniter.ObjectValue {
		return w.cur.structure("expected object start")
	}

	f := finding.New(w.table)
	var rejected error
	err := w.object(func(field string) error {
		attr, ok := w.table.LookupFinding(field)
		if !ok {
			w.cur.skip()
			return w.cur.failure()
		}
		v, present, err := readValue(w.cur, attr, w.scale)
		var formatErr *FormatError
		if errors.As(err, &formatErr) && w.policy == PolicySkip {
			if rejected == nil {
				rejected = err
			}
			return nil
		}
		if err != nil {
			return err
		}
		if present {
			f.Set(attr, v)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if rejected != nil {
		return w.skip(seq, f, rejected)
	}

	if err := f.Commit(w.vh); err != nil {
		if errors.Is(err, finding.ErrMissingUniqueID) {
			missing := &MissingIdentityError{Sequence: seq}
			if w.policy == PolicySkip {
				return w.skip(seq, f, missing)
			}
			return missing
		}
		return fmt.Errorf("finding %06d: %w", seq, err)
	}

	w.stats.Findings++
	if w.logger.IsDebug() {
		id, _ := f.UniqueID()
		w.logger.Debug("parsed vulnerability", "sequence", fmt.Sprintf("%06d", seq), "unique_id", id)
	}
	return nil
}

func (w *walk) skip(seq int, f *finding.Finding, reason error) error {
	w.stats.Skipped++
	id, _ := f.UniqueID()
	w.logger.Warn("skipping finding", "sequence", fmt.Sprintf("%06d", seq), "unique_id", id, "error", reason)
	return nil
}
