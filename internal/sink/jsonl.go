package sink

import (
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/scan-io-git/scanio-parser/internal/findings"
)

const (
	recordTypeScan          = "scan"
	recordTypeVulnerability = "vulnerability"
)

type jsonlRecord struct {
	Type          string                  `json:"type"`
	Scan          *findings.Scan          `json:"scan,omitempty"`
	Vulnerability *findings.Vulnerability `json:"vulnerability,omitempty"`
}

// JSONLWriter writes one JSON object per line. Records are held in memory
// until Flush, so out never sees part of a document.
type JSONLWriter struct {
	out io.WriteCloser
	buf bytes.Buffer
	enc *jsoniter.Encoder
}

// NewJSONLWriter returns a JSONLWriter over out. Close closes out.
func NewJSONLWriter(out io.WriteCloser) *JSONLWriter {
	w := &JSONLWriter{out: out}
	w.enc = jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(&w.buf)
	return w
}

func (w *JSONLWriter) WriteScan(scan findings.Scan) error {
	return w.enc.Encode(jsonlRecord{Type: recordTypeScan, Scan: &scan})
}

func (w *JSONLWriter) WriteVulnerability(v findings.Vulnerability) error {
	return w.enc.Encode(jsonlRecord{Type: recordTypeVulnerability, Vulnerability: &v})
}

// Flush writes the staged records to out, even when there are none.
func (w *JSONLWriter) Flush() error {
	if _, err := w.out.Write(w.buf.Bytes()); err != nil {
		return err
	}
	w.buf.Reset()
	return nil
}

func (w *JSONLWriter) Close() error {
	return w.out.Close()
}
