package sink

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"

	"github.com/scan-io-git/scanio-parser/internal/findings"
	"github.com/scan-io-git/scanio-parser/pkg/builder"
)

type memoryWriter struct {
	scans           []findings.Scan
	vulnerabilities []findings.Vulnerability
	writeErr        error
	flushed         int
	closed          int
}

func (m *memoryWriter) WriteScan(scan findings.Scan) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.scans = append(m.scans, scan)
	return nil
}

func (m *memoryWriter) WriteVulnerability(v findings.Vulnerability) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.vulnerabilities = append(m.vulnerabilities, v)
	return nil
}

func (m *memoryWriter) Flush() error {
	m.flushed++
	return nil
}

func (m *memoryWriter) Close() error {
	m.closed++
	return nil
}

var scanDate = time.Date(2017, 4, 18, 23, 31, 42, 136000000, time.UTC)

func TestBuilderScan(t *testing.T) {
	w := &memoryWriter{}
	b := New(w)

	b.SetScanDate(scanDate)
	b.SetEngineVersion("1.0-SNAPSHOT")
	b.SetElapsedTime(860)
	b.SetHostName("server01")
	require.NoError(t, b.CompleteScan())
	assert.ErrorIs(t, b.CompleteScan(), builder.ErrScanCompleted)

	require.Len(t, w.scans, 1)
	assert.Equal(t, "1.0-SNAPSHOT", w.scans[0].EngineVersion)
	assert.Equal(t, 860, *w.scans[0].ElapsedTime)
	assert.Equal(t, "server01", w.scans[0].HostName)
	assert.True(t, w.scans[0].ScanDate.Equal(scanDate))
}

func TestBuilderVulnerability(t *testing.T) {
	w := &memoryWriter{}
	b := New(w)

	_, err := b.StartStaticVulnerability("")
	assert.ErrorIs(t, err, builder.ErrEmptyUniqueID)

	h, err := b.StartStaticVulnerability("abc")
	require.NoError(t, err)
	h.SetCategory("XSS")
	h.SetCategory("Cross-site Scripting")
	h.SetFileName("index.jsp")
	h.SetLineNumber(103)
	h.SetConfidence(4.5)
	h.SetPriority(builder.High)
	h.SetStringCustomAttributeValue("categoryId", "a101")
	h.SetStringCustomAttributeValue("categoryId", "a102")
	h.SetLongStringCustomAttributeValue("description", "long text")
	h.SetDateCustomAttributeValue("lastChangeDate", time.Date(2017, 4, 16, 23, 31, 42, 92000000, time.FixedZone("", 2*60*60)))
	h.SetDecimalCustomAttributeValue("ratio", inf.NewDec(30001, 2))

	require.NoError(t, h.CompleteVulnerability())
	assert.ErrorIs(t, h.CompleteVulnerability(), builder.ErrVulnerabilityCompleted)
	assert.Equal(t, 1, b.Written())

	require.Len(t, w.vulnerabilities, 1)
	v := w.vulnerabilities[0]
	assert.Equal(t, "abc", v.UniqueID)
	assert.Equal(t, "Cross-site Scripting", v.Category)
	assert.Equal(t, 103, *v.LineNumber)
	assert.Nil(t, v.Impact)
	assert.Equal(t, "High", v.Priority)
	assert.Equal(t, []findings.Property{
		{Name: "categoryId", Kind: findings.KindString, Value: "a102"},
		{Name: "description", Kind: findings.KindLongString, Value: "long text"},
		{Name: "lastChangeDate", Kind: findings.KindDate, Value: "2017-04-16T21:31:42.092Z"},
		{Name: "ratio", Kind: findings.KindDecimal, Value: "300.01"},
	}, v.Properties)
}

func TestBuilderDecimalScale(t *testing.T) {
	w := &memoryWriter{}
	h, err := New(w).StartStaticVulnerability("abc")
	require.NoError(t, err)
	h.SetDecimalCustomAttributeValue("ratio", inf.NewDec(300005, 3))

	var scaleErr *builder.DecimalScaleError
	assert.True(t, errors.As(h.CompleteVulnerability(), &scaleErr))
	assert.Equal(t, "ratio", scaleErr.Attribute)
	assert.Empty(t, w.vulnerabilities)
}

func TestBuilderWriteError(t *testing.T) {
	boom := errors.New("disk full")
	w := &memoryWriter{writeErr: boom}
	b := New(w)

	h, err := b.StartStaticVulnerability("abc")
	require.NoError(t, err)
	err = h.CompleteVulnerability()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `write vulnerability "abc"`)
	assert.Zero(t, b.Written())

	assert.ErrorIs(t, b.CompleteScan(), boom)
}

func TestBuilderFlushClose(t *testing.T) {
	w := &memoryWriter{}
	b := New(w)
	require.NoError(t, b.Flush())
	require.NoError(t, b.Close())
	assert.Equal(t, 1, w.flushed)
	assert.Equal(t, 1, w.closed)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: FormatJSONL},
		{input: "jsonl", want: FormatJSONL},
		{input: " SARIF ", want: FormatSARIF},
		{input: "postgres", want: FormatPostgres},
		{input: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONLWriter(t *testing.T) {
	var out bytes.Buffer
	b := New(NewJSONLWriter(nopCloser{&out}))

	b.SetScanDate(scanDate)
	b.SetEngineVersion("1.0")
	require.NoError(t, b.CompleteScan())

	h, err := b.StartStaticVulnerability("abc")
	require.NoError(t, err)
	h.SetCategory("XSS")
	h.SetLineNumber(103)
	require.NoError(t, h.CompleteVulnerability())

	assert.Empty(t, out.String(), "nothing is written before Flush")
	require.NoError(t, b.Flush())
	require.NoError(t, b.Close())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"type":"scan","scan":{"scan_date":"2017-04-18T23:31:42.136Z","engine_version":"1.0"}}`, lines[0])
	assert.JSONEq(t, `{"type":"vulnerability","vulnerability":{"unique_id":"abc","category":"XSS","line_number":103}}`, lines[1])
}

func TestOpenStdout(t *testing.T) {
	var out bytes.Buffer
	b, err := Open(context.Background(), Options{Format: "jsonl", Path: StdoutPath, Stdout: &out})
	require.NoError(t, err)

	b.SetScanDate(scanDate)
	require.NoError(t, b.CompleteScan())
	require.NoError(t, b.Flush())
	require.NoError(t, b.Close())
	assert.Contains(t, out.String(), `"type":"scan"`)
}

func TestOpenFile(t *testing.T) {
	path := t.TempDir() + "/nested/report.sarif"
	b, err := Open(context.Background(), Options{Format: "sarif", Path: path})
	require.NoError(t, err)
	require.NoError(t, b.Flush())
	require.NoError(t, b.Close())
	assert.FileExists(t, path)
}

func TestOpenFileNotFlushed(t *testing.T) {
	path := t.TempDir() + "/report.jsonl"
	b, err := Open(context.Background(), Options{Format: "jsonl", Path: path})
	require.NoError(t, err)

	b.SetScanDate(scanDate)
	require.NoError(t, b.CompleteScan())
	h, err := b.StartStaticVulnerability("abc")
	require.NoError(t, err)
	h.SetVulnerabilityAbstract(strings.Repeat("x", 8*1024))
	require.NoError(t, h.CompleteVulnerability())
	require.NoError(t, b.Close())

	assert.NoFileExists(t, path)
}

func TestOpenUnknownFormat(t *testing.T) {
	_, err := Open(context.Background(), Options{Format: "xml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestOpenFolder(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(context.Background(), Options{Format: "jsonl", Path: dir})
	require.NoError(t, err)
	require.NoError(t, b.Flush())
	require.NoError(t, b.Close())
	assert.FileExists(t, dir+"/scanio-parser-report.jsonl")
}
