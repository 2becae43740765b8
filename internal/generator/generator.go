// Package generator writes sample scan artifacts: a fixed "steady" scan used as
// a golden fixture and a parametric "generic" scan for volume testing.
package generator

import (
	"archive/zip"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/magiconair/properties"

	"github.com/scan-io-git/scanio-parser/internal/dates"
	"github.com/scan-io-git/scanio-parser/internal/scandata"
)

const (
	// EngineType is recorded in scan.info of every generated artifact.
	EngineType = "SAMPLE"
	// EngineVersion is the engineVersion of every generated scan.
	EngineVersion = "1.0-SNAPSHOT"

	SteadyEntry  = "steady-sample-scan.json"
	GenericEntry = "generic-sample-scan.json"
)

// ErrOutputExists is returned when the output path is already taken. The
// existing file is left untouched.
var ErrOutputExists = errors.New("output file already exists")

var (
	prettyJSON  = jsoniter.Config{IndentionStep: 2}.Froze()
	compactJSON = jsoniter.Config{}.Froze()
)

// Finding is one generated finding, written in field order.
type Finding struct {
	UniqueID              string
	Category              string
	FileName              string
	VulnerabilityAbstract string
	LineNumber            int
	Confidence            float32
	Impact                float32
	Priority              string
	CategoryID            string
	CustomStatus          string
	Artifact              string
	Description           string
	Comment               string
	BuildNumber           string
	LastChangeDate        time.Time
	ArtifactBuildDate     time.Time
	// Text is the head of the textBase64 value; LongTextSize bytes of filler follow it.
	Text string
}

type document struct {
	entry        string
	json         jsoniter.API
	scanDate     string
	buildServer  string
	count        int
	finding      func(i int) Finding
	longTextSize int
	elapsed      func(start time.Time) int
}

// write creates path exclusively and fills it with the zip container for doc.
// The file is removed again when anything fails after creation.
func write(path string, doc *document) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	if err := writeInfo(zw); err != nil {
		return err
	}
	w, err := zw.Create(doc.entry)
	if err != nil {
		return fmt.Errorf("create %s: %w", doc.entry, err)
	}
	if err := doc.writeTo(w); err != nil {
		return fmt.Errorf("write %s: %w", doc.entry, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return nil
}

func writeInfo(zw *zip.Writer) error {
	p := properties.NewProperties()
	if _, _, err := p.Set(scandata.EngineTypeKey, EngineType); err != nil {
		return err
	}
	w, err := zw.Create(scandata.InfoEntry)
	if err != nil {
		return fmt.Errorf("create %s: %w", scandata.InfoEntry, err)
	}
	if _, err := p.WriteComment(w, "# ", properties.ISO_8859_1); err != nil {
		return fmt.Errorf("write %s: %w", scandata.InfoEntry, err)
	}
	return nil
}

func (d *document) writeTo(w io.Writer) error {
	start := time.Now()
	s := jsoniter.NewStream(d.json, w, 4096)

	s.WriteObjectStart()
	writeStringField(s, "engineVersion", EngineVersion)
	writeStringField(s, "scanDate", d.scanDate)
	writeStringField(s, "buildServer", d.buildServer)

	s.WriteObjectField("findings")
	s.WriteArrayStart()
	for i := 0; i < d.count; i++ {
		if i > 0 {
			s.WriteMore()
		}
		if err := d.writeFinding(s, d.finding(i)); err != nil {
			return err
		}
		if err := s.Flush(); err != nil {
			return err
		}
	}
	s.WriteArrayEnd()
	s.WriteMore()

	s.WriteObjectField("elapsed")
	s.WriteInt(d.elapsed(start))
	s.WriteObjectEnd()
	s.WriteRaw("\n")
	return s.Flush()
}

func (d *document) writeFinding(s *jsoniter.Stream, f Finding) error {
	s.WriteObjectStart()
	writeStringField(s, "uniqueId", f.UniqueID)

	writeStringField(s, "category", f.Category)
	writeStringField(s, "fileName", f.FileName)
	writeStringField(s, "vulnerabilityAbstract", f.VulnerabilityAbstract)
	s.WriteObjectField("lineNumber")
	s.WriteInt(f.LineNumber)
	s.WriteMore()
	s.WriteObjectField("confidence")
	s.WriteFloat32(f.Confidence)
	s.WriteMore()
	s.WriteObjectField("impact")
	s.WriteFloat32(f.Impact)
	s.WriteMore()
	writeStringField(s, "priority", f.Priority)

	writeStringField(s, "categoryId", f.CategoryID)
	writeStringField(s, "customStatus", f.CustomStatus)
	writeStringField(s, "artifact", f.Artifact)
	writeStringField(s, "description", f.Description)
	writeStringField(s, "comment", f.Comment)
	writeStringField(s, "buildNumber", f.BuildNumber)
	writeStringField(s, "lastChangeDate", dates.Encode(f.LastChangeDate))
	writeStringField(s, "artifactBuildDate", dates.Encode(f.ArtifactBuildDate))

	s.WriteObjectField("textBase64")
	if err := d.writeText(s, f.Text); err != nil {
		return err
	}
	s.WriteObjectEnd()
	return s.Error
}

// writeText streams head followed by filler through a base64 encoder straight
// into the output, so long texts are never held in memory.
func (d *document) writeText(s *jsoniter.Stream, head string) error {
	s.WriteRaw(`"`)
	if err := s.Flush(); err != nil {
		return err
	}
	size := int64(len(head) + d.longTextSize)
	enc := base64.NewEncoder(base64.StdEncoding, s)
	if _, err := io.Copy(enc, io.LimitReader(newTextReader(head), size)); err != nil {
		return fmt.Errorf("encode long text: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode long text: %w", err)
	}
	s.WriteRaw(`"`)
	return nil
}

func writeStringField(s *jsoniter.Stream, name, value string) {
	s.WriteObjectField(name)
	s.WriteString(value)
	s.WriteMore()
}
