// Package scandata opens scan artifacts: a bare JSON document or a zip
// container holding a scan.info properties file next to the document.
package scandata

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/magiconair/properties"
)

const (
	// InfoEntry is the properties file describing the producing engine.
	InfoEntry = "scan.info"
	// EngineTypeKey is the scan.info key naming the engine.
	EngineTypeKey = "engineType"
	// DefaultEntrySuffix selects the scan document inside a container.
	DefaultEntrySuffix = ".json"
)

var zipMagic = []byte("PK\x03\x04")

// ErrNoDocument is returned when a container holds no entry with the wanted suffix.
var ErrNoDocument = errors.New("no scan document in archive")

// Artifact is an opened scan artifact. Document may be called repeatedly, each
// call returns a fresh reader positioned at the start of the document.
type Artifact struct {
	path  string
	zip   *zip.ReadCloser
	entry *zip.File
	info  *properties.Properties
}

// Open inspects the file at path. Zip containers are recognised by their magic
// bytes; anything else is treated as the JSON document itself.
func Open(path, suffix string) (*Artifact, error) {
	if suffix == "" {
		suffix = DefaultEntrySuffix
	}

	isZip, err := sniffZip(path)
	if err != nil {
		return nil, err
	}
	if !isZip {
		return &Artifact{path: path, info: properties.NewProperties()}, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %q: %w", path, err)
	}
	a := &Artifact{path: path, zip: zr, info: properties.NewProperties()}
	for _, f := range zr.File {
		switch {
		case f.Name == InfoEntry:
			if a.info, err = readInfo(f); err != nil {
				zr.Close()
				return nil, err
			}
		case a.entry == nil && !f.FileInfo().IsDir() && strings.HasSuffix(f.Name, suffix):
			a.entry = f
		}
	}
	if a.entry == nil {
		zr.Close()
		return nil, fmt.Errorf("%w: %q has no entry ending in %q", ErrNoDocument, path, suffix)
	}
	return a, nil
}

func sniffZip(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open scan artifact: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(zipMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read scan artifact: %w", err)
	}
	return bytes.Equal(head[:n], zipMagic), nil
}

func readInfo(f *zip.File) (*properties.Properties, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", InfoEntry, err)
	}
	defer rc.Close()

	buf, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", InfoEntry, err)
	}
	p, err := properties.Load(buf, properties.ISO_8859_1)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", InfoEntry, err)
	}
	return p, nil
}

// IsArchive reports whether the artifact is a zip container.
func (a *Artifact) IsArchive() bool {
	return a.zip != nil
}

// EngineType returns the engineType recorded in scan.info, or "" when absent.
func (a *Artifact) EngineType() string {
	return a.info.GetString(EngineTypeKey, "")
}

// DocumentName returns the container entry name, or the file path for a bare document.
func (a *Artifact) DocumentName() string {
	if a.entry != nil {
		return a.entry.Name
	}
	return a.path
}

// Document opens the scan document. The caller closes the returned reader.
func (a *Artifact) Document() (io.ReadCloser, error) {
	if a.entry != nil {
		rc, err := a.entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", a.entry.Name, err)
		}
		return rc, nil
	}
	f, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("open scan document: %w", err)
	}
	return f, nil
}

// Close releases the container.
func (a *Artifact) Close() error {
	if a.zip == nil {
		return nil
	}
	return a.zip.Close()
}
