package scandata

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entries map[string]string, order ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func readDocument(t *testing.T, a *Artifact) string {
	t.Helper()
	rc, err := a.Document()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestOpenArchive(t *testing.T) {
	entries := map[string]string{
		"scan.info":               "# produced by the sample engine\nengineType=SAMPLE\n",
		"readme.txt":              "not a scan",
		"steady-sample-scan.json": `{"scanDate":"2017-04-18T23:31:42.136Z"}`,
		"other.json":              `{}`,
	}
	path := writeZip(t, entries, "readme.txt", "scan.info", "steady-sample-scan.json", "other.json")

	a, err := Open(path, "")
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.IsArchive())
	assert.Equal(t, "SAMPLE", a.EngineType())
	assert.Equal(t, "steady-sample-scan.json", a.DocumentName())

	// two passes over the same entry
	assert.Equal(t, entries["steady-sample-scan.json"], readDocument(t, a))
	assert.Equal(t, entries["steady-sample-scan.json"], readDocument(t, a))
}

func TestOpenArchiveSuffix(t *testing.T) {
	entries := map[string]string{
		"a.json":      `{"a":1}`,
		"result.scan": `{"b":2}`,
	}
	path := writeZip(t, entries, "a.json", "result.scan")

	a, err := Open(path, ".scan")
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "result.scan", a.DocumentName())
	assert.Equal(t, "", a.EngineType())
	assert.Equal(t, `{"b":2}`, readDocument(t, a))
}

func TestOpenArchiveWithoutDocument(t *testing.T) {
	path := writeZip(t, map[string]string{"scan.info": "engineType=SAMPLE"}, "scan.info")

	_, err := Open(path, ".json")
	assert.True(t, errors.Is(err, ErrNoDocument))
}

func TestOpenPlainDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"findings":[]}`), 0644))

	a, err := Open(path, "")
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.IsArchive())
	assert.Equal(t, path, a.DocumentName())
	assert.Empty(t, a.EngineType())
	assert.Equal(t, `{"findings":[]}`, readDocument(t, a))
}

func TestOpenShortAndMissingFiles(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte("{}"), 0644))

	a, err := Open(short, "")
	require.NoError(t, err)
	assert.False(t, a.IsArchive())

	_, err = Open(filepath.Join(dir, "missing.zip"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
