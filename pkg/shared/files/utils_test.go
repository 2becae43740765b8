package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFileFullPath(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "scan.jsonl")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0644))

	tests := []struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
	}{
		{
			name:         "existing directory",
			inputPath:    tmpDir,
			nameTemplate: "report.sarif",
			expectFile:   filepath.Join(tmpDir, "report.sarif"),
			expectFolder: tmpDir,
		},
		{
			name:         "existing file",
			inputPath:    existing,
			nameTemplate: "ignored.jsonl",
			expectFile:   existing,
			expectFolder: tmpDir,
		},
		{
			name:         "missing path without extension",
			inputPath:    filepath.Join(tmpDir, "results"),
			nameTemplate: "report.jsonl",
			expectFile:   filepath.Join(tmpDir, "results", "report.jsonl"),
			expectFolder: filepath.Join(tmpDir, "results"),
		},
		{
			name:         "missing file with extension",
			inputPath:    filepath.Join(tmpDir, "out", "findings.sarif"),
			nameTemplate: "ignored.sarif",
			expectFile:   filepath.Join(tmpDir, "out", "findings.sarif"),
			expectFolder: filepath.Join(tmpDir, "out"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath, folderPath, err := DetermineFileFullPath(tt.inputPath, tt.nameTemplate)
			require.NoError(t, err)
			assert.Equal(t, tt.expectFile, filePath)
			assert.Equal(t, tt.expectFolder, folderPath)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.scanio/plugins")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".scanio/plugins"), got)

	got, err = ExpandPath("/tmp/~/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/~/x", got)
}

func TestValidatePath(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "scan.zip")
	require.NoError(t, os.WriteFile(file, []byte("PK"), 0644))

	assert.NoError(t, ValidatePath(file))
	assert.ErrorContains(t, ValidatePath(tmpDir), "is a directory")
	assert.Error(t, ValidatePath(filepath.Join(tmpDir, "missing.zip")))
}

func TestCreateFolderIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, CreateFolderIfNotExists(dir))
	require.NoError(t, CreateFolderIfNotExists(dir))
	assert.DirExists(t, dir)
}
