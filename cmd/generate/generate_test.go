package generate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/scanio-parser/internal/scandata"
	errs "github.com/scan-io-git/scanio-parser/pkg/shared/errors"
)

func TestValidateGenerateArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    RunOptionsGenerate
		wantErr string
	}{
		{
			name: "steady",
			args: []string{"steady", "out.zip"},
			want: RunOptionsGenerate{Mode: ModeSteady, OutputPath: "out.zip"},
		},
		{
			name: "generic",
			args: []string{"generic", "out.zip", "100", "5", "1024"},
			want: RunOptionsGenerate{Mode: ModeGeneric, OutputPath: "out.zip", IssueCount: 100, CategoryCount: 5, LongTextSize: 1024},
		},
		{
			name:    "missing output",
			args:    []string{"steady"},
			wantErr: "a mode and an output path must be specified",
		},
		{
			name:    "steady with counts",
			args:    []string{"steady", "out.zip", "10"},
			wantErr: "the steady mode takes only an output path",
		},
		{
			name:    "generic without counts",
			args:    []string{"generic", "out.zip"},
			wantErr: "the generic mode takes an output path",
		},
		{
			name:    "not a number",
			args:    []string{"generic", "out.zip", "ten", "5", "0"},
			wantErr: `the issue count must be an integer: "ten"`,
		},
		{
			name:    "zero categories",
			args:    []string{"generic", "out.zip", "10", "0", "0"},
			wantErr: "category count must be positive",
		},
		{
			name:    "unknown mode",
			args:    []string{"random", "out.zip"},
			wantErr: `unknown mode "random"`,
		},
		{
			name:    "empty output",
			args:    []string{"steady", ""},
			wantErr: "the output path must not be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateGenerateArgs(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "generic.zip")

	require.NoError(t, runGenerateCommand(GenerateCmd, []string{"generic", path, "3", "2", "16"}))
	a, err := scandata.Open(path, "")
	require.NoError(t, err)
	assert.Equal(t, "generic-sample-scan.json", a.DocumentName())
	require.NoError(t, a.Close())

	err = runGenerateCommand(GenerateCmd, []string{"steady", path})
	var cmdErr *errs.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, errs.ExitCodeOutputExists, cmdErr.ExitCode)

	err = runGenerateCommand(GenerateCmd, []string{"generic", filepath.Join(dir, "bad.zip"), "-1", "2", "0"})
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, errs.ExitCodeFailure, cmdErr.ExitCode)
	_, statErr := os.Stat(filepath.Join(dir, "bad.zip"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunGenerateCommandWithoutArgs(t *testing.T) {
	var out bytes.Buffer
	GenerateCmd.SetOut(&out)
	t.Cleanup(func() { GenerateCmd.SetOut(nil) })

	err := runGenerateCommand(GenerateCmd, nil)
	var cmdErr *errs.CommandError
	require.True(t, errors.As(err, &cmdErr), "got %v", err)
	assert.Equal(t, errs.ExitCodeFailure, cmdErr.ExitCode)
	assert.Contains(t, out.String(), "scanio-parser generate steady")
}
