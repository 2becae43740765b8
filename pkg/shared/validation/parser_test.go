package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/scanio-parser/pkg/shared"
)

func TestValidateParseArgs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scan.zip")
	require.NoError(t, os.WriteFile(input, []byte("PK"), 0644))

	tests := []struct {
		name    string
		args    shared.ParserParseRequest
		wantErr string
	}{
		{name: "valid", args: shared.ParserParseRequest{InputPath: input, OutputFormat: "jsonl", OutputPath: "-"}},
		{name: "postgres without path", args: shared.ParserParseRequest{InputPath: input, OutputFormat: "postgres"}},
		{name: "missing input", args: shared.ParserParseRequest{}, wantErr: "input path is required"},
		{name: "input is a folder", args: shared.ParserParseRequest{InputPath: dir}, wantErr: "is a directory"},
		{name: "input does not exist", args: shared.ParserParseRequest{InputPath: filepath.Join(dir, "nope.zip")}, wantErr: "input path is invalid"},
		{name: "postgres with path", args: shared.ParserParseRequest{InputPath: input, OutputFormat: "postgres", OutputPath: "out.jsonl"}, wantErr: "output path cannot be used with the postgres format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParseArgs(&tt.args)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
