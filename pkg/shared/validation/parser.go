package validation

import (
	"fmt"

	"github.com/scan-io-git/scanio-parser/pkg/shared"
	"github.com/scan-io-git/scanio-parser/pkg/shared/files"
)

// ValidateParseArgs checks the necessary fields in ParserParseRequest and
// expands the input path in place.
func ValidateParseArgs(args *shared.ParserParseRequest) error {
	if args.InputPath == "" {
		return fmt.Errorf("input path is required")
	}

	expandedPath, err := files.ExpandPath(args.InputPath)
	if err != nil {
		return fmt.Errorf("failed to expand path '%s': %w", args.InputPath, err)
	}
	if err := files.ValidatePath(expandedPath); err != nil {
		return fmt.Errorf("input path is invalid: %w", err)
	}
	args.InputPath = expandedPath

	if args.OutputFormat == "postgres" && args.OutputPath != "" {
		return fmt.Errorf("output path cannot be used with the postgres format")
	}
	return nil
}
