package parse

import (
	"fmt"
	"os"
	"strings"

	"github.com/scan-io-git/scanio-parser/internal/sink"
	"github.com/scan-io-git/scanio-parser/pkg/shared"
)

// validateParseArgs validates the arguments provided to the parse command.
func validateParseArgs(options *RunOptionsParse, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one input path must be specified")
	}
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return fmt.Errorf("the input path does not exist: %v", args[0])
	}

	if options.OutputFormat != "" {
		format, err := sink.ParseFormat(options.OutputFormat)
		if err != nil {
			return err
		}
		options.OutputFormat = format
		if format == sink.FormatPostgres && options.OutputPath != "" {
			return fmt.Errorf("the 'output' flag cannot be used with the postgres format")
		}
	}

	if options.Policy != "" && !shared.IsInList(strings.ToLower(options.Policy), []string{"abort", "skip"}) {
		return fmt.Errorf("the 'policy' flag must be one of: abort, skip")
	}

	if options.Parser != "" && options.OutputPath == sink.StdoutPath {
		return fmt.Errorf("stdout output cannot be used with a plugin")
	}
	return nil
}
