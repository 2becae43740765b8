package generate

import (
	"fmt"
	"strconv"
)

// validateGenerateArgs parses and validates the positional arguments of the generate command.
func validateGenerateArgs(args []string) (RunOptionsGenerate, error) {
	var options RunOptionsGenerate
	if len(args) < 2 {
		return options, fmt.Errorf("a mode and an output path must be specified")
	}
	options.Mode = args[0]
	options.OutputPath = args[1]

	switch options.Mode {
	case ModeSteady:
		if len(args) != 2 {
			return options, fmt.Errorf("the steady mode takes only an output path")
		}
	case ModeGeneric:
		if len(args) != 5 {
			return options, fmt.Errorf("the generic mode takes an output path, an issue count, a category count and a long text size")
		}
		counts := []struct {
			name  string
			value string
			dst   *int
		}{
			{"issue count", args[2], &options.IssueCount},
			{"category count", args[3], &options.CategoryCount},
			{"long text size", args[4], &options.LongTextSize},
		}
		for _, c := range counts {
			n, err := strconv.Atoi(c.value)
			if err != nil {
				return options, fmt.Errorf("the %s must be an integer: %q", c.name, c.value)
			}
			*c.dst = n
		}
		if err := options.genericOptions().Validate(); err != nil {
			return options, err
		}
	default:
		return options, fmt.Errorf("unknown mode %q, expected %s or %s", options.Mode, ModeSteady, ModeGeneric)
	}

	if options.OutputPath == "" {
		return options, fmt.Errorf("the output path must not be empty")
	}
	return options, nil
}
