package generate

import (
	"github.com/scan-io-git/scanio-parser/internal/generator"
	"github.com/scan-io-git/scanio-parser/pkg/shared/files"
)

// Mode constants
const (
	ModeSteady  = "steady"
	ModeGeneric = "generic"
)

func (o RunOptionsGenerate) genericOptions() generator.GenericOptions {
	return generator.GenericOptions{
		IssueCount:    o.IssueCount,
		CategoryCount: o.CategoryCount,
		LongTextSize:  o.LongTextSize,
	}
}

// runGenerate writes the artifact selected by options.
func runGenerate(options RunOptionsGenerate) error {
	path, err := files.ExpandPath(options.OutputPath)
	if err != nil {
		return err
	}
	if options.Mode == ModeSteady {
		return generator.Steady(path)
	}
	return generator.Generic(path, options.genericOptions())
}
