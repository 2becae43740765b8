package generate

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/scanio-parser/internal/generator"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
	errs "github.com/scan-io-git/scanio-parser/pkg/shared/errors"
	"github.com/scan-io-git/scanio-parser/pkg/shared/logger"
)

// RunOptionsGenerate holds the arguments for the generate command.
type RunOptionsGenerate struct {
	Mode          string
	OutputPath    string
	IssueCount    int
	CategoryCount int
	LongTextSize  int
}

// Global variables for configuration and command arguments
var (
	AppConfig            *config.Config
	exampleGenerateUsage = `  # Writing the fixed sample scan used by the parser tests
  scanio-parser generate steady /path/to/steady-sample-scan.zip

  # Writing a scan of 1000 random findings over 10 categories with 1 KiB of long text each
  scanio-parser generate generic /path/to/generic-sample-scan.zip 1000 10 1024`
)

// GenerateCmd represents the generate command.
var GenerateCmd = &cobra.Command{
	Use:                   "generate {steady OUTPUT | generic OUTPUT ISSUE_COUNT CATEGORY_COUNT LONG_TEXT_SIZE}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleGenerateUsage,
	Short:                 "Writes sample scan artifacts for testing parsers",
	RunE:                  runGenerateCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runGenerateCommand executes the generate command.
func runGenerateCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if err := cmd.Help(); err != nil {
			return err
		}
	}

	logger := logger.NewLogger(AppConfig, "core-generate")

	options, err := validateGenerateArgs(args)
	if err != nil {
		logger.Error("invalid generate arguments", "error", err)
		return errs.NewCommandError(err, errs.ExitCodeFailure)
	}

	if err := runGenerate(options); err != nil {
		logger.Error("generate command failed", "output", options.OutputPath, "error", err)
		if errors.Is(err, generator.ErrOutputExists) {
			return errs.NewCommandError(err, errs.ExitCodeOutputExists)
		}
		return errs.NewCommandError(err, errs.ExitCodeFailure)
	}

	logger.Info("generate command completed successfully", "mode", options.Mode, "output", options.OutputPath)
	return nil
}

func init() {
	GenerateCmd.Flags().BoolP("help", "h", false, "Show help for the generate command.")
}
