package parse

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/scanio-parser/pkg/shared"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
	"github.com/scan-io-git/scanio-parser/pkg/shared/logger"
)

// RunOptionsParse holds the arguments for the parse command.
type RunOptionsParse struct {
	Parser       string
	OutputFormat string
	OutputPath   string
	Generation   string
	Policy       string
	MetadataOnly bool
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	parseOptions      RunOptionsParse
	exampleParseUsage = `  # Parsing a scan artifact to JSON Lines on stdout
  scanio-parser parse /path/to/scan.zip

  # Parsing a bare JSON document into a SARIF report
  scanio-parser parse -f sarif -o /path/to/report.sarif /path/to/scan.json

  # Parsing a scan written with the enum generation vocabulary, skipping broken findings
  scanio-parser parse -g enum --policy skip -o /path/to/results/ /path/to/scan.zip

  # Storing scan metadata only in PostgreSQL
  scanio-parser parse -f postgres --metadata-only /path/to/scan.zip

  # Parsing through the sample parser plugin
  scanio-parser parse -p sample -o /path/to/results/ /path/to/scan.zip`
)

// ParseCmd represents the parse command.
var ParseCmd = &cobra.Command{
	Use:                   "parse [--plugin/-p PLUGIN_NAME] [--format/-f FORMAT] [--output/-o PATH] [--generation/-g GENERATION] [--policy abort|skip] [--metadata-only] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleParseUsage,
	Short:                 "Parses a scan artifact into normalized findings",
	RunE:                  runParseCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
	ParseCmd.Long = generateLongDescription(AppConfig)
}

// runParseCommand executes the parse command.
func runParseCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-parse")

	if err := validateParseArgs(&parseOptions, args); err != nil {
		logger.Error("invalid parse arguments", "error", err)
		return err
	}

	req := buildParseRequest(&parseOptions, args[0])
	resp, err := runParse(cmd.Context(), AppConfig, logger, parseOptions.Parser, req)
	if err != nil {
		logger.Error("parse command failed", "input", req.InputPath, "error", err)
		return err
	}

	logger.Info("parse command completed successfully",
		"document", resp.Document,
		"engineType", resp.EngineType,
		"findings", resp.Findings,
		"skipped", resp.Skipped,
		"written", resp.Written,
	)
	return nil
}

// generateLongDescription generates the long description dynamically with the list of available parser plugins.
func generateLongDescription(AppConfig *config.Config) string {
	pluginsMeta := shared.GetPluginVersions(config.GetScanioPluginsHome(AppConfig), shared.PluginTypeParser)
	var plugins []string
	for plugin := range pluginsMeta {
		plugins = append(plugins, plugin)
	}
	return fmt.Sprintf(`Parses a scan artifact, a zip container or a bare JSON document, and writes
the scan metadata and findings in the requested output format. Without a plugin the
parser runs in-process.

List of avaliable parser plugins:
  %s`, strings.Join(plugins, "\n  "))
}

// Initialize flags for the parse command.
func init() {
	ParseCmd.Flags().StringVarP(&parseOptions.OutputFormat, "format", "f", "", "Output format: jsonl, sarif or postgres. Defaults to the configured format or jsonl.")
	ParseCmd.Flags().StringVarP(&parseOptions.Generation, "generation", "g", "", "Vocabulary generation of the scan document: legacy, enum, base64 or latest.")
	ParseCmd.Flags().BoolP("help", "h", false, "Show help for the parse command.")
	ParseCmd.Flags().BoolVar(&parseOptions.MetadataOnly, "metadata-only", false, "Decode the scan metadata only and skip the findings.")
	ParseCmd.Flags().StringVarP(&parseOptions.OutputPath, "output", "o", "", "Path to the output file or directory. Use '-' for stdout.")
	ParseCmd.Flags().StringVarP(&parseOptions.Parser, "plugin", "p", "", "Name of the parser plugin to use. Runs in-process when empty.")
	ParseCmd.Flags().StringVar(&parseOptions.Policy, "policy", "", "Per-finding failure policy: abort or skip.")
}
