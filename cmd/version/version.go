package version

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/scanio-parser/pkg/shared"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// CoreVersions holds version information for the core application and plugins.
type CoreVersions struct {
	Versions    shared.Versions              `json:"versions"`
	PluginsMeta map[string]shared.PluginMeta `json:"plugins_meta"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application and plugins",
		Run: func(cmd *cobra.Command, args []string) {
			version := CoreVersions{
				Versions: shared.Versions{
					Version:       CoreVersion,
					GolangVersion: GolangVersion,
					BuildTime:     BuildTime,
				},
				PluginsMeta: shared.GetPluginVersions(config.GetScanioPluginsHome(AppConfig), ""),
			}

			printVersionInfo(cmd.OutOrStdout(), &version)
		},
	}
}

// printVersionInfo prints the version information for the core application and plugins.
func printVersionInfo(w io.Writer, versions *CoreVersions) {
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Versions.Version)
	fmt.Fprintln(w, "Plugin Versions:")

	plugins := make([]string, 0, len(versions.PluginsMeta))
	for plugin := range versions.PluginsMeta {
		plugins = append(plugins, plugin)
	}
	sort.Strings(plugins)
	for _, plugin := range plugins {
		meta := versions.PluginsMeta[plugin]
		fmt.Fprintf(w, "  %s: v%s (Type: %s)\n", plugin, meta.Version, meta.PluginType)
	}
	fmt.Fprintf(w, "Go Version: %s\n", versions.Versions.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", versions.Versions.BuildTime)
}
