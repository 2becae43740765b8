package shared

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"
)

// Versions holds build information of a binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// PluginMeta is the content of a plugin VERSION file.
type PluginMeta struct {
	Version    string `json:"version"`
	PluginType string `json:"plugin_type"`
}

var unknownPluginMeta = PluginMeta{Version: "unknown", PluginType: "unknown"}

// ReadPluginMeta reads and parses a plugin VERSION file.
func ReadPluginMeta(versionFilePath string) PluginMeta {
	var pm PluginMeta
	data, err := os.ReadFile(versionFilePath)
	if err != nil {
		return unknownPluginMeta
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &pm); err != nil {
		return unknownPluginMeta
	}
	return pm
}

// GetPluginVersions reads the VERSION file of every plugin folder in pluginsDir.
// An empty pluginType returns plugins of every type.
func GetPluginVersions(pluginsDir, pluginType string) map[string]PluginMeta {
	pluginsMeta := make(map[string]PluginMeta)
	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		return pluginsMeta
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta := ReadPluginMeta(filepath.Join(pluginsDir, entry.Name(), "VERSION"))
		if pluginType != "" && meta.PluginType != pluginType {
			continue
		}
		pluginsMeta[entry.Name()] = meta
	}
	return pluginsMeta
}

// IsInList reports whether target is one of list.
func IsInList(target string, list []string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

// HasFlags reports whether any flag was set on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	hasFlags := false
	flags.Visit(func(*pflag.Flag) {
		hasFlags = true
	})
	return hasFlags
}
