package shared

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-plugin"

	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
	"github.com/scan-io-git/scanio-parser/pkg/shared/logger"
)

const (
	PluginTypeParser string = "parser"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "SCANIO",
	MagicCookieValue: "a65de33ff91e68ab6f5cd1fd5abb1235294816f5",
}

var PluginMap = map[string]plugin.Plugin{
	PluginTypeParser: &ParserPlugin{},
}

// PluginPath returns the binary of pluginName inside the plugins folder.
func PluginPath(cfg *config.Config, pluginName string) string {
	return filepath.Join(config.GetScanioPluginsHome(cfg), pluginName, pluginName)
}

// WithPlugin starts the plugin binary, dispenses pluginType and hands it to f.
// The plugin process is killed when f returns.
func WithPlugin(cfg *config.Config, loggerName string, pluginType string, pluginName string, f func(interface{}) error) error {
	logger := logger.NewLogger(cfg, loggerName)

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  HandshakeConfig,
		Plugins:          PluginMap,
		Cmd:              exec.Command(PluginPath(cfg, pluginName)),
		Logger:           logger,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return fmt.Errorf("failed to start plugin %q: %w", pluginName, err)
	}

	raw, err := rpcClient.Dispense(pluginType)
	if err != nil {
		return fmt.Errorf("failed to dispense %s plugin %q: %w", pluginType, pluginName, err)
	}

	return f(raw)
}
