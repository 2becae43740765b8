package config

// GetScanioHome returns the Scanio home folder, or an empty string for a nil config.
func GetScanioHome(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.Scanio.HomeFolder
}

// GetScanioPluginsHome returns the folder parser plugins are installed in.
func GetScanioPluginsHome(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.Scanio.PluginsFolder
}
