package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// LoadUserConfig loads padkeys.ini into defaultConfig. Settings missing from
// the file keep their defaults.
func LoadUserConfig(name string, defaultConfig *UserConfig) (*UserConfig, error) {
	exePath, iniPath, err := ConfigPaths(name)
	if err != nil {
		return defaultConfig, err
	}
	defaultConfig.AppPath = exePath
	defaultConfig.IniPath = iniPath

	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, iniPath)
	if err != nil {
		return defaultConfig, fmt.Errorf("failed to read %s: %w", iniPath, err)
	}

	if err := cfg.MapTo(defaultConfig); err != nil {
		return defaultConfig, fmt.Errorf("failed to parse %s: %w", iniPath, err)
	}
	return defaultConfig, nil
}
