package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/synrais/padkeys/pkg/assets"
	"github.com/synrais/padkeys/pkg/keys"
)

const (
	AppName        = "padkeys"
	UserConfigEnv  = "PADKEYS_CONFIG"
	UserAppPathEnv = "PADKEYS_APP_PATH"
)

// ---- Config Structs ----

type DeviceConfig struct {
	Driver      string        `ini:"driver" json:"driver"`
	Path        string        `ini:"path" json:"path"`
	Wait        bool          `ini:"wait" json:"wait"`
	WaitTimeout time.Duration `ini:"wait_timeout" json:"wait_timeout"`
}

type InjectorConfig struct {
	Backend     string        `ini:"backend" json:"backend"`
	Layout      string        `ini:"layout" json:"layout"`
	Name        string        `ini:"name" json:"name"`
	Settle      time.Duration `ini:"settle" json:"settle"`
	XdotoolPath string        `ini:"xdotool_path" json:"xdotool_path"`
}

type LogConfig struct {
	File       string `ini:"file" json:"file"`
	MaxSize    int    `ini:"max_size" json:"max_size"`
	MaxBackups int    `ini:"max_backups" json:"max_backups"`
	MaxAge     int    `ini:"max_age" json:"max_age"`
	Verbose    bool   `ini:"verbose" json:"verbose"`
}

type UserConfig struct {
	AppPath  string         `ini:"-" json:"app_path"`
	IniPath  string         `ini:"-" json:"ini_path"`
	Device   DeviceConfig   `ini:"device" json:"device"`
	Injector InjectorConfig `ini:"injector" json:"injector"`
	Log      LogConfig      `ini:"log" json:"log"`
}

func NewDefaultConfig() *UserConfig {
	return &UserConfig{
		Device: DeviceConfig{
			Driver:      "joydev",
			WaitTimeout: 30 * time.Second,
		},
		Injector: InjectorConfig{
			Backend:     "uinput",
			Layout:      keys.LayoutWASD.String(),
			Name:        AppName,
			Settle:      200 * time.Millisecond,
			XdotoolPath: "xdotool",
		},
		Log: LogConfig{
			File:       AppName + ".log",
			MaxSize:    1,
			MaxBackups: 2,
			MaxAge:     7,
		},
	}
}

// KeyLayout returns the parsed layout. Call Validate first.
func (c *UserConfig) KeyLayout() keys.Layout {
	l, _ := keys.ParseLayout(c.Injector.Layout)
	return l
}

// LogPath resolves the log file next to the executable. Empty means no file.
func (c *UserConfig) LogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(c.AppPath), c.Log.File)
}

// ValidateDevice checks only the [device] section.
func (c *UserConfig) ValidateDevice(drivers []string) error {
	c.Device.Driver = strings.ToLower(strings.TrimSpace(c.Device.Driver))
	if !contains(drivers, c.Device.Driver) {
		return fmt.Errorf("[device] driver %q not available (have: %s)",
			c.Device.Driver, strings.Join(drivers, ", "))
	}
	if c.Device.Wait && c.Device.WaitTimeout < 0 {
		return fmt.Errorf("[device] wait_timeout must not be negative")
	}
	return nil
}

// Validate normalises names and checks them against the available drivers
// and backends.
func (c *UserConfig) Validate(drivers, backends []string) error {
	if err := c.ValidateDevice(drivers); err != nil {
		return err
	}
	c.Injector.Backend = strings.ToLower(strings.TrimSpace(c.Injector.Backend))
	c.Injector.Layout = strings.ToLower(strings.TrimSpace(c.Injector.Layout))

	if !contains(backends, c.Injector.Backend) {
		return fmt.Errorf("[injector] backend %q not available (have: %s)",
			c.Injector.Backend, strings.Join(backends, ", "))
	}
	if _, err := keys.ParseLayout(c.Injector.Layout); err != nil {
		return fmt.Errorf("[injector] layout: %w", err)
	}
	return nil
}

// JSON dumps the effective configuration.
func (c *UserConfig) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ---- Ensure padkeys.ini exists, load & debug ----

// ConfigPaths returns the executable and ini locations after applying the
// environment overrides.
func ConfigPaths(name string) (exePath, iniPath string, err error) {
	exePath, err = os.Executable()
	if err != nil {
		return "", "", fmt.Errorf("failed to get exe path: %w", err)
	}
	if appPath := os.Getenv(UserAppPathEnv); appPath != "" {
		exePath = appPath
	}
	iniPath = os.Getenv(UserConfigEnv)
	if iniPath == "" {
		iniPath = filepath.Join(filepath.Dir(exePath), name+".ini")
	}
	return exePath, iniPath, nil
}

// LoadEnv reads .env files next to the executable and in the working
// directory. Variables already set are left alone.
func LoadEnv() error {
	var files []string
	if exe, err := os.Executable(); err == nil {
		files = append(files, filepath.Join(filepath.Dir(exe), ".env"))
	}
	files = append(files, ".env")

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// EnsureUserConfig writes the default ini when none exists, then loads it.
// Progress lines go to status.
func EnsureUserConfig(name string, status io.Writer) (*UserConfig, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	_, iniPath, err := ConfigPaths(name)
	if err != nil {
		return nil, err
	}

	// Ensure ini exists
	if _, err := os.Stat(iniPath); os.IsNotExist(err) {
		if err := os.WriteFile(iniPath, assets.DefaultIni, 0644); err != nil {
			return nil, fmt.Errorf("failed to write default ini: %w", err)
		}
		fmt.Fprintln(status, "[CONFIG] No ini found. Copying default")
	} else if err != nil {
		return nil, fmt.Errorf("failed to check ini: %w", err)
	}

	cfg, err := LoadUserConfig(name, NewDefaultConfig())
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(status, "[CONFIG] Loaded config from: %s\n", cfg.IniPath)
	fmt.Fprintf(status, "  Device: Driver=%s | Path=%q | Wait=%v (%s)\n",
		cfg.Device.Driver, cfg.Device.Path, cfg.Device.Wait, cfg.Device.WaitTimeout)
	fmt.Fprintf(status, "  Injector: Backend=%s | Layout=%s | Name=%s\n",
		cfg.Injector.Backend, cfg.Injector.Layout, cfg.Injector.Name)
	return cfg, nil
}
