// Package config loads hostbridge settings from defaults, an optional TOML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seoyhaein/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SurfaceTUI  = "tui"
	SurfaceFyne = "fyne"
)

// Config holds application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Document DocumentConfig `mapstructure:"document"`
	UI       UIConfig       `mapstructure:"ui"`
	Host     HostConfig     `mapstructure:"host"`
}

// LogConfig controls logrus. File is appended to; empty means stderr, or
// nothing at all while the terminal window owns the screen.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DocumentConfig points at the model to open. An empty path opens the built-in sample.
type DocumentConfig struct {
	Path      string  `mapstructure:"path"`
	Selection []int64 `mapstructure:"selection"`
}

type UIConfig struct {
	Surface          string `mapstructure:"surface"`
	Title            string `mapstructure:"title"`
	DisableWhileBusy bool   `mapstructure:"disable_while_busy"`
}

type HostConfig struct {
	QueueSize int `mapstructure:"queue_size"`
}

// Load reads configuration from file and env. Env var overrides use prefix HOSTBRIDGE_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("document.path", "")
	v.SetDefault("document.selection", []int64{})
	v.SetDefault("ui.surface", SurfaceTUI)
	v.SetDefault("ui.title", "Plugin Template")
	v.SetDefault("ui.disable_while_busy", true)
	v.SetDefault("host.queue_size", 64)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("HOSTBRIDGE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "hostbridge"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HOSTBRIDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, an explicit one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values Load cannot default away.
func (c Config) Validate() error {
	switch c.UI.Surface {
	case SurfaceTUI, SurfaceFyne:
	default:
		return fmt.Errorf("ui.surface: unknown surface %q", c.UI.Surface)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Host.QueueSize <= 0 {
		return fmt.Errorf("host.queue_size must be positive, got %d", c.Host.QueueSize)
	}
	if utils.IsEmptyString(c.UI.Title) {
		return fmt.Errorf("ui.title is empty")
	}
	return nil
}

// ApplyLogging sets level and formatter on every logger given.
func (c Config) ApplyLogging(loggers ...*logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	for _, l := range loggers {
		l.SetLevel(level)
		if c.Log.Format == "json" {
			l.SetFormatter(&logrus.JSONFormatter{})
		} else {
			l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
	}
	return nil
}
