package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "BREAKOUT"

type Vec struct {
	X, Y float64
}

type Window struct {
	Title string
	Scale float64
}

type Log struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Config is the game configuration handed to the engine at startup.
type Config struct {
	Width   int
	Height  int
	Gravity Vec
	Debug   bool

	Window Window
	TPS    int
	// Seed drives block tints. Zero picks a random seed.
	Seed uint64

	TintMin uint32
	TintMax uint32

	Log Log
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("width", 400)
	v.SetDefault("height", 600)
	v.SetDefault("gravity.x", 0)
	v.SetDefault("gravity.y", 0)
	v.SetDefault("debug", false)

	v.SetDefault("window.title", "Breakout")
	v.SetDefault("window.scale", 1)
	v.SetDefault("tps", 60)
	v.SetDefault("seed", 0)

	v.SetDefault("blocks.tint_min", "0x444444")
	v.SetDefault("blocks.tint_max", "0xFFFFFF")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "breakout.log")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// Flags declares the command line overrides. Names match the config keys.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (yaml, toml, json or properties)")
	fs.Int("width", 400, "canvas width in pixels")
	fs.Int("height", 600, "canvas height in pixels")
	fs.Float64("gravity.x", 0, "horizontal gravity in px/s²")
	fs.Float64("gravity.y", 0, "vertical gravity in px/s²")
	fs.Bool("debug", false, "draw physics bodies and the debug HUD")
	fs.Float64("window.scale", 1, "window scale factor")
	fs.Uint64("seed", 0, "random seed for block tints, 0 for a random one")
	fs.String("log.level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("log.file", "breakout.log", "log file, empty to disable")
}

// Load merges defaults, the optional config file, BREAKOUT_* env vars and flags.
// fs may be nil.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("breakout")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	tintMin, err := cast.ToUint32E(v.Get("blocks.tint_min"))
	if err != nil {
		return nil, fmt.Errorf("blocks.tint_min: %w", err)
	}
	tintMax, err := cast.ToUint32E(v.Get("blocks.tint_max"))
	if err != nil {
		return nil, fmt.Errorf("blocks.tint_max: %w", err)
	}

	cfg := &Config{
		Width:  v.GetInt("width"),
		Height: v.GetInt("height"),
		Gravity: Vec{
			X: v.GetFloat64("gravity.x"),
			Y: v.GetFloat64("gravity.y"),
		},
		Debug: v.GetBool("debug"),
		Window: Window{
			Title: v.GetString("window.title"),
			Scale: v.GetFloat64("window.scale"),
		},
		TPS:     v.GetInt("tps"),
		Seed:    v.GetUint64("seed"),
		TintMin: tintMin,
		TintMax: tintMax,
		Log: Log{
			Level:      v.GetString("log.level"),
			File:       v.GetString("log.file"),
			MaxSize:    v.GetInt("log.max_size"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAge:     v.GetInt("log.max_age"),
			Compress:   v.GetBool("log.compress"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	case c.Window.Scale <= 0:
		return fmt.Errorf("invalid window scale %v", c.Window.Scale)
	case c.TPS <= 0:
		return fmt.Errorf("invalid tps %d", c.TPS)
	case c.TintMax > 0xFFFFFF:
		return fmt.Errorf("tint max %#x is not a 0xRRGGBB colour", c.TintMax)
	case c.TintMin > c.TintMax:
		return fmt.Errorf("tint range %#06x-%#06x is empty", c.TintMin, c.TintMax)
	}
	return nil
}
