package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Description: `The dumpconfig command shows the configuration in effect as TOML.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type readlitConfig struct {
	Type        string
	Color       string `toml:",omitempty"`
	Dump        bool
	CacheSize   int
	HistoryFile string `toml:",omitempty"`
	Verbosity   int
}

var defaultConfig = readlitConfig{
	Type:      "Int",
	Color:     "auto",
	CacheSize: 1024,
	Verbosity: 3,
}

const (
	historyFileName = ".readlit_history"
	configKey       = "config"
)

func loadConfig(file string, cfg *readlitConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the defaults, then the config file, then the flags.
func makeConfig(ctx *cli.Context) (readlitConfig, error) {
	cfg := defaultConfig
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	applyFlags(ctx, &cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFlags(ctx *cli.Context, cfg *readlitConfig) {
	if ctx.GlobalIsSet(typeFlag.Name) {
		cfg.Type = ctx.GlobalString(typeFlag.Name)
	}
	if ctx.GlobalIsSet(dumpFlag.Name) {
		cfg.Dump = ctx.GlobalBool(dumpFlag.Name)
	}
	if ctx.GlobalIsSet(colorFlag.Name) {
		cfg.Color = ctx.GlobalString(colorFlag.Name)
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(cacheSizeFlag.Name) {
		cfg.CacheSize = ctx.GlobalInt(cacheSizeFlag.Name)
	}
	if ctx.GlobalIsSet(historyFlag.Name) {
		cfg.HistoryFile = ctx.GlobalString(historyFlag.Name)
	}
}

func (cfg *readlitConfig) validate() error {
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q, want auto, always or never", cfg.Color)
	}
	if cfg.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", cfg.CacheSize)
	}
	if cfg.Verbosity < 0 || cfg.Verbosity > 5 {
		return fmt.Errorf("verbosity %d out of range 0-5", cfg.Verbosity)
	}
	return nil
}

func (cfg *readlitConfig) useColor(terminal bool) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return terminal
}

// historyPath resolves the REPL history file, defaulting to the home
// directory.
func (cfg *readlitConfig) historyPath() string {
	if cfg.HistoryFile != "" {
		return cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}

// configOf returns the configuration resolved before the command ran.
func configOf(ctx *cli.Context) readlitConfig {
	if cfg, ok := ctx.App.Metadata[configKey].(readlitConfig); ok {
		return cfg
	}
	return defaultConfig
}

func dumpConfig(ctx *cli.Context) error {
	cfg := configOf(ctx)
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}
