package gltfskema

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the file form of Options.
//
//	driver: go-json          # or encoding/json
//	maxDepth: 64
//	maxBytes: 67108864
//	duplicateKeys: warn      # ignore | warn | error
//	logLevel: info           # empty disables logging
//	logEncoding: console     # or json
type Config struct {
	Driver        string `yaml:"driver"`
	MaxDepth      int    `yaml:"maxDepth"`
	MaxBytes      int64  `yaml:"maxBytes"`
	DuplicateKeys string `yaml:"duplicateKeys"`
	LogLevel      string `yaml:"logLevel"`
	LogEncoding   string `yaml:"logEncoding"`
}

// LoadConfig decodes a YAML configuration. Unknown keys are rejected; an
// empty document yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("gltfskema: config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every value without building anything.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("gltfskema: config: maxDepth must not be negative, got %d", c.MaxDepth)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("gltfskema: config: maxBytes must not be negative, got %d", c.MaxBytes)
	}
	if _, err := parseSeverity(c.DuplicateKeys); err != nil {
		return err
	}
	if c.Driver != "" {
		if _, err := DriverByName(c.Driver); err != nil {
			return err
		}
	}
	if _, err := c.level(); err != nil {
		return err
	}
	switch c.LogEncoding {
	case "", "console", "json":
	default:
		return fmt.Errorf("gltfskema: config: unknown logEncoding %q", c.LogEncoding)
	}
	return nil
}

// Options converts the configuration into load options, building the logger.
func (c Config) Options() (Options, error) {
	if err := c.Validate(); err != nil {
		return Options{}, err
	}
	sev, _ := parseSeverity(c.DuplicateKeys)
	opt := Options{MaxDepth: c.MaxDepth, MaxBytes: c.MaxBytes, OnDuplicateKey: sev}
	if c.Driver != "" {
		opt.Driver, _ = DriverByName(c.Driver)
	}
	log, err := c.Logger()
	if err != nil {
		return Options{}, err
	}
	opt.Logger = log
	return opt, nil
}

// Logger builds a zap logger writing to stderr at the configured level. An
// empty level yields a no-op logger.
func (c Config) Logger() (*zap.Logger, error) {
	if c.LogLevel == "" {
		return zap.NewNop(), nil
	}
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}
	encoding := c.LogEncoding
	if encoding == "" {
		encoding = "console"
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         encoding,
		EncoderConfig:    enc,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zc.Build()
}

func (c Config) level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("gltfskema: config: %w", err)
	}
	return lvl, nil
}

func parseSeverity(s string) (Severity, error) {
	switch s {
	case "", "ignore":
		return Ignore, nil
	case "warn":
		return Warn, nil
	case "error":
		return Reject, nil
	default:
		return Ignore, fmt.Errorf("gltfskema: config: unknown duplicateKeys %q (want ignore, warn or error)", s)
	}
}
