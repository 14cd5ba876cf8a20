package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// config is the harness configuration loaded from YAML.
type config struct {
	SampleRate float64 `yaml:"sample_rate"` // frames per second
	BlockSize  uint32  `yaml:"block_size"`  // frames per block
	Blocks     int     `yaml:"blocks"`      // blocks to process
	LogLevel   string  `yaml:"log_level"`   // debug, info, warn, error
	Manifest   string  `yaml:"manifest"`    // manifest path, empty for built-in
	Database   string  `yaml:"database"`    // sqlite path, empty disables recording

	Reply struct {
		Respond     bool   `yaml:"respond"`      // answer the dialog at all
		Value       bool   `yaml:"value"`        // the scripted answer
		DelayBlocks uint64 `yaml:"delay_blocks"` // blocks between request and reply
	} `yaml:"reply"`
}

func defaultConfig() *config {
	cfg := &config{
		SampleRate: 48000,
		BlockSize:  1024,
		Blocks:     150,
		LogLevel:   "info",
	}
	cfg.Reply.Respond = true
	cfg.Reply.Value = true
	cfg.Reply.DelayBlocks = 1

	return cfg
}

// loadConfig reads the YAML config at path, or returns defaults when path is
// empty. File values override defaults field by field.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %v", c.SampleRate)
	}

	if c.BlockSize == 0 {
		return fmt.Errorf("block_size must be positive")
	}

	if c.Blocks < 0 {
		return fmt.Errorf("blocks must not be negative, got %d", c.Blocks)
	}

	return nil
}

func (c *config) slogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
