// Command reqval-host runs the value-request example plugin inside the
// in-process host harness: it loads and validates the plugin manifest, drives
// a configurable number of audio blocks, answers the plugin's dialog request
// with a scripted value, and optionally records the session to sqlite.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lv2go/reqval/host"
	"github.com/lv2go/reqval/host/recorder"
	"github.com/lv2go/reqval/manifest"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "reqval-host: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.slogLevel(),
	}))

	m, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	logger.Info("Manifest validated", "uri", m.URI, "name", m.Name)

	opts := []host.Option{
		host.WithLogger(logger),
		host.WithReplyDelay(cfg.Reply.DelayBlocks),
	}

	if cfg.Reply.Respond {
		opts = append(opts, host.WithResponder(func(host.Request) (bool, bool) {
			return cfg.Reply.Value, true
		}))
	} else {
		opts = append(opts, host.WithResponder(nil))
	}

	if cfg.Database != "" {
		rec, err := recorder.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("open recorder: %w", err)
		}

		defer rec.Close()

		opts = append(opts, host.WithRecorder(rec))
	}

	h, err := host.New(cfg.SampleRate, opts...)
	if err != nil {
		return err
	}

	defer h.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Running",
		"session_id", h.SessionID(),
		"blocks", cfg.Blocks,
		"block_size", cfg.BlockSize,
		"sample_rate", cfg.SampleRate,
	)

	if err := h.RunBlocks(ctx, cfg.Blocks, cfg.BlockSize); err != nil {
		return err
	}

	for _, req := range h.Requests() {
		fmt.Printf("dialog request %s: %q (requires return: %t)\n", req.ID, req.Text, req.RequiresReturn)
	}

	fmt.Printf("replies injected: %d\n", h.InjectedReplies())

	return nil
}

func loadManifest(cfg *config) (*manifest.Manifest, error) {
	if cfg.Manifest != "" {
		return manifest.Load(cfg.Manifest)
	}

	m := manifest.Default()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}
