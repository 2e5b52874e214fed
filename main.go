package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"SageDraw/internal/logging"
	sagenet "SageDraw/internal/net"
	"SageDraw/internal/pad"
	"SageDraw/internal/render"
	"SageDraw/internal/ui"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logging.Set(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	render.PreferEmojiFont(cfg.EmojiFont)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := pad.Options{KeepStampTool: cfg.KeepStampTool, ExportScale: cfg.ExportScale}
	switch cfg.Mode {
	case "serve":
		err = runServe(ctx, cfg, opts)
	case "find":
		err = runFind(cfg)
	default:
		runDesktop(ctx, cfg, opts)
	}
	if err != nil {
		logging.L().Error("exiting", "err", err)
		os.Exit(1)
	}
}

func runDesktop(ctx context.Context, cfg Config, opts pad.Options) {
	logging.L().Info("Starting as DESKTOP")
	shareLink := ""
	if cfg.Serve {
		shareLink = sagenet.ShareLink(cfg.Port)
		go func() {
			if err := runServe(ctx, cfg, opts); err != nil {
				logging.L().Error("[BRIDGE] stopped", "err", err)
			}
		}()
	}
	ui.RunApp(cfg.Width, cfg.Height, opts, shareLink)
}

func runServe(ctx context.Context, cfg Config, opts pad.Options) error {
	logging.L().Info("Starting as SERVER", "link", sagenet.ShareLink(cfg.Port))
	if cfg.Advertise {
		server, err := sagenet.Advertise(cfg.Port)
		if err != nil {
			logging.L().Warn("[MDNS] not advertising", "err", err)
		} else {
			defer server.Shutdown()
		}
	}
	srv := sagenet.NewServer(cfg.Width, cfg.Height, opts)
	return srv.ListenAndServe(ctx, cfg.Port)
}

func runFind(cfg Config) error {
	found := 0
	err := sagenet.Browse(cfg.FindTimeout, func(addr string) {
		found++
		fmt.Printf("http://%s/\n", addr)
	})
	if err != nil {
		return err
	}
	if found == 0 {
		fmt.Fprintln(os.Stderr, "no Sage Draw pads found")
	}
	return nil
}
