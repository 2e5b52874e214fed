package main

import (
	"flag"
	"fmt"
	"io"
	"time"
)

const (
	Port          = 8888
	DefaultWidth  = 256
	DefaultHeight = 256
)

// Config is the process configuration, filled from the command line.
type Config struct {
	Mode          string // desktop, serve or find
	Port          int
	Width         int
	Height        int
	ExportScale   int
	KeepStampTool bool
	Serve         bool // desktop mode: also run the browser bridge
	Advertise     bool
	FindTimeout   time.Duration
	EmojiFont     string // tried before the built-in emoji font paths
	Verbose       bool
}

func parseConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{Mode: "desktop"}

	fs := flag.NewFlagSet("sagedraw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Port, "port", Port, "port of the browser bridge")
	fs.IntVar(&cfg.Width, "width", DefaultWidth, "canvas width in pixels")
	fs.IntVar(&cfg.Height, "height", DefaultHeight, "canvas height in pixels")
	fs.IntVar(&cfg.ExportScale, "export-scale", 4, "upscale factor for PNG export")
	fs.BoolVar(&cfg.KeepStampTool, "keep-sticker", false, "keep the sticker tool selected after placing a sticker")
	fs.BoolVar(&cfg.Serve, "serve", false, "desktop mode: also serve the browser pad")
	fs.BoolVar(&cfg.Advertise, "mdns", true, "advertise the browser pad over mDNS")
	fs.DurationVar(&cfg.FindTimeout, "timeout", 3*time.Second, "find mode: how long to listen for pads")
	fs.StringVar(&cfg.EmojiFont, "emoji-font", "", "emoji font file used to draw stickers")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: sagedraw [flags] [desktop|serve|find]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Mode = fs.Arg(0)
	default:
		return cfg, fmt.Errorf("too many arguments: %v", fs.Args())
	}
	switch cfg.Mode {
	case "desktop", "serve", "find":
	default:
		return cfg, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("canvas size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ExportScale <= 0 {
		return cfg, fmt.Errorf("export scale must be positive, got %d", cfg.ExportScale)
	}
	return cfg, nil
}
