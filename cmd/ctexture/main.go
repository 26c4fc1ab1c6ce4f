// Command ctexture lists, converts and renders the composite textures of
// one or more archive directories.
//
// Usage:
//
//	ctexture [flags] list
//	ctexture [flags] patches
//	ctexture [flags] text
//	ctexture [flags] binary
//	ctexture [flags] render [NAME...]
//	ctexture [flags] watch [NAME...]
//
// Archives are directories whose top-level subdirectories are namespaces.
// They come from the configuration file and the -archives flag.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/wadtools/ctexture"
)

func main() {
	var (
		configPath = flag.String("config", "", "configuration file (.toml, .yaml or .yml)")
		archives   = flag.String("archives", "", "comma-separated archive directories, after those in the config")
		output     = flag.String("output", "", "output directory (overrides config)")
		palPath    = flag.String("palette", "", "PLAYPAL file (overrides config)")
		forceRGBA  = flag.Bool("rgba", false, "convert patches to RGBA before compositing")
		scaled     = flag.Bool("scaled", false, "also write previews scaled to world size")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] list|patches|text|binary|render|watch [NAME...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *palPath != "" {
		cfg.Palette = *palPath
	}
	cfg.ForceRGBA = cfg.ForceRGBA || *forceRGBA
	cfg.Scaled = cfg.Scaled || *scaled
	if *verbose {
		cfg.LogLevel = "debug"
	}

	level, err := cfg.Level()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	ctexture.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *archives != "" {
		cfg.Archives = append(cfg.Archives, strings.Split(*archives, ",")...)
	}
	if len(cfg.Archives) == 0 {
		log.Fatal("No archives given")
	}

	cmd := flag.Arg(0)
	if cmd == "watch" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := watch(ctx, cfg, flag.Args()[1:])
		stop()
		if err != nil {
			log.Fatalf("watch: %v", err)
		}
		return
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		log.Fatalf("Failed to open archives: %v", err)
	}

	switch cmd {
	case "list":
		err = ws.list(os.Stdout)
	case "patches":
		err = ws.patches(os.Stdout)
	case "text":
		err = ws.text(os.Stdout)
	case "binary":
		err = ws.binary()
	case "render":
		_, err = ws.render(flag.Args()[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}
