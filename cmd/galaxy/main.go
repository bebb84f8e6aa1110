// Command galaxy renders a procedural spiral galaxy in a window or a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gekko3d/galaxy"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "galaxy:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("galaxy", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	renderer := fs.String("renderer", "", "renderer: pointrt or terminal")
	preset := fs.String("preset", "", "galaxy preset to load at startup, also the F5/F9 file")
	seed := fs.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	width := fs.Int("width", 0, "window width")
	height := fs.Int("height", 0, "window height")
	debug := fs.Bool("debug", false, "debug logging and renderer timings")
	logPath := fs.String("log", "galaxy.log", "log file used by the terminal renderer")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := galaxy.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = galaxy.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			cfg.Renderer = *renderer
		case "seed":
			cfg.Seed = *seed
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "debug":
			cfg.Debug = *debug
		case "preset":
			cfg.PresetPath = *preset
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, err := cfg.Parameters()
	if err != nil {
		return err
	}
	if *preset != "" {
		if params, err = galaxy.LoadParameters(*preset); err != nil {
			return err
		}
	}

	name, err := galaxy.ParseRendererName(cfg.Renderer)
	if err != nil {
		return err
	}
	mod, err := galaxy.NewRenderer(name, galaxy.RendererOptions{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		Debug:  cfg.Debug,
	})
	if err != nil {
		return err
	}

	var logOut io.Writer
	if name == galaxy.RendererTerminal {
		f, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	app := galaxy.NewApp()
	app.UseModules(
		galaxy.LoggingModule{Prefix: "galaxy", Debug: cfg.Debug, Out: logOut},
		galaxy.TimeModule{},
		galaxy.InputModule{},
		galaxy.GalaxyModule{Params: params, Seed: cfg.Seed},
		galaxy.OrbitControlsModule{},
		galaxy.StatsModule{},
		galaxy.PanelModule{},
		galaxy.PresetsModule{Path: cfg.PresetPath},
	)
	app.UseRenderer(name, mod)
	app.Run()
	return nil
}
