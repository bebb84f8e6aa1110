package galaxy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gekko3d/galaxy/pointrt/rt/core"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Config is the startup configuration read from -config. Command-line flags
// override it.
type Config struct {
	Renderer   string       `yaml:"renderer"`
	Window     WindowConfig `yaml:"window"`
	Seed       uint64       `yaml:"seed"`
	Debug      bool         `yaml:"debug"`
	PresetPath string       `yaml:"preset_path"`
	Galaxy     PresetData   `yaml:"galaxy"`
}

func DefaultConfig() Config {
	return Config{
		Renderer:   string(RendererPointRT),
		Window:     WindowConfig{Width: 1280, Height: 720, Title: "Galaxy"},
		PresetPath: "galaxy.yaml",
		Galaxy:     presetFromParameters(core.DefaultParameters()),
	}
}

func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field the way startup will use it.
func (c Config) Validate() error {
	if _, err := ParseRendererName(c.Renderer); err != nil {
		return err
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size %dx%d is negative", c.Window.Width, c.Window.Height)
	}
	if _, err := c.Galaxy.Parameters(); err != nil {
		return fmt.Errorf("galaxy: %w", err)
	}
	return nil
}

// Parameters returns the validated galaxy parameters.
func (c Config) Parameters() (core.Parameters, error) {
	return c.Galaxy.Parameters()
}
