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

// PresetData is the on-disk form of core.Parameters. Missing keys keep their
// defaults; unknown keys are rejected.
type PresetData struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Radius          float64 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float64 `yaml:"spin"`
	Randomness      float64 `yaml:"randomness"`
	RandomnessPower float64 `yaml:"randomness_power"`
	InsideColor     string  `yaml:"inside_color"`
	OutsideColor    string  `yaml:"outside_color"`
}

func presetFromParameters(p core.Parameters) PresetData {
	return PresetData{
		Count:           p.Count,
		Size:            p.Size,
		Radius:          p.Radius,
		Branches:        p.Branches,
		Spin:            p.Spin,
		Randomness:      p.Randomness,
		RandomnessPower: p.RandomnessPower,
		InsideColor:     p.InsideColor.Hex(),
		OutsideColor:    p.OutsideColor.Hex(),
	}
}

// Parameters converts and validates the preset.
func (d PresetData) Parameters() (core.Parameters, error) {
	p := core.Parameters{
		Count:           d.Count,
		Size:            d.Size,
		Radius:          d.Radius,
		Branches:        d.Branches,
		Spin:            d.Spin,
		Randomness:      d.Randomness,
		RandomnessPower: d.RandomnessPower,
	}
	var err error
	if p.InsideColor, err = core.ParseHex(d.InsideColor); err != nil {
		return core.Parameters{}, fmt.Errorf("inside_color: %w", err)
	}
	if p.OutsideColor, err = core.ParseHex(d.OutsideColor); err != nil {
		return core.Parameters{}, fmt.Errorf("outside_color: %w", err)
	}
	if err := p.Validate(); err != nil {
		return core.Parameters{}, err
	}
	return p, nil
}

// DecodeParameters reads one YAML preset on top of the default parameters.
func DecodeParameters(r io.Reader) (core.Parameters, error) {
	data := presetFromParameters(core.DefaultParameters())
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return core.Parameters{}, err
	}
	return data.Parameters()
}

func LoadParameters(path string) (core.Parameters, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return core.Parameters{}, fmt.Errorf("load preset %s: %w", path, err)
	}
	p, err := DecodeParameters(bytes.NewReader(raw))
	if err != nil {
		return core.Parameters{}, fmt.Errorf("load preset %s: %w", path, err)
	}
	return p, nil
}

func SaveParameters(path string, p core.Parameters) error {
	raw, err := yaml.Marshal(presetFromParameters(p))
	if err != nil {
		return fmt.Errorf("save preset %s: %w", path, err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("save preset %s: %w", path, err)
	}
	return nil
}

// PresetsModule binds F5 (save applied parameters) and F9 (load and apply)
// to one preset file.
type PresetsModule struct {
	Path string
}

type Presets struct {
	Path    string
	LastErr error
}

func (m PresetsModule) Install(app *App, cmd *Commands) {
	path := m.Path
	if path == "" {
		path = "galaxy.yaml"
	}
	cmd.AddResources(&Presets{Path: path})
	ensureInput(app)

	app.UseSystem(
		System(presetsSystem).
			InStage(Update).
			RunAlways(),
	)
}

func presetsSystem(cmd *Commands, input *Input, presets *Presets, settings *GalaxySettings) {
	log := cmd.Logger()

	if input.JustPressed[KeyF5] {
		presets.LastErr = SaveParameters(presets.Path, settings.Applied())
		if presets.LastErr != nil {
			log.Errorf("%v", presets.LastErr)
		} else {
			log.Infof("Saved parameters to %s", presets.Path)
		}
	}

	if input.JustPressed[KeyF9] {
		p, err := LoadParameters(presets.Path)
		presets.LastErr = err
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		settings.Apply(p)
		log.Infof("Loaded parameters from %s", presets.Path)
	}
}
