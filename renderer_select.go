package galaxy

import (
	"fmt"
	"strings"
)

// RendererName identifies a concrete renderer module.
// Keep names aligned with ensureSingleRenderer tags.
type RendererName string

const (
	RendererPointRT  RendererName = "pointrt"
	RendererTerminal RendererName = "terminal"
)

var rendererNames = []RendererName{RendererPointRT, RendererTerminal}

func ParseRendererName(s string) (RendererName, error) {
	name := RendererName(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range rendererNames {
		if name == known {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown renderer %q (want %s or %s)", s, RendererPointRT, RendererTerminal)
}

// RendererOptions are the knobs shared by every renderer.
type RendererOptions struct {
	Width, Height int
	Title         string
	// Debug shows renderer timings where the renderer has them.
	Debug bool
}

// NewRenderer returns the module for name configured with opts.
func NewRenderer(name RendererName, opts RendererOptions) (Module, error) {
	switch name {
	case RendererPointRT:
		return PointRtModule{
			WindowWidth:  opts.Width,
			WindowHeight: opts.Height,
			WindowTitle:  opts.Title,
			DebugMode:    opts.Debug,
		}, nil
	case RendererTerminal:
		return TerminalModule{}, nil
	}
	return nil, fmt.Errorf("unknown renderer %q", name)
}

// UseRenderer installs exactly one renderer module, enforcing exclusivity via
// ensureSingleRenderer.
// Usage:
//
//	app.UseRenderer(RendererTerminal, TerminalModule{})
func (app *App) UseRenderer(name RendererName, mod Module) *App {
	ensureSingleRenderer(app, string(name))
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}
