package galaxy

import (
	"fmt"
	"math"
	"strings"

	"github.com/gekko3d/galaxy/pointrt/rt/core"
)

// PanelModule spawns one control per tunable parameter and edits
// GalaxySettings.Params through them. A gesture (mouse drag or held arrow key)
// changes the working copy continuously and applies it once, on release.
type PanelModule struct {
	Hidden bool
	// Top and Left place the panel on the overlay grid.
	Top, Left int
}

// UiSlider edits one numeric parameter inside its domain.
type UiSlider struct {
	Domain core.Domain
	Row    int
}

type ColorSlot int

const (
	InsideColor ColorSlot = iota
	OutsideColor
)

// UiColorControl edits one color, one channel at a time.
type UiColorControl struct {
	Slot    ColorSlot
	Label   string
	Channel int // 0 red, 1 green, 2 blue
	Row     int
}

type PanelState struct {
	Visible   bool
	Focus     int
	Rows      int
	Top, Left int

	dragging   bool
	keyEditing bool
	held       float64
	sinceStep  float64
}

const (
	panelLabelWidth  = 16
	panelBarWidth    = 20
	panelBarCol      = 2 + panelLabelWidth + 2 // first cell inside '['
	panelRepeatDelay = 0.4
	panelRepeatEvery = 0.05
	panelColorStep   = 1.0 / 255
)

var (
	panelTextColor  = [4]float32{0.85, 0.85, 0.85, 1}
	panelFocusColor = [4]float32{1, 1, 0.3, 1}
	panelHintColor  = [4]float32{0.55, 0.55, 0.6, 1}
)

func (m PanelModule) Install(app *App, cmd *Commands) {
	top := m.Top
	if top == 0 {
		top = 5
	}
	panel := &PanelState{Visible: !m.Hidden, Top: top, Left: m.Left}

	for _, d := range core.Domains {
		cmd.AddEntity(UiSlider{Domain: d, Row: panel.Rows})
		panel.Rows++
	}
	cmd.AddEntity(UiColorControl{Slot: InsideColor, Label: "insideColor", Row: panel.Rows})
	panel.Rows++
	cmd.AddEntity(UiColorControl{Slot: OutsideColor, Label: "outsideColor", Row: panel.Rows})
	panel.Rows++

	cmd.AddResources(panel)
	ensureOverlay(app)
	ensureInput(app)
	ensureTime(app)

	app.UseSystem(
		System(panelInputSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(panelRenderSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

func panelInputSystem(cmd *Commands, input *Input, panel *PanelState, settings *GalaxySettings, overlay *Overlay, t *Time) {
	if input.JustPressed[KeyH] {
		panel.Visible = !panel.Visible
		if !panel.Visible {
			panel.endGesture(settings)
		}
	}
	if !panel.Visible {
		return
	}

	if input.JustPressed[KeyUp] && panel.Focus > 0 {
		panel.Focus--
	}
	if input.JustPressed[KeyDown] && panel.Focus < panel.Rows-1 {
		panel.Focus++
	}
	if input.JustPressed[KeyTab] {
		withColorControl(cmd, panel.Focus, func(cc *UiColorControl) {
			cc.Channel = (cc.Channel + 1) % 3
		})
	}

	panel.handleKeys(cmd, input, settings, t.Seconds())
	panel.handleMouse(cmd, input, settings, overlay)
}

func (panel *PanelState) handleKeys(cmd *Commands, input *Input, settings *GalaxySettings, dt float64) {
	dir := 0.0
	if input.Pressed[KeyRight] {
		dir++
	}
	if input.Pressed[KeyLeft] {
		dir--
	}
	mult := 1.0
	if input.Pressed[KeyShift] {
		mult = 10
	}

	switch {
	case input.JustPressed[KeyRight] || input.JustPressed[KeyLeft]:
		panel.keyEditing = true
		panel.held = 0
		panel.sinceStep = 0
		if dir != 0 {
			stepControl(cmd, panel.Focus, &settings.Params, dir*mult)
		}
	case panel.keyEditing && dir != 0:
		panel.held += dt
		panel.sinceStep += dt
		if panel.held >= panelRepeatDelay && panel.sinceStep >= panelRepeatEvery {
			panel.sinceStep = 0
			stepControl(cmd, panel.Focus, &settings.Params, dir*mult)
		}
	}

	if panel.keyEditing && !input.Pressed[KeyRight] && !input.Pressed[KeyLeft] {
		panel.keyEditing = false
		settings.Apply(settings.Params)
	}
}

func (panel *PanelState) handleMouse(cmd *Commands, input *Input, settings *GalaxySettings, overlay *Overlay) {
	if input.JustPressed[MouseButtonLeft] {
		col, row := overlay.cellAt(input.MouseX, input.MouseY)
		row -= panel.Top + 1
		col -= panel.Left
		if row >= 0 && row < panel.Rows && col >= panelBarCol-1 && col <= panelBarCol+panelBarWidth {
			panel.Focus = row
			panel.dragging = true
		}
	}

	if panel.dragging && input.Pressed[MouseButtonLeft] {
		x0 := float64(panel.Left+panelBarCol) * float64(overlay.CharWidth)
		w := float64(panelBarWidth) * float64(overlay.CharWidth)
		frac := (input.MouseX - x0) / w
		setControlFraction(cmd, panel.Focus, &settings.Params, math.Max(0, math.Min(1, frac)))
	}

	if panel.dragging && !input.Pressed[MouseButtonLeft] {
		panel.dragging = false
		settings.Apply(settings.Params)
	}
}

// endGesture commits an edit interrupted by hiding the panel.
func (panel *PanelState) endGesture(settings *GalaxySettings) {
	if panel.dragging || panel.keyEditing {
		panel.dragging = false
		panel.keyEditing = false
		settings.Apply(settings.Params)
	}
}

// Editing reports whether a gesture is in progress.
func (panel *PanelState) Editing() bool {
	return panel.dragging || panel.keyEditing
}

func withSlider(cmd *Commands, row int, fn func(*UiSlider)) {
	MakeQuery1[UiSlider](cmd).Map(func(_ EntityId, s *UiSlider) bool {
		if s.Row == row {
			fn(s)
			return false
		}
		return true
	})
}

func withColorControl(cmd *Commands, row int, fn func(*UiColorControl)) {
	MakeQuery1[UiColorControl](cmd).Map(func(_ EntityId, cc *UiColorControl) bool {
		if cc.Row == row {
			fn(cc)
			return false
		}
		return true
	})
}

func stepControl(cmd *Commands, row int, p *core.Parameters, steps float64) {
	withSlider(cmd, row, func(s *UiSlider) {
		d := s.Domain
		p.Set(d.Field, snapToStep(p.Get(d.Field)+steps*d.Step, d))
	})
	withColorControl(cmd, row, func(cc *UiColorControl) {
		ch := colorChannel(colorSlot(p, cc.Slot), cc.Channel)
		*ch = math.Max(0, math.Min(1, *ch+steps*panelColorStep))
	})
}

func setControlFraction(cmd *Commands, row int, p *core.Parameters, frac float64) {
	withSlider(cmd, row, func(s *UiSlider) {
		d := s.Domain
		p.Set(d.Field, snapToStep(d.Min+frac*(d.Max-d.Min), d))
	})
	withColorControl(cmd, row, func(cc *UiColorControl) {
		*colorChannel(colorSlot(p, cc.Slot), cc.Channel) = frac
	})
}

// snapToStep rounds v to a multiple of the domain step, then clamps.
func snapToStep(v float64, d core.Domain) float64 {
	if d.Step > 0 {
		v = math.Round(v/d.Step) * d.Step
	}
	return d.Clamp(v)
}

func colorSlot(p *core.Parameters, slot ColorSlot) *core.Color {
	if slot == OutsideColor {
		return &p.OutsideColor
	}
	return &p.InsideColor
}

func colorChannel(c *core.Color, ch int) *float64 {
	switch ch {
	case 1:
		return &c.G
	case 2:
		return &c.B
	}
	return &c.R
}

func panelRenderSystem(cmd *Commands, panel *PanelState, settings *GalaxySettings, overlay *Overlay) {
	if !panel.Visible {
		overlay.Print(panel.Left, panel.Top, "[H] show controls", panelHintColor)
		return
	}
	overlay.Print(panel.Left, panel.Top, "[H] hide  up/down select  left/right adjust  Tab channel", panelHintColor)

	p := &settings.Params
	MakeQuery1[UiSlider](cmd).Map(func(_ EntityId, s *UiSlider) bool {
		d := s.Domain
		v := p.Get(d.Field)
		line := panelLine(s.Row == panel.Focus, d.Name, (v-d.Min)/(d.Max-d.Min), formatValue(v, d))
		overlay.Print(panel.Left, panel.Top+1+s.Row, line, panel.rowColor(s.Row))
		return true
	})
	MakeQuery1[UiColorControl](cmd).Map(func(_ EntityId, cc *UiColorControl) bool {
		c := colorSlot(p, cc.Slot)
		value := fmt.Sprintf("%s %c", c.Hex(), "RGB"[cc.Channel])
		line := panelLine(cc.Row == panel.Focus, cc.Label, *colorChannel(c, cc.Channel), value)
		row := panel.Top + 1 + cc.Row
		overlay.Print(panel.Left, row, line, panel.rowColor(cc.Row))
		overlay.Print(panel.Left+len(line)+1, row, "###", [4]float32{float32(c.R), float32(c.G), float32(c.B), 1})
		return true
	})
}

func (panel *PanelState) rowColor(row int) [4]float32 {
	if row == panel.Focus {
		return panelFocusColor
	}
	return panelTextColor
}

func panelLine(focused bool, label string, frac float64, value string) string {
	cursor := " "
	if focused {
		cursor = ">"
	}
	return fmt.Sprintf("%s %-*s %s %s", cursor, panelLabelWidth, label, sliderBar(frac, panelBarWidth), value)
}

// sliderBar renders frac in [0,1] as an ASCII bar of width cells between brackets.
func sliderBar(frac float64, width int) string {
	if math.IsNaN(frac) {
		frac = 0
	}
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func formatValue(v float64, d core.Domain) string {
	if d.Integer {
		return fmt.Sprintf("%d", int(v))
	}
	decimals := 0
	if d.Step > 0 && d.Step < 1 {
		decimals = int(math.Ceil(-math.Log10(d.Step) - 1e-9))
	}
	return fmt.Sprintf("%.*f", decimals, v)
}
