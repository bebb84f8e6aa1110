package galaxy

type TextComponent struct {
	Text     string
	Position [2]float32 // overlay units, top-left
	Scale    float32
	Color    [4]float32
}

// Overlay collects the text drawn on top of the galaxy this frame. Modules lay
// text out on a character grid; the renderer decides how big a cell is.
type Overlay struct {
	CharWidth  float32
	LineHeight float32

	items []TextComponent
}

// ensureOverlay returns the Overlay resource, installing it and its per-frame
// reset on first use.
func ensureOverlay(app *App) *Overlay {
	if o, ok := resourceOf[Overlay](app); ok {
		return o
	}
	o := &Overlay{CharWidth: 1, LineHeight: 1}
	app.addResources(o)
	app.UseSystem(System(overlayClearSystem).InStage(Prelude).RunAlways())
	return o
}

func overlayClearSystem(o *Overlay) {
	o.Clear()
}

func (o *Overlay) Clear() {
	o.items = o.items[:0]
}

// Print places text at a character cell.
func (o *Overlay) Print(col, row int, text string, color [4]float32) {
	o.items = append(o.items, TextComponent{
		Text:     text,
		Position: o.cellPosition(col, row),
		Scale:    1,
		Color:    color,
	})
}

func (o *Overlay) Items() []TextComponent {
	return o.items
}

func (o *Overlay) cellPosition(col, row int) [2]float32 {
	return [2]float32{float32(col) * o.CharWidth, float32(row) * o.LineHeight}
}

// cellAt maps an overlay position back to a character cell.
func (o *Overlay) cellAt(x, y float64) (col, row int) {
	cw, lh := float64(o.CharWidth), float64(o.LineHeight)
	if cw <= 0 {
		cw = 1
	}
	if lh <= 0 {
		lh = 1
	}
	return int(x / cw), int(y / lh)
}
