package galaxy

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/galaxy/pointrt/rt/core"
)

// TerminalModule previews the galaxy in a terminal with tcell. Buffers stay on
// the CPU; every particle is projected into a character cell.
type TerminalModule struct {
	// Screen replaces the real terminal, mainly for tests.
	Screen    tcell.Screen
	FrameRate int
}

// keyHoldTimeout releases a key when the terminal stops repeating it.
// Terminals report presses only.
const keyHoldTimeout = 500 * time.Millisecond

type TerminalState struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	raster termRaster

	lastSeen   map[int]time.Time
	frameStart time.Time
	frameTime  time.Duration
	now        func() time.Time
}

func (mod TerminalModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererTerminal))

	screen := mod.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			panic(err)
		}
	}
	if err := screen.Init(); err != nil {
		panic(err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	fps := mod.FrameRate
	if fps <= 0 {
		fps = 30
	}
	state := &TerminalState{
		screen:    screen,
		events:    make(chan tcell.Event, 100),
		done:      make(chan struct{}),
		lastSeen:  make(map[int]time.Time),
		frameTime: time.Second / time.Duration(fps),
		now:       time.Now,
	}
	state.frameStart = state.now()
	cmd.AddResources(state)
	go state.pollEvents()

	ensureGalaxyState(app)
	camera := ensureOrbitCamera(app)
	input := ensureInput(app)
	overlay := ensureOverlay(app)

	// Cells are about twice as tall as wide.
	cols, rows := screen.Size()
	input.PixelAspect = 2
	input.resize(cols, rows)
	camera.SetViewport(cols, rows*2)
	overlay.CharWidth, overlay.LineHeight = 1, 1

	app.UseSystem(
		System(terminalInputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(terminalRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	app.UseSystem(
		System(terminalPaceSystem).
			InStage(Finale).
			RunAlways(),
	)
	app.OnShutdown(terminalShutdownSystem)
}

func (s *TerminalState) pollEvents() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

func terminalInputSystem(input *Input, quit *Quit, state *TerminalState) {
	input.beginFrame()
	now := state.now()

	for drained := false; !drained; {
		select {
		case ev := <-state.events:
			state.handleEvent(ev, input, quit, now)
		default:
			drained = true
		}
	}
	state.releaseStale(input, now)
}

func (s *TerminalState) handleEvent(ev tcell.Event, input *Input, quit *Quit, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			quit.Request("escape pressed")
			return
		case tcell.KeyRune:
			if ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0 {
				quit.Request("escape pressed")
				return
			}
			if ev.Rune() == 'q' {
				quit.Request("q pressed")
				return
			}
		}
		key, ok := terminalKey(ev)
		if !ok {
			return
		}
		s.press(input, key, now)
		if ev.Modifiers()&tcell.ModShift != 0 || (ev.Key() == tcell.KeyRune && unicode.IsUpper(ev.Rune())) {
			s.press(input, KeyShift, now)
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		input.moveMouse(float64(x), float64(y))
		btns := ev.Buttons()
		input.setKey(MouseButtonLeft, btns&tcell.Button1 != 0)
		input.setKey(MouseButtonRight, btns&tcell.Button2 != 0)
		input.setKey(MouseButtonMiddle, btns&tcell.Button3 != 0)
		if btns&tcell.WheelUp != 0 {
			input.ScrollY++
		}
		if btns&tcell.WheelDown != 0 {
			input.ScrollY--
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		input.resize(w, h)
		s.screen.Sync()
	}
}

func (s *TerminalState) press(input *Input, key int, now time.Time) {
	input.setKey(key, true)
	s.lastSeen[key] = now
}

// releaseStale ends key presses the terminal stopped repeating.
func (s *TerminalState) releaseStale(input *Input, now time.Time) {
	for key, seen := range s.lastSeen {
		if now.Sub(seen) > keyHoldTimeout {
			input.setKey(key, false)
			delete(s.lastSeen, key)
		}
	}
}

var runeToKey = map[rune]int{
	'a': KeyA,
	'd': KeyD,
	'h': KeyH,
	'r': KeyR,
	's': KeyS,
	'w': KeyW,
	'-': KeyMinus,
	'=': KeyEqual,
	'+': KeyEqual,
}

var tcellToKey = map[tcell.Key]int{
	tcell.KeyEnter: KeyEnter,
	tcell.KeyTab:   KeyTab,
	tcell.KeyRight: KeyRight,
	tcell.KeyLeft:  KeyLeft,
	tcell.KeyDown:  KeyDown,
	tcell.KeyUp:    KeyUp,
	tcell.KeyF5:    KeyF5,
	tcell.KeyF9:    KeyF9,
}

func terminalKey(ev *tcell.EventKey) (int, bool) {
	if ev.Key() == tcell.KeyRune {
		key, ok := runeToKey[unicode.ToLower(ev.Rune())]
		return key, ok
	}
	key, ok := tcellToKey[ev.Key()]
	return key, ok
}

func terminalRenderSystem(state *TerminalState, camera *core.OrbitCamera, galaxy *GalaxyState, overlay *Overlay) {
	screen := state.screen
	cols, rows := screen.Size()
	state.raster.reset(cols, rows)
	if inst := galaxy.Current(); inst != nil {
		state.raster.rasterize(inst.Buffer, camera.ViewProjection())
	}

	screen.Clear()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := state.raster.at(col, row)
			if cell.Hits == 0 {
				continue
			}
			screen.SetContent(col, row, cell.glyph(), nil, tcell.StyleDefault.Foreground(cell.color()))
		}
	}

	for _, item := range overlay.Items() {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
			channel8(item.Color[0]), channel8(item.Color[1]), channel8(item.Color[2])))
		col, row := overlay.cellAt(float64(item.Position[0]), float64(item.Position[1]))
		for i, ch := range []rune(item.Text) {
			if col+i >= cols {
				break
			}
			screen.SetContent(col+i, row, ch, nil, style)
		}
	}
	screen.Show()
}

// terminalPaceSystem caps the frame rate; the window renderer is paced by vsync.
func terminalPaceSystem(state *TerminalState) {
	if elapsed := state.now().Sub(state.frameStart); elapsed < state.frameTime {
		time.Sleep(state.frameTime - elapsed)
	}
	state.frameStart = state.now()
}

func terminalShutdownSystem(state *TerminalState, galaxy *GalaxyState) {
	galaxy.Scene.Clear()
	close(state.done)
	state.screen.Fini()
}
