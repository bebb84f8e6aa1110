package galaxy

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the single glfw window shared by the window renderer and input.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	scrollY float64
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // wgpu owns the surface, no GL context
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	s := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		s.scrollY += yoff
	})
	return s
}

// takeScroll returns the wheel movement since the last call.
func (s *WindowState) takeScroll() float64 {
	y := s.scrollY
	s.scrollY = 0
	return y
}

func (s *WindowState) destroy() {
	if s.windowGlfw == nil {
		return
	}
	s.windowGlfw.Destroy()
	s.windowGlfw = nil
	glfw.Terminate()
}

// ensureWindowResource guarantees a single shared WindowState resource exists
// and returns it.
func ensureWindowResource(app *App, width, height int, title string) *WindowState {
	if ws, ok := resourceOf[WindowState](app); ok {
		return ws
	}
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Galaxy"
	}
	ws := createWindowState(width, height, title)
	app.addResources(ws)
	app.Logger().Infof("Created shared window (%dx%d) '%s'", width, height, title)
	return ws
}
