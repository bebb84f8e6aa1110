package galaxy

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyD
	KeyH
	KeyQ
	KeyR
	KeyS
	KeyW
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF5
	KeyF9
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle

	inputSlots
)

type InputModule struct{}

// Input is the renderer-independent input snapshot for the current frame.
// Renderers fill it in PreUpdate; mouse coordinates are in overlay units
// (pixels for the window, cells for the terminal).
type Input struct {
	Pressed [inputSlots]bool

	JustPressed  [inputSlots]bool
	JustReleased [inputSlots]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	ScrollY                  float64

	WindowWidth, WindowHeight int
	// PixelAspect is the height/width ratio of one input unit. Zero means square.
	PixelAspect float64
	Resized     bool

	hasMouse bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	ensureInput(app)
}

// ensureInput returns the Input resource, installing an idle one if missing.
func ensureInput(app *App) *Input {
	if input, ok := resourceOf[Input](app); ok {
		return input
	}
	input := &Input{}
	app.addResources(input)
	return input
}

// beginFrame drops the edge flags and per-frame deltas of the previous frame.
func (input *Input) beginFrame() {
	input.JustPressed = [inputSlots]bool{}
	input.JustReleased = [inputSlots]bool{}
	input.MouseDeltaX = 0
	input.MouseDeltaY = 0
	input.ScrollY = 0
	input.Resized = false
}

func (input *Input) setKey(key int, down bool) {
	if down {
		if !input.Pressed[key] {
			input.JustPressed[key] = true
		}
		input.Pressed[key] = true
		return
	}
	if input.Pressed[key] {
		input.JustReleased[key] = true
	}
	input.Pressed[key] = false
}

// moveMouse records the pointer position. The first sample yields no delta.
func (input *Input) moveMouse(x, y float64) {
	if input.hasMouse {
		input.MouseDeltaX += x - input.MouseX
		input.MouseDeltaY += y - input.MouseY
	}
	input.MouseX = x
	input.MouseY = y
	input.hasMouse = true
}

func (input *Input) resize(width, height int) {
	if width == input.WindowWidth && height == input.WindowHeight {
		return
	}
	input.WindowWidth = width
	input.WindowHeight = height
	input.Resized = true
}

// glfwInputSystem polls the shared window. Installed by the pointrt renderer.
func glfwInputSystem(s *WindowState, input *Input, quit *Quit) {
	input.beginFrame()

	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		action := s.windowGlfw.GetKey(glfwKey)
		if glfw.Press == action {
			input.setKey(key, true)
		} else if glfw.Release == action {
			input.setKey(key, false)
		}
	}

	for btn, glfwBtn := range buttonToGlfw {
		input.setKey(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	fbW, fbH := s.windowGlfw.GetFramebufferSize()
	input.resize(fbW, fbH)

	// Cursor positions are in screen coordinates; overlay text is laid out in
	// framebuffer pixels.
	mx, my := s.windowGlfw.GetCursorPos()
	if winW, _ := s.windowGlfw.GetSize(); winW > 0 && fbW > 0 {
		ratio := float64(fbW) / float64(winW)
		mx, my = mx*ratio, my*ratio
	}
	input.moveMouse(mx, my)

	input.ScrollY = s.takeScroll()

	if s.windowGlfw.ShouldClose() {
		quit.Request("window closed")
	}
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyD:       glfw.KeyD,
	KeyH:       glfw.KeyH,
	KeyQ:       glfw.KeyQ,
	KeyR:       glfw.KeyR,
	KeyS:       glfw.KeyS,
	KeyW:       glfw.KeyW,
	KeyEnter:   glfw.KeyEnter,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyRight:   glfw.KeyRight,
	KeyLeft:    glfw.KeyLeft,
	KeyDown:    glfw.KeyDown,
	KeyUp:      glfw.KeyUp,
	KeyF5:      glfw.KeyF5,
	KeyF9:      glfw.KeyF9,
	KeyMinus:   glfw.KeyMinus,
	KeyEqual:   glfw.KeyEqual,
	KeyKPPlus:  glfw.KeyKPAdd,
	KeyKPMinus: glfw.KeyKPSubtract,
	KeyShift:   glfw.KeyLeftShift,
}
