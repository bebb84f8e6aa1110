package galaxy

import (
	"fmt"
)

// RendererTag marks that a renderer has been installed into the App.
// Only one renderer may own the scene slot and the frame.
type RendererTag struct {
	Name string
}

// ensureSingleRenderer panics when a different renderer is already installed.
// Installing the same renderer twice is a no-op.
func ensureSingleRenderer(app *App, name string) {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	if tag, ok := resourceOf[RendererTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
		}
		return
	}
	app.addResources(&RendererTag{Name: name})
}
