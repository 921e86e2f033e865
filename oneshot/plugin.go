package oneshot

import (
	"github.com/lixenwraith/scenery/engine"
	"github.com/lixenwraith/scenery/status"
)

// Plugin creates the registry, publishes it as a world resource and seals it with the app
type Plugin struct {
	// Metrics overrides the app's metrics facade when set
	Metrics *status.Metrics
}

// Build installs the registry; adding the plugin twice keeps the first registry
func (p Plugin) Build(app *engine.App) {
	if _, ok := engine.GetResource[*Registry](app.World().Resources); ok {
		return
	}

	m := p.Metrics
	if m == nil {
		m = app.Metrics()
	}

	reg := New(m)
	engine.AddResource(app.World().Resources, reg)
	app.OnSeal(reg.Seal)
}

// FromWorld returns the registry published by Plugin
// Panics if the plugin was not added
func FromWorld(w *engine.World) *Registry {
	return engine.MustGetResource[*Registry](w.Resources)
}
