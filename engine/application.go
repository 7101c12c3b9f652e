package engine

import (
	"github.com/spaghettifunk/idraw/engine/config"
	"github.com/spaghettifunk/idraw/engine/core"
)

// NewApplication loads the configuration at path (defaults when missing)
// and returns an initialized engine driving g.
func NewApplication(path string, g *Game) (*Engine, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	e, err := New(cfg, g)
	if err != nil {
		return nil, err
	}
	if err := e.Initialize(); err != nil {
		core.LogError("engine initialization failed: %s", err)
		_ = e.Shutdown()
		return nil, err
	}
	return e, nil
}
