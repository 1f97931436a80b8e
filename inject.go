package levelpanel

import (
	"github.com/cloudcopper/levelpanel/adapters/http/controllers"
	"github.com/cloudcopper/levelpanel/domain"
	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/ports"
)

// Inject mounts the panel page and its JSON API on the router.
// The router may be a sub router mounted under any prefix,
// the page only uses relative links.
// The render must have the panel templates loaded.
func Inject(log ports.Logger, router ports.Router, render infra.Render, panel domain.Panel, store ports.Store, storeKey string) *controllers.PanelController {
	c := controllers.NewPanelController(log, render, panel, store, storeKey)
	router.Get("/", c.Index)
	router.Post("/level", c.SetLevel)
	router.Post("/persistence", c.SetPersistence)
	router.Get("/api/state", c.State)
	router.Post("/api/edit", c.APIEdit)
	router.Post("/api/persistence", c.APIPersistence)
	return c
}
