package controllers

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/ports"
)

// keyLister is implemented by stores able to list keys
type keyLister interface {
	Keys() ([]string, error)
}

type AboutPageController struct {
	log    ports.Logger
	render infra.Render
	cfg    *models.Panel
	store  ports.Store
}

func NewAboutPageController(log ports.Logger, render infra.Render, cfg *models.Panel, store ports.Store) *AboutPageController {
	log = log.With(slog.String("entity", "AboutPageController"))
	c := &AboutPageController{
		log:    log,
		render: render,
		cfg:    cfg,
		store:  store,
	}
	return c
}

// Index shows build info, the panel settings, the stored keys and the level scale
func (c *AboutPageController) Index(w http.ResponseWriter, r *http.Request) {
	keys := []string{}
	if s, ok := c.store.(keyLister); ok {
		var err error
		if keys, err = s.Keys(); err != nil {
			c.log.Error("unable to list keys", slog.Any("err", err))
		}
	}

	data := struct {
		BuildInfo *debug.BuildInfo
		Panel     *models.Panel
		Keys      []string
		Levels    []vo.Level
	}{
		BuildInfo: lib.First(debug.ReadBuildInfo()),
		Panel:     c.cfg,
		Keys:      keys,
		Levels:    vo.Levels(),
	}
	c.render.HTML(w, http.StatusOK, "about", data)
}
