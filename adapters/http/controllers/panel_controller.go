package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cloudcopper/levelpanel/adapters/http/viewmodels"
	"github.com/cloudcopper/levelpanel/domain"
	"github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/lib/types"
	"github.com/cloudcopper/levelpanel/ports"
	"github.com/goccy/go-json"
)

// recordSizer is implemented by stores able to tell value size
type recordSizer interface {
	Size(key string) int64
}

type PanelController struct {
	log      ports.Logger
	render   infra.Render
	panel    domain.Panel
	store    ports.Store
	storeKey string
}

func NewPanelController(log ports.Logger, render infra.Render, panel domain.Panel, store ports.Store, storeKey string) *PanelController {
	log = log.With(slog.String("entity", "PanelController"))
	c := &PanelController{
		log:      log,
		render:   render,
		panel:    panel,
		store:    store,
		storeKey: storeKey,
	}
	return c
}

// Index renders the panel
func (c *PanelController) Index(w http.ResponseWriter, r *http.Request) {
	if !c.panel.IsActive() {
		c.NotFound(w, r)
		return
	}

	filter, hidden := helperFilter(r)
	data := viewmodels.NewPanel(c.panel.Snapshot(), filter, hidden)
	data.StoreKey = c.storeKey
	if s, ok := c.store.(recordSizer); ok && data.Persist {
		data.RecordSize = types.Size(s.Size(c.storeKey))
	}
	c.render.HTML(w, http.StatusOK, "panel", data)
}

// SetLevel handles the level selector form
func (c *PanelController) SetLevel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.renderBadRequest(w, err)
		return
	}
	kind, ok := vo.ParseControlKind(r.PostForm.Get("control"))
	if !ok {
		c.renderBadRequest(w, errors.ErrUnknownControl)
		return
	}
	level, err := vo.ParseLevel(r.PostForm.Get("level"))
	if err != nil {
		c.renderBadRequest(w, err)
		return
	}

	if !c.edit(w, r, kind, r.PostForm.Get("tag"), level) {
		return
	}
	filter, hidden := helperFilter(r)
	http.Redirect(w, r, helperPanelURL(filter, hidden), http.StatusSeeOther)
}

// SetPersistence handles the "save locally" checkbox form
func (c *PanelController) SetPersistence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.renderBadRequest(w, err)
		return
	}
	enabled := r.PostForm.Get("enabled") == "on"
	if v, err := strconv.ParseBool(r.PostForm.Get("enabled")); err == nil {
		enabled = v
	}
	if err := c.panel.SetPersistence(enabled); err != nil {
		c.renderError(w, r, err)
		return
	}
	filter, hidden := helperFilter(r)
	http.Redirect(w, r, helperPanelURL(filter, hidden), http.StatusSeeOther)
}

// State returns panel state as JSON
func (c *PanelController) State(w http.ResponseWriter, r *http.Request) {
	if !c.panel.IsActive() {
		c.NotFound(w, r)
		return
	}
	c.render.JSON(w, http.StatusOK, viewmodels.NewState(c.panel.Snapshot()))
}

type apiEditRequest struct {
	Control string `json:"control"`
	Tag     string `json:"tag"`
	Level   *int   `json:"level"`
}

// APIEdit applies JSON encoded edit and returns new state
func (c *PanelController) APIEdit(w http.ResponseWriter, r *http.Request) {
	var req apiEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.renderBadRequest(w, err)
		return
	}
	kind, ok := vo.ParseControlKind(req.Control)
	if !ok {
		c.renderBadRequest(w, errors.ErrUnknownControl)
		return
	}
	if req.Level == nil {
		c.renderBadRequest(w, errors.ErrMissingLevel)
		return
	}
	level := vo.Level(*req.Level)
	if !level.Valid() {
		c.renderBadRequest(w, errors.ErrLevelOutOfRange)
		return
	}
	if !c.edit(w, r, kind, req.Tag, level) {
		return
	}
	c.State(w, r)
}

type apiPersistenceRequest struct {
	Enabled *bool `json:"enabled"`
}

// APIPersistence switches persistence and returns new state
func (c *PanelController) APIPersistence(w http.ResponseWriter, r *http.Request) {
	var req apiPersistenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.renderBadRequest(w, err)
		return
	}
	if req.Enabled == nil {
		c.renderBadRequest(w, errors.ErrMissingEnabled)
		return
	}
	if err := c.panel.SetPersistence(*req.Enabled); err != nil {
		c.renderError(w, r, err)
		return
	}
	c.State(w, r)
}

// NotFound is a custom 404 handler
func (c *PanelController) NotFound(w http.ResponseWriter, r *http.Request) {
	c.render.HTML(w, http.StatusNotFound, "errors/404", nil)
}

func (c *PanelController) edit(w http.ResponseWriter, r *http.Request, kind vo.ControlKind, tag string, level vo.Level) bool {
	err := c.panel.Edit(kind, tag, level)
	if err != nil {
		c.renderError(w, r, err)
		return false
	}
	return true
}

func (c *PanelController) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errors.ErrPanelInactive):
		c.NotFound(w, r)
	case errors.Is(err, errors.ErrLevelOutOfRange), errors.Is(err, errors.ErrUnknownControl):
		c.renderBadRequest(w, err)
	default:
		c.log.Error("unable to apply edit", slog.Any("err", err))
		c.render.Text(w, http.StatusInternalServerError, err.Error())
	}
}

func (c *PanelController) renderBadRequest(w http.ResponseWriter, err error) {
	c.log.Warn("bad request", slog.Any("err", err))
	c.render.Text(w, http.StatusBadRequest, err.Error())
}
