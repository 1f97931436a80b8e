package levelpanel

import (
	"log/slog"

	"github.com/cloudcopper/levelpanel/adapters/registry"
	"github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/infra/config"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/ports"
)

func startup(log ports.Logger, cfg *config.Config, bus ports.EventBus, reg *registry.SlogRegistry, panel *PanelService, storeDir string) error {
	//
	// Seed host registry
	//
	reg.SetBaseLevel(cfg.Host.Base)
	for tag, level := range cfg.Host.Tags {
		log.Debug("register tag", slog.String("tag", tag), slog.Any("level", level))
		reg.Register(tag, level)
	}
	reg.SetGlobalLevel(cfg.Host.Global)

	//
	// Replay persisted record
	//
	if !panel.Activate() {
		log.Error("unable to activate panel")
		return lib.NewErrorCode(errors.ErrPanelInactive, errors.RetActivatePanelError)
	}

	// Emit event to watch the record directory
	if cfg.Panel.Watch && cfg.Panel.Store == models.StoreFile {
		bus.Pub(ports.TopicWatchDir, ports.Event{storeDir})
	}

	return nil
}
