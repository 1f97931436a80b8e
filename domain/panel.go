package domain

import (
	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
)

// Panel is the level control panel as seen by adapters
type Panel interface {
	IsActive() bool
	Snapshot() models.Snapshot
	Edit(kind vo.ControlKind, tag models.Tag, level vo.Level) error
	SetPersistence(enabled bool) error
}
