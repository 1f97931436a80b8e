package levelpanel

import (
	"log/slog"

	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/ports"
)

// FallbackGlobalLevel is pushed as host global level
// when the ALL control is set to vo.LevelDefault,
// as the sentinel is not a verbosity the host can use.
const FallbackGlobalLevel = vo.LevelInfo

// SyncEngine keeps ALL, GLOBAL and per tag levels consistent.
// It does not own the ControlState, every operation gets it from the caller.
type SyncEngine struct {
	log      ports.Logger
	registry ports.Registry
}

func NewSyncEngine(log ports.Logger, registry ports.Registry) *SyncEngine {
	lib.Assert(registry != nil, "sync engine requires host registry")
	log = log.With(slog.String("entity", "SyncEngine"))
	e := &SyncEngine{
		log:      log,
		registry: registry,
	}
	return e
}

// SetGlobal pushes level as host global default.
// Per tag levels are not touched.
func (e *SyncEngine) SetGlobal(state *models.ControlState, level vo.Level) {
	e.log.Debug("set global", slog.Any("level", level))
	e.registry.SetGlobalLevel(level)
	state.Global = level
}

// SetTag pushes level of the single tag.
// The tag unknown to the registry is ignored and false returned.
func (e *SyncEngine) SetTag(state *models.ControlState, tag models.Tag, level vo.Level) bool {
	if _, ok := e.registry.ListTagsWithLevels()[tag]; !ok {
		e.log.Debug("ignore unknown tag", slog.String("tag", tag), slog.Any("level", level))
		return false
	}
	e.setTag(state, tag, level)
	return true
}

func (e *SyncEngine) setTag(state *models.ControlState, tag models.Tag, level vo.Level) {
	e.registry.SetTagLevel(tag, level)
	state.Tags[tag] = level
}

// SetAllOverride applies the aggregate control.
// The global level becomes the level, or FallbackGlobalLevel for vo.LevelDefault.
// Every known tag gets the original level, the sentinel included,
// so a tag set to vo.LevelDefault falls back to global.
// Returns the tags swept.
func (e *SyncEngine) SetAllOverride(state *models.ControlState, level vo.Level) []models.Tag {
	state.All = level

	global := level
	if level.IsDefault() {
		global = FallbackGlobalLevel
	}
	e.SetGlobal(state, global)

	tags := []models.Tag{}
	for tag := range e.registry.ListTagsWithLevels() {
		e.setTag(state, tag, level)
		tags = append(tags, tag)
	}
	e.log.Debug("set all", slog.Any("level", level), slog.Any("global", global), slog.Int("tags", len(tags)))
	return tags
}

// Replay restores the record into state and registry.
// Unlike SetAllOverride, the stored ALL value only seeds the state,
// so the per tag levels restored from the same record survive.
// Keys missing in the record mean no change.
func (e *SyncEngine) Replay(state *models.ControlState, record *models.Record) {
	if record == nil {
		return
	}

	known := e.registry.ListTagsWithLevels()
	for tag, level := range record.Loggers {
		if _, ok := known[tag]; !ok {
			e.log.Debug("replay skips unknown tag", slog.String("tag", tag))
			continue
		}
		e.setTag(state, tag, *level)
	}
	if record.Global != nil {
		e.SetGlobal(state, *record.Global)
	}
	if record.All != nil {
		state.All = *record.All
	}
}
