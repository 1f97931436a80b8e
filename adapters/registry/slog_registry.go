package registry

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
)

// TagKey is the attribute key carrying tag of the record
const TagKey = "tag"

// SlogRegistry is tag based logging registry on top of slog.
// Every tag resolves its effective level as own level,
// then global level, then base level, skipping vo.LevelDefault.
type SlogRegistry struct {
	mutex  sync.RWMutex
	base   vo.Level
	global vo.Level
	tags   map[models.Tag]vo.Level
}

// NewSlogRegistry creates registry with base level,
// used when both tag and global levels are vo.LevelDefault.
func NewSlogRegistry(base vo.Level) *SlogRegistry {
	if base.IsDefault() || !base.Valid() {
		base = vo.LevelInfo
	}
	r := &SlogRegistry{
		base:   base,
		global: vo.LevelDefault,
		tags:   make(map[models.Tag]vo.Level),
	}
	return r
}

// Register adds tag with initial level.
// Registering existing tag keeps its level.
func (r *SlogRegistry) Register(tag models.Tag, level vo.Level) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.tags[tag]; ok {
		return
	}
	r.tags[tag] = level
}

func (r *SlogRegistry) Unregister(tag models.Tag) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.tags, tag)
}

func (r *SlogRegistry) ListTagsWithLevels() map[string]vo.Level {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return maps.Clone(r.tags)
}

// SetBaseLevel changes the base level.
// The vo.LevelDefault and invalid levels are ignored.
func (r *SlogRegistry) SetBaseLevel(base vo.Level) {
	if base.IsDefault() || !base.Valid() {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.base = base
}

func (r *SlogRegistry) GlobalLevel() vo.Level {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.global
}

func (r *SlogRegistry) SetGlobalLevel(level vo.Level) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.global = level
}

func (r *SlogRegistry) SetTagLevel(tag string, level vo.Level) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.tags[tag]; !ok {
		return
	}
	r.tags[tag] = level
}

// EffectiveLevel returns the level the tag logs with
func (r *SlogRegistry) EffectiveLevel(tag models.Tag) vo.Level {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if l, ok := r.tags[tag]; ok && !l.IsDefault() {
		return l
	}
	if !r.global.IsDefault() {
		return r.global
	}
	return r.base
}

// Enabled reports whether tag logs record of slog level
func (r *SlogRegistry) Enabled(tag models.Tag, level slog.Level) bool {
	threshold, ok := SlogLevel(r.EffectiveLevel(tag))
	if !ok {
		return false
	}
	return level >= threshold
}

// Logger returns logger of tag, which writes to handler
// records enabled by the registry
func (r *SlogRegistry) Logger(handler slog.Handler, tag models.Tag) *slog.Logger {
	r.Register(tag, vo.LevelDefault)
	h := &TagHandler{
		next:     handler.WithAttrs([]slog.Attr{slog.String(TagKey, tag)}),
		registry: r,
		tag:      tag,
	}
	return slog.New(h)
}

// SlogLevel maps level to minimal slog level enabled.
// It returns false for vo.LevelNone, which enables nothing.
func SlogLevel(level vo.Level) (slog.Level, bool) {
	switch level {
	case vo.LevelError:
		return slog.LevelError, true
	case vo.LevelWarning:
		return slog.LevelWarn, true
	case vo.LevelInfo:
		return slog.LevelInfo, true
	case vo.LevelDebug:
		return slog.LevelDebug, true
	}
	return 0, false
}

// TagHandler filters records by level of its tag
type TagHandler struct {
	next     slog.Handler
	registry *SlogRegistry
	tag      models.Tag
}

func (h *TagHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.registry.Enabled(h.tag, level) && h.next.Enabled(ctx, level)
}

func (h *TagHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.next.Handle(ctx, record)
}

func (h *TagHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TagHandler{h.next.WithAttrs(attrs), h.registry, h.tag}
}

func (h *TagHandler) WithGroup(name string) slog.Handler {
	return &TagHandler{h.next.WithGroup(name), h.registry, h.tag}
}
