package levelpanel

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/ports"
)

// DefaultNamespace is the third party logging namespace
// whose tags are listed first
const DefaultNamespace = "shaka"

// PanelService bridges host registry, SyncEngine and PersistenceCodec.
// All operations are serialized, so each edit is atomic
// in respect to the others and applied in arrival order.
type PanelService struct {
	log       ports.Logger
	bus       ports.EventBus
	registry  ports.Registry
	codec     *PersistenceCodec
	namespace string

	mutex   sync.Mutex
	engine  *SyncEngine
	state   *models.ControlState
	persist bool
	active  bool
}

// NewPanelService creates inactive panel.
// The registry may be nil, then the panel would never activate.
// The bus may be nil.
func NewPanelService(log ports.Logger, bus ports.EventBus, registry ports.Registry, codec *PersistenceCodec, namespace string) *PanelService {
	log = log.With(slog.String("entity", "PanelService"))
	if lib.IsNil(registry) {
		registry = nil
	}
	if lib.IsNil(bus) {
		bus = nil
	}
	s := &PanelService{
		log:       log,
		bus:       bus,
		registry:  registry,
		codec:     codec,
		namespace: namespace,
	}
	return s
}

// Activate loads and replays persisted record.
// It returns false if the host registry is absent.
// Calling it on active panel does nothing.
func (s *PanelService) Activate() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.active {
		return true
	}
	if s.registry == nil {
		s.log.Warn("no host registry - panel stays inactive")
		return false
	}

	s.engine = NewSyncEngine(s.log, s.registry)
	s.state = models.NewControlState(s.registry.GlobalLevel())
	s.restore()
	s.active = true
	s.log.Info("activated", slog.Bool("persist", s.persist), slog.Int("tags", len(s.registry.ListTagsWithLevels())))
	return true
}

// Reload reads the record again and replays it,
// same as the page reload does.
func (s *PanelService) Reload() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.active {
		return
	}
	s.restore()
	s.log.Info("reloaded", slog.Bool("persist", s.persist))
	s.pub(ports.TopicRecordReloaded, ports.Event{fmt.Sprint(s.persist)})
}

func (s *PanelService) restore() {
	record, ok := s.codec.Load()
	s.persist = ok
	s.updatePersistenceMetric()
	if !ok {
		return
	}
	s.engine.Replay(s.state, record)
}

func (s *PanelService) IsActive() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.active
}

func (s *PanelService) SetGlobal(level vo.Level) error {
	return s.Edit(vo.ControlGlobal, "", level)
}

func (s *PanelService) SetTag(tag models.Tag, level vo.Level) error {
	return s.Edit(vo.ControlTag, tag, level)
}

func (s *PanelService) SetAll(level vo.Level) error {
	return s.Edit(vo.ControlAll, "", level)
}

// Edit applies single control edit and persists the resulting state
func (s *PanelService) Edit(kind vo.ControlKind, tag models.Tag, level vo.Level) error {
	if !level.Valid() {
		return errors.ErrLevelOutOfRange
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.active {
		return errors.ErrPanelInactive
	}

	log := s.log.With(slog.Any("control", kind), slog.Any("level", level))
	switch kind {
	case vo.ControlGlobal:
		s.engine.SetGlobal(s.state, level)
	case vo.ControlAll:
		s.engine.SetAllOverride(s.state, level)
	case vo.ControlTag:
		log = log.With(slog.String("tag", tag))
		if !s.engine.SetTag(s.state, tag, level) {
			return nil
		}
	default:
		return errors.ErrUnknownControl
	}
	log.Info("level changed")
	infra.MetricEdits.WithLabelValues(kind.String()).Inc()

	s.save()
	s.pub(ports.TopicLevelChanged, ports.Event{kind.String(), tag, fmt.Sprint(level.Int())})
	return nil
}

// SetPersistence switches the persistence
// and immediately updates the store
func (s *PanelService) SetPersistence(enabled bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.active {
		return errors.ErrPanelInactive
	}

	s.persist = enabled
	s.log.Info("persistence changed", slog.Bool("persist", enabled))
	s.save()
	s.pub(ports.TopicPersistenceChanged, ports.Event{fmt.Sprint(enabled)})
	return nil
}

// save errors are logged only, as nothing is surfaced to operator
func (s *PanelService) save() {
	if err := s.codec.Save(s.state, s.persist); err != nil {
		s.log.Error("unable to save record", slog.Any("err", err), slog.Bool("persist", s.persist))
	}
	s.updatePersistenceMetric()
}

func (s *PanelService) updatePersistenceMetric() {
	v := 0.0
	if s.persist {
		v = 1
	}
	infra.MetricPersistenceEnabled.Set(v)
}

func (s *PanelService) pub(topic ports.Topic, event ports.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Pub(topic, event)
}

// Snapshot returns panel state for rendering.
// The rows come from the registry in display order.
func (s *PanelService) Snapshot() models.Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.active {
		return models.Snapshot{All: vo.LevelDefault, Global: vo.LevelDefault}
	}

	loggers := s.registry.ListTagsWithLevels()
	tags := make([]models.Tag, 0, len(loggers))
	for tag := range loggers {
		tags = append(tags, tag)
	}

	snapshot := models.Snapshot{
		Active:  true,
		Persist: s.persist,
		All:     s.state.All,
		Global:  s.registry.GlobalLevel(),
	}
	for _, tag := range OrderTags(tags, s.namespace) {
		snapshot.Rows = append(snapshot.Rows, models.Row{Tag: tag, Level: loggers[tag]})
	}
	return snapshot
}

// State returns copy of current control state
func (s *PanelService) State() *models.ControlState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state == nil {
		return models.NewControlState(vo.LevelDefault)
	}
	return s.state.Clone()
}

// OrderTags returns tags containing namespace first
// followed by the rest, each group sorted.
func OrderTags(tags []models.Tag, namespace string) []models.Tag {
	matched, other := []models.Tag{}, []models.Tag{}
	for _, tag := range tags {
		if namespace != "" && strings.Contains(tag, namespace) {
			matched = append(matched, tag)
			continue
		}
		other = append(other, tag)
	}
	sort.Strings(matched)
	sort.Strings(other)
	return append(matched, other...)
}
