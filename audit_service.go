package levelpanel

import (
	"log/slog"
	"sync"

	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/ports"
)

// AuditService listening eventbus for next events:
//   - level-changed - to log the edit and refresh level gauges from the registry
//   - persistence-changed - to log the switch
//   - record-reloaded - to refresh level gauges after replay
type AuditService struct {
	log                       ports.Logger
	bus                       ports.EventBus
	registry                  ports.Registry
	chTopicLevelChanged       chan ports.Event
	chTopicPersistenceChanged chan ports.Event
	chTopicRecordReloaded     chan ports.Event
	closeWg                   sync.WaitGroup
	tags                      map[string]struct{}
}

func NewAuditService(log ports.Logger, bus ports.EventBus, registry ports.Registry) *AuditService {
	log = log.With(slog.String("entity", "AuditService"))
	s := &AuditService{
		log:                       log,
		bus:                       bus,
		registry:                  registry,
		chTopicLevelChanged:       bus.Sub(ports.TopicLevelChanged),
		chTopicPersistenceChanged: bus.Sub(ports.TopicPersistenceChanged),
		chTopicRecordReloaded:     bus.Sub(ports.TopicRecordReloaded),
		tags:                      map[string]struct{}{},
	}
	s.refresh()

	s.closeWg.Add(1)
	go func() {
		defer s.closeWg.Done()
		log.Info("process started")
		defer log.Warn("process complete")
		s.background()
	}()

	return s
}

func (s *AuditService) Close() {
	s.log.Info("closing")
	s.bus.Unsub(s.chTopicRecordReloaded)
	s.bus.Unsub(s.chTopicPersistenceChanged)
	s.bus.Unsub(s.chTopicLevelChanged)
	s.closeWg.Wait()
}

func (s *AuditService) background() {
	chLevel, chPersist, chReload := s.chTopicLevelChanged, s.chTopicPersistenceChanged, s.chTopicRecordReloaded
	for chLevel != nil || chPersist != nil || chReload != nil {
		select {
		case event, ok := <-chLevel:
			if !ok {
				chLevel = nil
				continue
			}
			s.levelChanged(event)
		case event, ok := <-chPersist:
			if !ok {
				chPersist = nil
				continue
			}
			s.log.Info("audit", slog.String("event", ports.TopicPersistenceChanged), slog.Any("args", event))
		case event, ok := <-chReload:
			if !ok {
				chReload = nil
				continue
			}
			s.log.Info("audit", slog.String("event", ports.TopicRecordReloaded), slog.Any("args", event))
			s.refresh()
		}
	}
}

func (s *AuditService) levelChanged(event ports.Event) {
	if len(event) != 3 {
		s.log.Error("malformed event", slog.String("event", ports.TopicLevelChanged), slog.Any("args", event))
		return
	}
	s.log.Info("audit", slog.String("event", ports.TopicLevelChanged), slog.String("control", event[0]), slog.String("tag", event[1]), slog.String("level", event[2]))
	s.refresh()
}

// refresh sets gauges to levels the registry reports now.
// Series of tags gone from the registry are removed.
func (s *AuditService) refresh() {
	if lib.IsNil(s.registry) {
		return
	}
	loggers := s.registry.ListTagsWithLevels()
	for tag := range s.tags {
		if _, ok := loggers[tag]; !ok {
			infra.MetricTagLevel.DeleteLabelValues(tag)
			delete(s.tags, tag)
		}
	}
	for tag, level := range loggers {
		infra.MetricTagLevel.WithLabelValues(tag).Set(float64(level.Int()))
		s.tags[tag] = struct{}{}
	}
	infra.MetricGlobalLevel.Set(float64(s.registry.GlobalLevel().Int()))
}
