package levelpanel

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/ports"
)

// WatcherID is the id of the watcher service reporting store files
const WatcherID = "store"

type reloader interface {
	Reload()
}

// ReloadService listening eventbus for next events:
//   - store-file-modified - the record was written, possibly by other process
//   - store-file-removed - the record was deleted
//
// Events about the record file make the panel reload it,
// same as the page reload does.
type ReloadService struct {
	log                 ports.Logger
	bus                 ports.EventBus
	panel               reloader
	file                string
	chTopicFileModified chan ports.Event
	chTopicFileRemoved  chan ports.Event
	closeWg             sync.WaitGroup
}

func NewReloadService(log ports.Logger, bus ports.EventBus, panel reloader, file string) *ReloadService {
	log = log.With(slog.String("entity", "ReloadService"), slog.String("file", file))
	s := &ReloadService{
		log:                 log,
		bus:                 bus,
		panel:               panel,
		file:                filepath.Clean(file),
		chTopicFileModified: bus.Sub(infra.TopicFileModified(WatcherID)),
		chTopicFileRemoved:  bus.Sub(infra.TopicFileRemoved(WatcherID)),
	}

	s.closeWg.Add(1)
	go func() {
		defer s.closeWg.Done()
		log.Info("process started")
		defer log.Warn("process complete")
		s.background()
	}()

	return s
}

func (s *ReloadService) Close() {
	s.log.Info("closing")
	s.bus.Unsub(s.chTopicFileRemoved)
	s.bus.Unsub(s.chTopicFileModified)
	s.closeWg.Wait()
}

func (s *ReloadService) background() {
	chModified, chRemoved := s.chTopicFileModified, s.chTopicFileRemoved
	for chModified != nil || chRemoved != nil {
		select {
		case files, ok := <-chModified:
			if !ok {
				chModified = nil
				continue
			}
			s.check(files)
		case files, ok := <-chRemoved:
			if !ok {
				chRemoved = nil
				continue
			}
			s.check(files)
		}
	}
}

func (s *ReloadService) check(files ports.Event) {
	for _, file := range files {
		if filepath.Clean(file) != s.file {
			continue
		}
		s.log.Debug("record changed")
		s.panel.Reload()
		return
	}
}
