package infra

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/ports"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// WatcherService publishes changes of files in watched directories.
// The directories are requested over ports.TopicWatchDir.
// Hidden files (starting with dot) are not reported.
// Events are published to "<id>-file-modified" and "<id>-file-removed".
type WatcherService struct {
	id                string
	log               ports.Logger
	bus               ports.EventBus
	chTopicWatchDir   chan ports.Event
	watcher           *fsnotify.Watcher
	topicFileModified ports.Topic
	topicFileRemoved  ports.Topic
	closeWg           sync.WaitGroup
}

func TopicFileModified(id string) ports.Topic {
	return fmt.Sprintf("%v-file-modified", id)
}

func TopicFileRemoved(id string) ports.Topic {
	return fmt.Sprintf("%v-file-removed", id)
}

func NewWatcherService(id string, log ports.Logger, bus ports.EventBus) (*WatcherService, error) {
	log = log.With(slog.String("entity", "WatcherService"), slog.String("id", id))
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &WatcherService{
		id:                id,
		log:               log,
		bus:               bus,
		chTopicWatchDir:   bus.Sub(ports.TopicWatchDir),
		watcher:           watcher,
		topicFileModified: TopicFileModified(id),
		topicFileRemoved:  TopicFileRemoved(id),
	}
	log.Info("created")

	s.closeWg.Add(1)
	go func() {
		defer s.closeWg.Done()
		log.Info("process started")
		defer log.Warn("process complete")
		s.background()
	}()

	return s, nil
}

func (s *WatcherService) Close() {
	if s == nil {
		return
	}
	if s.watcher == nil {
		return
	}

	s.log.Info("closing")
	s.bus.Unsub(s.chTopicWatchDir)
	s.watcher.Close()
	s.closeWg.Wait()
	s.watcher = nil
}

func (s *WatcherService) addDir(path string) error {
	log := s.log
	if !lib.IsAbs(path) {
		log.Error("add dir failed!!!", slog.String("path", path))
		return errors.ErrMustBeAbsPath
	}
	log.Info("add dir", slog.String("path", path))
	err := s.watcher.Add(path)
	if err != nil {
		log.Error("add dir failed!!!", slog.Any("err", err), slog.String("path", path))
	}
	return err
}

func (s *WatcherService) background() {
	log, bus, fs := s.log, s.bus, afero.NewOsFs()
	for {
		select {
		case event, ok := <-s.chTopicWatchDir:
			if !ok {
				return
			}
			for _, path := range event {
				s.addDir(path)
			}
		case err, ok := <-s.watcher.Errors:
			if err != nil {
				log.Error("watcher error", slog.Any("err", err))
			}
			if !ok {
				return
			}
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			log.Debug("watcher event", slog.Any("event", event))

			file := event.Name
			if strings.HasPrefix(filepath.Base(file), ".") {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				size := lib.FileSize(fs, file)
				log.Debug("file modified", slog.String("file", file), slog.Int64("size", size))
				bus.Pub(s.topicFileModified, ports.Event{file})
			}
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				log.Debug("file removed", slog.String("file", file))
				bus.Pub(s.topicFileRemoved, ports.Event{file})
			}
		}
	}
}
