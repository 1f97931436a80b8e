package levelpanel

import (
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/ports"
	"github.com/stretchr/testify/require"
)

type testReloader struct {
	count atomic.Int32
}

func (r *testReloader) Reload() {
	r.count.Add(1)
}

func TestReloadService(t *testing.T) {
	assert := require.New(t)
	var bus ports.EventBus = infra.NewEventBus()
	defer bus.Shutdown()

	panel := &testReloader{}
	s := NewReloadService(slog.Default(), bus, panel, testStoreDir+"/clpp_loggers")

	bus.Pub(infra.TopicFileModified(WatcherID), ports.Event{testStoreDir + "/other"})
	bus.Pub(infra.TopicFileModified("input"), ports.Event{testStoreDir + "/clpp_loggers"})
	bus.Pub(infra.TopicFileModified(WatcherID), ports.Event{testStoreDir + "/clpp_loggers"})
	bus.Pub(infra.TopicFileRemoved(WatcherID), ports.Event{testStoreDir + "//clpp_loggers"})
	assert.Eventually(func() bool {
		return panel.count.Load() == 2
	}, time.Second, 10*time.Millisecond)

	s.Close()
	bus.Pub(infra.TopicFileModified(WatcherID), ports.Event{testStoreDir + "/clpp_loggers"})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(int32(2), panel.count.Load())
}
