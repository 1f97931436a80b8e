package infra

import (
	"sync"
	"testing"

	"github.com/cloudcopper/levelpanel/ports"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	assert := require.New(t)
	bus := NewEventBus()
	ch := bus.Sub(ports.TopicLevelChanged, ports.TopicPersistenceChanged)
	wg := sync.WaitGroup{}
	wg.Add(1)
	events := []ports.Event{}
	go func() {
		defer wg.Done()
		for e := range ch {
			events = append(events, e)
		}
	}()
	bus.Pub(ports.TopicLevelChanged, ports.Event{"TAG", "net", "1"})
	bus.Pub(ports.TopicPersistenceChanged, ports.Event{"true"})
	bus.Pub("other", ports.Event{"ignored"})
	// pubsub delivers in order, so the unsub arrives after the events
	bus.Unsub(ch)
	wg.Wait()
	bus.Unsub(ch)
	bus.Shutdown()

	assert.Equal([]ports.Event{{"TAG", "net", "1"}, {"true"}}, events)
}
