package ports

type Topic = string
type Event = []string
type EventBus interface {
	Shutdown()
	Pub(Topic, Event)
	Sub(...Topic) chan Event
	Unsub(chan Event)
}

const (
	// TopicLevelChanged carries control kind, tag and level of applied edit
	TopicLevelChanged Topic = "level-changed"
	// TopicPersistenceChanged carries "true" or "false"
	TopicPersistenceChanged Topic = "persistence-changed"
	// TopicRecordReloaded carries "true" or "false" of persistence after replay
	TopicRecordReloaded Topic = "record-reloaded"
	// TopicWatchDir carries absolute directories to watch
	TopicWatchDir Topic = "watch-dir"
)
