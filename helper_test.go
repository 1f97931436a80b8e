package levelpanel

import (
	"log/slog"
	"testing"

	"github.com/cloudcopper/levelpanel/adapters/registry"
	"github.com/cloudcopper/levelpanel/adapters/store"
	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/ports"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testStoreDir = "/var/lib/levelpanel"

type testFakePanelInternals struct {
	fs    afero.Fs
	bus   ports.EventBus
	reg   *registry.SlogRegistry
	store *store.FileStore
	codec *PersistenceCodec
	ps    *PanelService
}

// testHostTags is the host registry of the tests
var testHostTags = map[models.Tag]vo.Level{
	"shaka.Foo": vo.LevelWarning,
	"app.Bar":   vo.LevelDefault,
	"shaka.Baz": vo.LevelError,
	"net":       vo.LevelInfo,
}

func newTestRegistry(tags map[models.Tag]vo.Level) *registry.SlogRegistry {
	reg := registry.NewSlogRegistry(vo.LevelInfo)
	for tag, level := range tags {
		reg.Register(tag, level)
	}
	return reg
}

// testFakePanel creates panel over given fs,
// so the reload can be simulated by second call with same fs.
func testFakePanel(t *testing.T, fs afero.Fs, tags map[models.Tag]vo.Level, callback func(*testFakePanelInternals)) {
	assert := require.New(t)
	noErr := func(err error) {
		assert.NoError(err)
		if err != nil {
			t.FailNow()
		}
	}

	log := slog.Default()
	var bus ports.EventBus = infra.NewEventBus()
	defer bus.Shutdown()

	fileStore, err := store.NewFileStore(log, fs, testStoreDir)
	noErr(err)
	reg := newTestRegistry(tags)
	codec := NewPersistenceCodec(log, fileStore, DefaultStoreKey)
	ps := NewPanelService(log, bus, reg, codec, DefaultNamespace)
	assert.True(ps.Activate())

	app := &testFakePanelInternals{
		fs:    fs,
		bus:   bus,
		reg:   reg,
		store: fileStore,
		codec: codec,
		ps:    ps,
	}
	callback(app)
}

// testMemStore is map based ports.Store
type testMemStore struct {
	m map[string]string
}

func newTestMemStore() *testMemStore {
	return &testMemStore{m: make(map[string]string)}
}

func (s *testMemStore) Get(key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *testMemStore) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *testMemStore) Delete(key string) error {
	delete(s.m, key)
	return nil
}
