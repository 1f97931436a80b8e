package levelpanel

import (
	"log/slog"
	"testing"

	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func testControlStates() []*models.ControlState {
	s1 := models.NewControlState(vo.LevelDefault)
	s2 := models.NewControlState(vo.LevelWarning)
	s2.Tags["net"] = vo.LevelError
	s3 := models.NewControlState(vo.LevelInfo)
	s3.All = vo.LevelDefault
	s3.Tags["net"] = vo.LevelDefault
	s3.Tags["shaka.Foo"] = vo.LevelDefault
	s4 := models.NewControlState(vo.LevelDebug)
	s4.All = vo.LevelDebug
	for tag := range testHostTags {
		s4.Tags[tag] = vo.LevelDebug
	}
	return []*models.ControlState{s1, s2, s3, s4}
}

func TestCodecSaveDisabled(t *testing.T) {
	for x, state := range testControlStates() {
		assert := require.New(t)
		st := newTestMemStore()
		c := NewPersistenceCodec(slog.Default(), st, "")
		assert.NoError(c.Save(state, true), x)
		assert.NoError(c.Save(state, false), x)
		record, ok := c.Load()
		assert.False(ok, x)
		assert.Nil(record, x)
		assert.Empty(st.m, x)
		// deleting missing record is fine
		assert.NoError(c.Save(state, false), x)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for x, state := range testControlStates() {
		assert := require.New(t)
		c := NewPersistenceCodec(slog.Default(), newTestMemStore(), DefaultStoreKey)
		assert.NoError(c.Save(state, true))
		record, ok := c.Load()
		assert.True(ok, x)
		assert.NotNil(record, x)

		// Apply the state directly...
		direct := newTestRegistry(testHostTags)
		de := NewSyncEngine(slog.Default(), direct)
		ds := models.NewControlState(direct.GlobalLevel())
		for tag, level := range state.Tags {
			de.SetTag(ds, tag, level)
		}
		de.SetGlobal(ds, state.Global)
		// ...and via the loaded record
		loaded := newTestRegistry(testHostTags)
		le := NewSyncEngine(slog.Default(), loaded)
		ls := models.NewControlState(loaded.GlobalLevel())
		le.Replay(ls, record)

		assert.Equal(direct.ListTagsWithLevels(), loaded.ListTagsWithLevels(), x)
		assert.Equal(direct.GlobalLevel(), loaded.GlobalLevel(), x)
		assert.Equal(state.All, ls.All, x)
		assert.Equal(state.Tags, ls.Tags, x)
	}
}

func TestCodecWireFormat(t *testing.T) {
	assert := require.New(t)
	st := newTestMemStore()
	c := NewPersistenceCodec(slog.Default(), st, DefaultStoreKey)
	state := models.NewControlState(vo.LevelWarning)
	state.Tags["net"] = vo.LevelError
	assert.NoError(c.Save(state, true))

	var m map[string]interface{}
	assert.NoError(json.Unmarshal([]byte(st.m[DefaultStoreKey]), &m))
	assert.Equal(map[string]interface{}{
		"loggers": map[string]interface{}{"net": float64(1)},
		"global":  float64(2),
		"all":     float64(-1),
	}, m)
}

func TestCodecCorruptRecord(t *testing.T) {
	testCases := []struct {
		desc string
		data string
	}{
		{"not json", "{loggers:"},
		{"not object", "42"},
		{"wrong type", `{"global":"INFO"}`},
		{"global out of range", `{"global":9}`},
		{"all out of range", `{"all":-2}`},
		{"tag out of range", `{"loggers":{"net":5}}`},
		{"tag null", `{"loggers":{"net":null},"global":null}`},
		{"null", `null`},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert := require.New(t)
			st := newTestMemStore()
			st.m[DefaultStoreKey] = tC.data
			c := NewPersistenceCodec(slog.Default(), st, DefaultStoreKey)
			record, ok := c.Load()
			assert.False(ok)
			assert.Nil(record)
			assert.NotContains(st.m, DefaultStoreKey)
		})
	}
}

func TestCodecMissingKeys(t *testing.T) {
	testCases := []struct {
		desc    string
		data    string
		loggers int
		global  bool
		all     bool
	}{
		{"empty object", `{}`, 0, false, false},
		{"null global and all", `{"global":null,"all":null}`, 0, false, false},
		{"only global", `{"global":0}`, 0, true, false},
		{"only all", `{"all":-1}`, 0, false, true},
		{"only loggers", `{"loggers":{"a":1,"b":-1}}`, 2, false, false},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert := require.New(t)
			st := newTestMemStore()
			st.m[DefaultStoreKey] = tC.data
			c := NewPersistenceCodec(slog.Default(), st, DefaultStoreKey)
			record, ok := c.Load()
			assert.True(ok)
			assert.Len(record.Loggers, tC.loggers)
			assert.Equal(tC.global, record.Global != nil)
			assert.Equal(tC.all, record.All != nil)
			assert.Contains(st.m, DefaultStoreKey)
		})
	}
}
