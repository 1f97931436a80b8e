package config

import (
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/lib/types"
	"github.com/stretchr/testify/require"
)

const testConfigFileName = "test_levelpanel.yml"

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		desc  string
		in    string
		panel *models.Panel
		host  *models.Host
	}{
		{
			desc: "empty file keeps defaults",
			in:   "",
			panel: &models.Panel{
				Namespace:      "shaka",
				StoreKey:       "clpp_loggers",
				Store:          models.StoreFile,
				StoreDir:       defaultStoreDir(),
				Watch:          true,
				RequestTimeout: types.Duration(10 * time.Second),
			},
			host: &models.Host{
				Base:   vo.LevelInfo,
				Global: vo.LevelDefault,
				Tags:   map[models.Tag]vo.Level{},
			},
		},
		{
			desc: "db store and tags",
			in: `
panel:
  namespace: ""
  store: db
  dbSource: "file::memory:"
  watch: false
  requestTimeout: 1m
host:
  base: WARNING
  global: 4
  tags:
    shaka.Player: INFO
    net: error
    app.Bar: DEFAULT
`,
			panel: &models.Panel{
				Namespace:      "",
				StoreKey:       "clpp_loggers",
				Store:          models.StoreDB,
				StoreDir:       defaultStoreDir(),
				DBSource:       "file::memory:",
				Watch:          false,
				RequestTimeout: types.Duration(time.Minute),
			},
			host: &models.Host{
				Base:   vo.LevelWarning,
				Global: vo.LevelDebug,
				Tags: map[models.Tag]vo.Level{
					"shaka.Player": vo.LevelInfo,
					"net":          vo.LevelError,
					"app.Bar":      vo.LevelDefault,
				},
			},
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert := require.New(t)
			fs := fstest.MapFS{testConfigFileName: &fstest.MapFile{Data: []byte(tC.in)}}
			ConfigFileName = testConfigFileName
			cfg, err := LoadConfig(slog.Default(), fs)
			assert.NoError(err)
			assert.Equal(tC.panel, cfg.Panel)
			assert.Equal(tC.host, cfg.Host)
			assert.NotEmpty(cfg.String())
		})
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	testCases := []struct {
		desc string
		in   string
	}{
		{"unknown store", "panel:\n  store: redis\n"},
		{"relative store dir", "panel:\n  storeDir: var/lib\n"},
		{"bad store key", "panel:\n  storeKey: ../x\n"},
		{"bad level", "host:\n  tags:\n    net: LOUD\n"},
		{"base default", "host:\n  base: DEFAULT\n"},
		{"negative timeout", "panel:\n  requestTimeout: -1m\n"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert := require.New(t)
			fs := fstest.MapFS{testConfigFileName: &fstest.MapFile{Data: []byte(tC.in)}}
			ConfigFileName = testConfigFileName
			_, err := LoadConfig(slog.Default(), fs)
			assert.Error(err)
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	assert := require.New(t)
	ConfigFileName = "no-such-file.yml"
	_, err := LoadConfig(slog.Default(), fstest.MapFS{})
	assert.Error(err)
}
