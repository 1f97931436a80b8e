package config

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/lib/types"
	"github.com/cloudcopper/levelpanel/ports"
	tpl "github.com/cloudcopper/misc/env/template"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Panel *models.Panel `yaml:"panel" validate:"required"`
	Host  *models.Host  `yaml:"host" validate:"required"`
}

func (c *Config) String() string {
	s := "panel:\n"
	s += fmt.Sprintf("    namespace: %v\n", c.Panel.Namespace)
	s += fmt.Sprintf("    storeKey: %v\n", c.Panel.StoreKey)
	s += fmt.Sprintf("    store: %v\n", c.Panel.Store)
	switch c.Panel.Store {
	case models.StoreFile:
		s += fmt.Sprintf("    storeDir: %v\n", c.Panel.StoreDir)
	case models.StoreDB:
		s += fmt.Sprintf("    dbSource: %v\n", c.Panel.DBSource)
	}
	s += fmt.Sprintf("    watch: %v\n", c.Panel.Watch)
	s += fmt.Sprintf("    requestTimeout: %v\n", c.Panel.RequestTimeout)
	s += "host:\n"
	s += fmt.Sprintf("    base: %v\n", c.Host.Base)
	s += fmt.Sprintf("    global: %v\n", c.Host.Global)
	s += "    tags:\n"
	tags := []string{}
	for tag := range c.Host.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		s += fmt.Sprintf("        %v: %v\n", tag, c.Host.Tags[tag])
	}
	return strings.TrimSuffix(s, "\n")
}

var (
	Listen                = ":8080"
	ConfigFileName        = "levelpanel.yml"
	TopRootFileSystemPath = ""
)

// defaultConfig returns config with values
// used for keys missing in config file
func defaultConfig() *Config {
	return &Config{
		Panel: &models.Panel{
			Namespace:      "shaka",
			StoreKey:       "clpp_loggers",
			Store:          models.StoreFile,
			StoreDir:       defaultStoreDir(),
			Watch:          true,
			RequestTimeout: types.Duration(10 * time.Second),
		},
		Host: &models.Host{
			Base:   vo.LevelInfo,
			Global: vo.LevelDefault,
			Tags:   map[models.Tag]vo.Level{},
		},
	}
}

func defaultStoreDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || !lib.IsAbs(dir) {
		return "/var/lib/levelpanel"
	}
	return dir + "/levelpanel"
}

func LoadConfig(log ports.Logger, f fs.ReadFileFS) (*Config, error) {
	config, err := loadConfig(log, f, ConfigFileName)
	if err != nil {
		return config, err
	}
	if err := lib.Validate.Struct(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	// dump effective config
	dump := strings.Split(config.String(), "\n")
	for _, s := range dump {
		log.Debug(s)
	}
	return config, nil
}

// The loadConfig reads named config file from given fs,
// execute file as env template,
// and unmarshal result over the default config
func loadConfig(log ports.Logger, f fs.ReadFileFS, fileName string) (*Config, error) {
	log.Info("loading config", slog.String("fileName", fileName))
	blob, err := os.ReadFile(fileName)
	if err != nil {
		blob, err = f.ReadFile(fileName)
		if err != nil {
			return nil, err
		}
	}

	// parse config as template
	t, err := tpl.Parse(string(blob))
	if err != nil {
		return nil, err
	}
	// execute template
	s, err := t.Execute()
	if err != nil {
		return nil, err
	}

	// unmarshal config
	cfg := defaultConfig()
	err = yaml.Unmarshal([]byte(s), cfg)
	return cfg, err
}
