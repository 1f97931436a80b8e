package main

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cloudcopper/levelpanel"
	"github.com/cloudcopper/levelpanel/adapters/registry"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/infra/config"
	"github.com/cloudcopper/levelpanel/lib/random"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	numTags      = []int{10, 60}
	numTagWords  = []int{1, 2}
	numSentences = []int{1, 2}
	chatterEvery = 2 * time.Second
	prefixes     = []string{"shaka", "shaka", "app", "net", "db", "ui"}
	levels       = vo.Levels()
	slogLevels   = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
)

var (
	rv = random.Value
	rs = random.Element[string]
)

//go:embed levelpanel-ui-dev.yml
var fs embed.FS

// The ui-dev runs the panel over registry with random tags.
// Every tag logs random records, so level changes are seen live.
func main() {
	// Force development environment
	os.Setenv("GO_ENV", "development")
	config.ConfigFileName = "levelpanel-ui-dev.yml"

	handler := newHandler()
	reg := registry.NewSlogRegistry(vo.LevelInfo)
	log := reg.Logger(handler, "levelpanel")

	tags := genTags(reg)
	log.Info("generated tags", slog.Int("tags", len(tags)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go chatter(ctx, reg, handler, tags)

	err := levelpanel.App(log, fs, reg)
	if err != nil {
		log.Error("exit", slog.Any("err", err))
		os.Exit(1)
	}
}

// genTags registers random tags with random levels
func genTags(reg *registry.SlogRegistry) []string {
	tags := []string{}
	for n := 0; n < rv(numTags); n++ {
		tag := genTag()
		reg.Register(tag, random.Element(levels))
		tags = append(tags, tag)
	}
	return tags
}

func genTag() string {
	name := ""
	for _, w := range strings.Fields(random.Words(numTagWords)) {
		name += strings.ToUpper(w[:1]) + w[1:]
	}
	switch rs([]string{"plain", "plain", "plain", "uuid", "ulid"}) {
	case "uuid":
		return fmt.Sprintf("%v.%v-%v", rs(prefixes), name, uuid.New().String()[:8])
	case "ulid":
		return fmt.Sprintf("%v.%v-%v", rs(prefixes), name, strings.ToLower(ulid.Make().String()[20:]))
	}
	return fmt.Sprintf("%v.%v", rs(prefixes), name)
}

func chatter(ctx context.Context, reg *registry.SlogRegistry, handler slog.Handler, tags []string) {
	loggers := make([]*slog.Logger, 0, len(tags))
	for _, tag := range tags {
		loggers = append(loggers, reg.Logger(handler, tag))
	}

	ticker := time.NewTicker(chatterEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, log := range loggers {
				log.Log(ctx, random.Element(slogLevels), random.Sentences(numSentences))
			}
		}
	}
}
