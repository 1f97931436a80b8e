package main

import (
	"log/slog"
	"os"

	"github.com/cloudcopper/levelpanel/adapters/registry"
	"github.com/phsym/console-slog"
)

const timeFormat string = "2006-01-02 15:04:05.000" // may be time.DateTime

// newLogger returns logger of tag filtered by the registry.
// The handler passes everything, the registry decides.
func newLogger(reg *registry.SlogRegistry, tag string) *slog.Logger {
	handler := console.NewHandler(os.Stdout, &console.HandlerOptions{
		Level:      slog.LevelDebug,
		TimeFormat: timeFormat,
	})
	return reg.Logger(handler, tag)
}
