package main

import (
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
)

const timeFormat string = "15:04:05.000"

func newHandler() slog.Handler {
	return console.NewHandler(os.Stdout, &console.HandlerOptions{
		Level:      slog.LevelDebug,
		TimeFormat: timeFormat,
		AddSource:  false,
	})
}
