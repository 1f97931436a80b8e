package main

import (
	"embed"
	"flag"
	"log/slog"
	"os"

	"github.com/cloudcopper/levelpanel"
	"github.com/cloudcopper/levelpanel/adapters/registry"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/infra/config"
	"github.com/cloudcopper/levelpanel/lib"
)

const (
	retNoErrorCode      = 0
	retGenericErrorCode = 1
)

//go:embed levelpanel.yml
var fs embed.FS

func main() {
	// Use config file name from env LEVELPANEL_CONFIG
	// or levelpanel.yml
	// Note the config file might be embedded!!!
	config.ConfigFileName = lib.GetEnvDefault("LEVELPANEL_CONFIG", config.ConfigFileName)

	// The first filesystem layer location (nothing if empty)
	config.TopRootFileSystemPath = lib.GetEnvDefault("LEVELPANEL_ROOT", config.TopRootFileSystemPath)
	// Second layer is current working dir
	// Third layer is this app embed fs
	// Last layer is the levelpanel own embed fs

	// Handle command line arguments
	flag.StringVar(&config.Listen, "listen", config.Listen, "web server listen address")
	flag.StringVar(&config.ConfigFileName, "config", config.ConfigFileName, "config file name")
	flag.StringVar(&config.TopRootFileSystemPath, "root", config.TopRootFileSystemPath, "first layer of filesystem (optional)")
	flag.Parse()

	//
	// Create logger
	// The process logs with tag "levelpanel",
	// so its own verbosity is controlled by the panel
	//
	reg := registry.NewSlogRegistry(vo.LevelInfo)
	log := newLogger(reg, "levelpanel")
	slog.SetDefault(log)
	log.Info("starting")

	err := levelpanel.App(log, fs, reg)

	code := retNoErrorCode
	if err != nil {
		code = retGenericErrorCode
		if i, ok := err.(lib.ErrorCode); ok {
			code = i.Code()
		}
		log.Error("exit", slog.Int("code", code), slog.Any("err", err))
	} else {
		log.Info("exit")
	}

	os.Exit(code)
}
