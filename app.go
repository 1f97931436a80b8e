package levelpanel

import (
	"embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudcopper/levelpanel/adapters/http"
	"github.com/cloudcopper/levelpanel/adapters/http/controllers"
	"github.com/cloudcopper/levelpanel/adapters/registry"
	"github.com/cloudcopper/levelpanel/adapters/store"
	"github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/infra"
	"github.com/cloudcopper/levelpanel/infra/config"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/ports"
	"github.com/spf13/afero"
)

// App execute application and returns error, when complete by ctrl-c.
// The host registry is the given one, or new slog registry.
// Either way it is seeded from config.
// The application reads config(s), templates and static web files
// from layered filesystem.
// Layered filesystem consists of next layers:
//   - ./ of ${LEVELPANEL_ROOT} (optional)
//   - ./ of current working directory
//   - embed.fs given as parameter (cmdFS)
//   - package own embed.fs (appFS)
func App(log ports.Logger, cmdFS embed.FS, reg *registry.SlogRegistry) error {
	var realFS ports.FS = afero.NewOsFs()

	// EventBus
	var bus ports.EventBus = infra.NewEventBus()
	defer bus.Shutdown()

	// Create layered filesystem
	fs, err := infra.NewLayerFileSystem(config.TopRootFileSystemPath, os.Getwd, cmdFS, appFS)
	if err != nil {
		log.Error("unable to create layered filesystem!!!", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetLayerFilesystemError)
	}

	// Load configuration
	cfg, err := config.LoadConfig(log, fs)
	if err != nil {
		log.Error("unable to load config!!!", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetLoadConfigError)
	}

	// Create record store
	var recordStore ports.Store
	storeDir, storeFile := "", ""
	switch cfg.Panel.Store {
	case models.StoreDB:
		// Open database
		driver := infra.DriverSqlite
		source := cfg.Panel.DBSource
		switch {
		case source == "":
			source = infra.SourceSqliteInMemory
		case lib.IsAbs(source):
			source = infra.SourceSqliteFile(source)
		}
		db, closeDb, err := infra.NewDatabase(log, driver, source)
		if err != nil {
			log.Error("unable to create database", slog.Any("err", err), slog.String("driver", driver), slog.String("source", source))
			return lib.NewErrorCode(err, errors.RetCreateDatabaseError)
		}
		defer closeDb()
		// Sync database
		if err := db.AutoMigrate(new(models.StoreEntry)); err != nil {
			log.Error("unable sync database", slog.Any("err", err), slog.String("driver", driver), slog.String("source", source))
			return lib.NewErrorCode(err, errors.RetMigrateDatabaseError)
		}
		dbStore, err := store.NewDBStore(log, db)
		if err != nil {
			log.Error("unable to create db store", slog.Any("err", err))
			return lib.NewErrorCode(err, errors.RetCreateStoreError)
		}
		recordStore = dbStore
	case models.StoreFile:
		fileStore, err := store.NewFileStore(log, realFS, cfg.Panel.StoreDir)
		if err != nil {
			log.Error("unable to create file store", slog.Any("err", err), slog.String("dir", cfg.Panel.StoreDir))
			return lib.NewErrorCode(err, errors.RetCreateStoreError)
		}
		recordStore = fileStore
		storeDir, storeFile = fileStore.Dir(), fileStore.Path(cfg.Panel.StoreKey)
	default:
		err := errors.ErrUnknownStore
		log.Error("unable to create store", slog.Any("err", err), slog.String("store", cfg.Panel.Store))
		return lib.NewErrorCode(err, errors.RetCreateStoreError)
	}

	// Create host registry
	if reg == nil {
		reg = registry.NewSlogRegistry(cfg.Host.Base)
	}
	// Create panel
	codec := NewPersistenceCodec(log, recordStore, cfg.Panel.StoreKey)
	panel := NewPanelService(log, bus, reg, codec, cfg.Panel.Namespace)

	// Create filesystem watcher for the record file
	// and reload the panel, when the record is changed outside
	if storeFile != "" && cfg.Panel.Watch {
		storeWatcher, err := infra.NewWatcherService(WatcherID, log, bus)
		if err != nil {
			log.Error("unable to create new watcher service", slog.Any("err", err))
			return lib.NewErrorCode(err, errors.RetCreateWatcherError)
		}
		defer storeWatcher.Close()
		reloadService := NewReloadService(log, bus, panel, storeFile)
		defer reloadService.Close()
	}

	// Perform neccesery startup operations
	if err := startup(log, cfg, bus, reg, panel, storeDir); err != nil {
		return err
	}

	// Create audit service
	// - logs applied edits
	// - keeps level gauges current
	auditService := NewAuditService(log, bus, reg)
	defer auditService.Close()

	// Create router
	router := http.NewRouter(log, time.Duration(cfg.Panel.RequestTimeout))
	// Create render object
	// It also loads templates
	render := infra.NewRender(fs, "layout")
	// Create controllers and add routes
	panelController := Inject(log, router, render, panel, recordStore, cfg.Panel.StoreKey)
	aboutPageController := controllers.NewAboutPageController(log, render, cfg.Panel, recordStore)
	router.Get("/about", aboutPageController.Index)
	router.Handle("/metrics", http.MetricsHandler())
	// Static file handler
	router.Handle("/static/*", http.FileServer(fs))
	// 404 handler
	router.NotFound(panelController.NotFound)
	// Create http server
	// The router must has all routes already
	// It will start server in separate goroutine
	addr := config.Listen
	httpServer, err := infra.NewWebServer(log, addr, router)
	if err != nil {
		log.Error("unable create web server", slog.Any("err", err), slog.String("addr", addr))
		return lib.NewErrorCode(err, errors.RetCreateWebServerError)
	}

	// Add ctrl-c shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	log.Info("press ctrl-c to exit")
	// Wait for ctrl-c
	<-c

	// Close http server
	httpServer.Close()
	return nil
}
