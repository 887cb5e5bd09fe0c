package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	libraryinadapter "vocabuilder/internal/modules/library/adapter/in"
	libraryoutadapter "vocabuilder/internal/modules/library/adapter/out"
	libraryservice "vocabuilder/internal/modules/library/service"
	libraryusecase "vocabuilder/internal/modules/library/usecase"
	plugininadapter "vocabuilder/internal/modules/plugin/adapter/in"
	pluginoutadapter "vocabuilder/internal/modules/plugin/adapter/out"
	pluginservice "vocabuilder/internal/modules/plugin/service"
	pluginusecase "vocabuilder/internal/modules/plugin/usecase"
	quizinadapter "vocabuilder/internal/modules/quiz/adapter/in"
	quizusecase "vocabuilder/internal/modules/quiz/usecase"
	scheduleinadapter "vocabuilder/internal/modules/schedule/adapter/in"
	scheduleoutadapter "vocabuilder/internal/modules/schedule/adapter/out"
	scheduleservice "vocabuilder/internal/modules/schedule/service"
	scheduleusecase "vocabuilder/internal/modules/schedule/usecase"
	sessioninadapter "vocabuilder/internal/modules/session/adapter/in"
	sessionoutadapter "vocabuilder/internal/modules/session/adapter/out"
	sessiondomain "vocabuilder/internal/modules/session/domain"
	sessionservice "vocabuilder/internal/modules/session/service"
	sessionusecase "vocabuilder/internal/modules/session/usecase"
	"vocabuilder/internal/platform/clock"
	"vocabuilder/internal/platform/config"
	"vocabuilder/internal/platform/id"
	"vocabuilder/internal/platform/kv"
	"vocabuilder/internal/platform/logger"
	uiapp "vocabuilder/internal/ui/app"
)

type Options struct {
	// LogWriter receives log output. Nil means stderr unless LogToFile is set.
	LogWriter io.Writer
	// LogToFile appends logs to the data directory log file.
	LogToFile bool
}

type App struct {
	Config config.Config
	Logger *slog.Logger

	LibraryCLI  libraryinadapter.CLIHandler
	ScheduleCLI scheduleinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	QuizCLI     quizinadapter.CLIHandler
	PluginCLI   plugininadapter.CLIHandler

	store   kv.Store
	closers []io.Closer
}

func New(cfg config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg}

	logWriter := opts.LogWriter
	if opts.LogToFile {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath()), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		app.closers = append(app.closers, f)
		logWriter = f
	}
	if logWriter == nil {
		logWriter = os.Stderr
	}
	log := logger.New(logger.Config{
		Writer: logWriter,
		Format: cfg.Log.Format,
		Level:  logger.ParseLevel(cfg.Log.Level),
	}).Logger
	app.Logger = log

	if cfg.Storage.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			app.Close()
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := kv.Open(cfg.Storage.Driver, cfg.Storage.Path, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	app.store = store
	store = kv.WithQuota(store, cfg.Storage.QuotaBytes)

	clk := clock.SystemClock{}
	ids := id.UUID{}

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		log.With("module", "plugin"),
		pluginoutadapter.NewFileManifestStore(cfg.DataDir, cfg.Plugins.Manifest),
		pluginoutadapter.NewGRPCHost(logWriter),
	))

	libraryUC := libraryusecase.NewInteractor(libraryservice.NewLibraryService(
		log.With("module", "library"),
		libraryoutadapter.NewKVLibraryStore(store, log),
		libraryoutadapter.NewSeedSource(cfg.Seed.Enabled, cfg.Seed.Path),
		libraryoutadapter.NewPluginEnricher(pluginUC),
		cfg.Plugins.Enrich,
	))

	scheduleUC := scheduleusecase.NewInteractor(scheduleservice.NewScheduler(
		clk,
		scheduleoutadapter.NewKVFirstSeenStore(store, log),
		nil,
		log.With("module", "schedule"),
	))

	sessionSvc, err := sessionservice.NewSessionService(clk, ids, sessiondomain.Layout{
		PerWeek:     cfg.Partition.PerWeek,
		PerDay:      cfg.Partition.PerDay,
		DaysPerWeek: cfg.Partition.DaysPerWeek,
	})
	if err != nil {
		app.Close()
		return nil, err
	}
	sessionUC := sessionusecase.NewInteractor(
		sessionSvc,
		libraryUC,
		scheduleUC,
		sessionoutadapter.NewFileSelectionStore(cfg.ActiveSetPath()),
		sessionoutadapter.NewMarkdownSheetStore(cfg.SheetsDir()),
		log.With("module", "session"),
	)

	quizUC := quizusecase.NewInteractor(sessionUC, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))

	app.LibraryCLI = libraryinadapter.NewCLIHandler(libraryUC)
	app.ScheduleCLI = scheduleinadapter.NewCLIHandler(scheduleUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.QuizCLI = quizinadapter.NewCLIHandler(quizUC)
	app.PluginCLI = plugininadapter.NewCLIHandler(pluginUC)
	return app, nil
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var firstErr error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			firstErr = err
		}
		a.store = nil
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.QuizCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
