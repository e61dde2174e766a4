package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

type AppProvider interface {
	Run() error
}

type App struct {
	logger   *zap.Logger
	config   *Config
	factory  *EntityFactory
	library  *Library
	cleanups []func()
}

// NewApp provides an instance of App.
func NewApp() (AppProvider, error) {
	config, err := LoadAndInitConfigs(GitCommit, GitTag, BuildTime)
	if err != nil {
		return nil, fmt.Errorf("failed to setup app configuration: %w", err)
	}

	// ensure the logs folder exists and Setup the logging module.
	err = os.MkdirAll(filepath.Dir(config.LogFile), 0o700)
	if err != nil {
		return nil, fmt.Errorf("failed to create logging folder: %w", err)
	}
	logFile, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create logging file: %w", err)
	}
	closer := func() {
		if cerr := logFile.Close(); cerr != nil {
			fmt.Println("error during closing of log file: ", cerr)
		}
	}

	clock := NewClock(config.IsProduction)
	logger, flusher := SetupLogging(config, logFile, NewTickClock(clock))

	cleanups := LogCleanups(flusher, closer)

	app, err := NewAppWith(logger, config, clock, NewIDsHandler(), os.Stdout)
	if err != nil {
		for _, f := range cleanups {
			f()
		}
		return nil, err
	}
	app.cleanups = cleanups
	return app, nil
}

// LogCleanups returns the cleanups to run on exit: buffered
// logs are flushed before the log file gets closed.
func LogCleanups(flusher func() error, closer func()) []func() {
	return []func(){
		func() {
			if ferr := flusher(); ferr != nil {
				fmt.Println("error during flushing of logs: ", ferr)
			}
		},
		closer,
	}
}

// NewAppWith wires the library from already built dependencies. Notifications
// and search summaries are written to out.
func NewAppWith(logger *zap.Logger, config *Config, clock Clocker, idsHandler UIDHandler, out io.Writer) (*App, error) {
	notifier, err := NewNotifier(logger, config.Notifier, out)
	if err != nil {
		return nil, fmt.Errorf("failed to setup notifier: %w", err)
	}
	return &App{
		logger:  logger,
		config:  config,
		factory: NewEntityFactory(clock, idsHandler),
		library: NewLibrary(logger, notifier, idsHandler, out),
	}, nil
}

// Clean calls all registered cleanups functions.
func (app *App) Clean() {
	for _, f := range app.cleanups {
		f()
	}
}

// Run executes the demo sequence against the in-memory library.
func (app *App) Run() error {
	defer app.Clean()
	app.logger.Info("app: demo starting", zap.String("app.notifier", app.config.Notifier))

	titles := []string{
		"The Go Programming Language", "Concurrency in Go", "Learning Go", "Go in Action",
		"Cloud Native Go", "Network Programming with Go", "Black Hat Go", "Go Web Programming",
		"Distributed Services with Go", "100 Go Mistakes",
	}
	var books []Book
	for i, title := range titles {
		createdAt := time.Date(2023, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		book := app.factory.NewBook(title, createdAt)
		books = append(books, book)
		app.library.AddBook(book)
	}

	for _, name := range []string{"Alice Martin", "Bob Stone", "Carla Alvarez"} {
		app.library.AddUser(app.factory.NewUser(name, time.Time{}))
	}

	app.library.FindBooksByTitle(app.config.Demo.BookQuery)
	app.library.FindUsersByName(app.config.Demo.UserQuery)

	size := app.config.Demo.PageSize
	for page := 1; ; page++ {
		items, err := app.library.GetBooks(page, size)
		if err != nil {
			app.logger.Error("app: failed to page books", zap.Int("page", page), zap.Int("size", size), zap.Error(err))
			break
		}
		if len(items) == 0 {
			break
		}
		app.logger.Info("app: books page", zap.Int("page", page), zap.Int("size", size), zap.Int("count", len(items)))
	}
	if users, err := app.library.GetUsers(1, size); err != nil {
		app.logger.Error("app: failed to page users", zap.Error(err))
	} else {
		app.logger.Info("app: users page", zap.Int("page", 1), zap.Int("count", len(users)))
	}

	deleted := books[0].GetID()
	app.library.DeleteBook(deleted)
	app.library.DeleteBook(deleted)
	app.library.DeleteUser(UserIDPrefix + ":unknown")

	app.logger.Info("app: demo done",
		zap.Int("books.count", app.library.CountBooks()),
		zap.Int("users.count", app.library.CountUsers()),
	)
	return nil
}
