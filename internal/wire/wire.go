// Package wire provides dependency injection for the casedate application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/casedate/internal/adapters/cli"
	"github.com/example/casedate/internal/adapters/filesystem"
	"github.com/example/casedate/internal/adapters/sqlite"
	"github.com/example/casedate/internal/app"
	"github.com/example/casedate/internal/config"
	"github.com/example/casedate/internal/db"
	"github.com/example/casedate/internal/logging"
	"github.com/example/casedate/internal/ports/primary"
	"github.com/example/casedate/internal/ports/secondary"
)

// Options control how the singletons are built. They only take effect
// when passed to Configure before the first service is requested.
type Options struct {
	LedgerPath string    // empty means config.DefaultLedgerPath
	Verbose    bool      // debug logging
	LogOutput  io.Writer // defaults to stderr
}

var (
	opts         Options
	logger       *zap.Logger
	database     *sql.DB
	stampService primary.StampService
	runService   primary.RunService
	once         sync.Once
)

// Configure sets the options used to build the services.
func Configure(o Options) {
	opts = o
}

// Logger returns the singleton diagnostic logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// StampService returns the singleton StampService instance.
func StampService() primary.StampService {
	once.Do(initServices)
	return stampService
}

// RunService returns the singleton RunService instance.
func RunService() primary.RunService {
	once.Do(initServices)
	return runService
}

// DatasetStore returns a dataset store. It holds no state, so it does not
// open the ledger.
func DatasetStore() secondary.DatasetStore {
	return filesystem.NewCSVStore()
}

// Close flushes the logger and closes the ledger if it was opened.
func Close() error {
	if logger != nil {
		_ = logger.Sync()
	}
	if database != nil {
		return database.Close()
	}
	return nil
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger = logging.New(opts.Verbose, out)

	ledgerPath := opts.LedgerPath
	if ledgerPath == "" {
		var err error
		ledgerPath, err = config.DefaultLedgerPath()
		if err != nil {
			log.Fatalf("failed to resolve ledger path: %v", err)
		}
	}

	var err error
	database, err = db.Open(ledgerPath)
	if err != nil {
		log.Fatalf("failed to initialize ledger: %v", err)
	}
	logger.Debug("ledger opened", zap.String("path", ledgerPath))

	// Secondary ports
	store := filesystem.NewCSVStore()
	runRepo := sqlite.NewRunRepository(database)

	executor := app.NewEffectExecutor(store, runRepo, logger)

	// Primary ports
	stampService = app.NewStampService(store, executor, logger)
	runService = app.NewRunService(runRepo)
}

// StampAdapter returns a new StampAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func StampAdapter() *cliadapter.StampAdapter {
	return StampAdapterWithOutput(os.Stdout)
}

// StampAdapterWithOutput returns a new StampAdapter writing to the given output.
func StampAdapterWithOutput(out io.Writer) *cliadapter.StampAdapter {
	once.Do(initServices)
	return cliadapter.NewStampAdapter(stampService, out)
}

// RunAdapter returns a new RunAdapter writing to stdout.
func RunAdapter() *cliadapter.RunAdapter {
	return RunAdapterWithOutput(os.Stdout)
}

// RunAdapterWithOutput returns a new RunAdapter writing to the given output.
func RunAdapterWithOutput(out io.Writer) *cliadapter.RunAdapter {
	once.Do(initServices)
	return cliadapter.NewRunAdapter(runService, out)
}
