// Package server wires the fraudcheck backend together: database and
// migrations, object storage, services, the gRPC API and the ops HTTP
// server, and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/fraudcheck/internal/logging"
	"github.com/dmitrijs2005/fraudcheck/internal/server/config"
	"github.com/dmitrijs2005/fraudcheck/internal/server/ops"
	"github.com/dmitrijs2005/fraudcheck/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fraudcheck/internal/server/services"
	"github.com/dmitrijs2005/fraudcheck/internal/server/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/fraudcheck/internal/server/grpc"
)

// seams for tests
var (
	openDB         = repomanager.OpenDB
	newRepoManager = repomanager.NewPostgresRepositoryManager
	newObjectStore = func(ctx context.Context, c *config.Config) (services.ObjectStore, error) {
		return storage.NewS3Store(ctx, c)
	}
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	grpcServer runner
	opsServer  runner
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, parseLevel(c.LogLevel))

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	store, err := newObjectStore(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	us := services.NewUserService(db, rm, c)
	rs := services.NewRecordService(db, rm, store, c)

	// JSON carries file bytes as base64, hence the headroom over the upload limit
	maxMsg := int(c.MaxUploadBytes())*2 + 1<<20

	grpcServer := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, rs, c.SecretKey,
		gs.WithMaxRecvMsgSize(maxMsg),
		gs.WithMetrics(gs.NewMetrics(reg)),
	)
	opsServer := ops.NewServer(c.EndpointAddrOps, logger, db, reg)

	return &App{config: c, logger: logger, db: db, grpcServer: grpcServer, opsServer: opsServer}, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, name+" stopped", "error", err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc server", app.grpcServer)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "ops server", app.opsServer)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
