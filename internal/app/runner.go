package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"service-lastmile/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the HTTP API
type Runner struct {
	runFn func(*dig.Container) error
	exit  func(int)
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run, exit: os.Exit}
}

// MustRun starts the HTTP server using the provided DI container and blocks until shutdown
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	logger := containerLogger(container)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		if r.exit != nil {
			r.exit(1)
		}
	}
}

func containerLogger(container *dig.Container) logx.Logger {
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

type runDeps struct {
	dig.In

	Ctx       context.Context
	Server    *http.Server
	Logger    logx.Logger
	Pool      *pgxpool.Pool   `optional:"true"`
	Publisher publisherCloser `optional:"true"`
	Tracer    tracerShutdown  `optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in runDeps) error {
	g, gctx := errgroup.WithContext(in.Ctx)

	g.Go(func() error { return serve(in.Server, in.Logger) })
	g.Go(func() error {
		<-gctx.Done()
		in.Logger.Info("shutting down service-lastmile")
		gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
		return nil
	})

	err := g.Wait()
	closeResources(in)
	if err != nil {
		return err
	}
	return in.Ctx.Err()
}

func serve(server *http.Server, logger logx.Logger) error {
	logger.Info("service-lastmile listening", logx.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(in runDeps) {
	if err := in.Server.Close(); err != nil {
		in.Logger.Error("server close error", logx.Err(err))
	}
	if in.Publisher != nil {
		if err := in.Publisher(); err != nil {
			in.Logger.Error("kafka producer close error", logx.Err(err))
		}
	}
	if in.Tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := in.Tracer(ctx); err != nil {
			in.Logger.Error("tracer shutdown error", logx.Err(err))
		}
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
