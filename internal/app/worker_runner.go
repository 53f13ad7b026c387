package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-lastmile/internal/logx"
	"service-lastmile/internal/transport/kafka"
)

// WorkerRunner runs the order-events consumer
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes order events until the container context is done
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerDeps struct {
	dig.In

	Ctx       context.Context
	Logger    logx.Logger
	Consumer  *kafka.Consumer
	Pool      *pgxpool.Pool   `optional:"true"`
	Publisher publisherCloser `optional:"true"`
	Tracer    tracerShutdown  `optional:"true"`
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(in workerDeps) error {
	if in.Consumer == nil {
		return fmt.Errorf("kafka consumer is nil: worker container misconfigured")
	}
	defer closeWorker(in)

	in.Logger.Info("service-lastmile-worker started")
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(in workerDeps) {
	if err := in.Consumer.Close(); err != nil {
		in.Logger.Error("kafka consumer close error", logx.Err(err))
	}
	if in.Publisher != nil {
		if err := in.Publisher(); err != nil {
			in.Logger.Error("kafka producer close error", logx.Err(err))
		}
	}
	if in.Tracer != nil {
		if err := in.Tracer(context.Background()); err != nil {
			in.Logger.Error("tracer shutdown error", logx.Err(err))
		}
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
