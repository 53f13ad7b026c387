// Command service-lastmile-worker consumes order events and opens deliveries for them.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"service-lastmile/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.NewWorkerRunner().MustRun(app.NewContainerBuilder().MustBuildWorker(ctx))
}
