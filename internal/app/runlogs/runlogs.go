//go:generate mockgen -source=$GOFILE -package=mock -destination=./mock/$GOFILE

package runlogs

import (
	"context"

	"go.uber.org/zap"

	loggerpkg "github.com/juanspinelli/dagster/internal/pkg/logger"
	runlogssvc "github.com/juanspinelli/dagster/internal/service/runlogs"
)

// Service provides run log streaming operations.
type Service interface {
	TailRun(ctx context.Context, req *runlogssvc.TailRunRequest) error
	Stop()
}

// Tail represents the run log tail.
type Tail struct {
	logger *zap.Logger
	svc    Service
}

// New creates a new run log tail.
func New(ctx context.Context, svc Service) *Tail {
	return &Tail{
		logger: loggerpkg.FromContext(ctx),
		svc:    svc,
	}
}

// Run tails the run's log stream until the context is canceled.
func (t *Tail) Run(ctx context.Context, req *runlogssvc.TailRunRequest) error {
	if err := t.svc.TailRun(ctx, req); err != nil {
		t.logger.Error("failed to tail run logs",
			zap.String("run_id", req.RunID),
			zap.Error(err),
		)
		return err
	}

	t.logger.Info("tailing run logs", zap.String("run_id", req.RunID))
	<-ctx.Done()

	t.svc.Stop()
	t.logger.Info("stopped tailing run logs", zap.String("run_id", req.RunID))

	return nil
}
