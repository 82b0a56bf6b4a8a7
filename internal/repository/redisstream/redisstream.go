package redisstream

import (
	"context"
	"io"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/juanspinelli/dagster/internal/logstream"
	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
	loggerpkg "github.com/juanspinelli/dagster/internal/pkg/logger"
	redispkg "github.com/juanspinelli/dagster/internal/pkg/redis"
)

// Repository implements the log channel over Redis pub/sub. One channel
// per run id carries wire batches published by the log producer. Pub/sub
// keeps no history, so the resume cursor is advisory only and delivery
// starts at the next published batch.
type Repository struct {
	rdb *redispkg.Store
}

// New creates a new Redis log stream repository.
func New(rdb *redispkg.Store) *Repository {
	return &Repository{
		rdb: rdb,
	}
}

// subscription is one open run log subscription.
type subscription struct {
	pubsub io.Closer
	cancel context.CancelFunc
	done   chan struct{}
}

// Close unsubscribes and waits for the receive loop to stop. Idempotent
// via the underlying pub/sub close.
func (s *subscription) Close() error {
	s.cancel()
	err := s.pubsub.Close()
	<-s.done
	return err
}

// Open subscribes to the run's log channel and delivers decoded batches
// to onBatch. The first batch after Open is flagged as the first
// response.
func (r *Repository) Open(
	ctx context.Context,
	req *logstream.Request,
	onBatch func(batch *runsmodel.LogBatch, firstResponse bool),
	onError func(err error),
) (io.Closer, error) {
	if req == nil || req.RunID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "missing run id")
	}

	ctx, cancel := context.WithCancel(ctx)
	pubsub := r.rdb.Subscribe(ctx, redispkg.GetRunLogsChannel(req.RunID))

	sub := &subscription{
		pubsub: pubsub,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)

		logger := loggerpkg.FromContext(ctx)
		first := true
		ch := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				batch, err := runsmodel.UnmarshalBatch([]byte(msg.Payload))
				if err != nil {
					// A malformed payload is not a transport failure;
					// skip it and keep the subscription alive.
					logger.Warn("failed to decode run log batch",
						zap.String("run_id", req.RunID),
						zap.Error(err),
					)
					continue
				}

				onBatch(batch, first)
				first = false
			}
		}
	}()

	return sub, nil
}
