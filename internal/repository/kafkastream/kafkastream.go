package kafkastream

import (
	"context"
	"io"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/juanspinelli/dagster/internal/logstream"
	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
	kafkapkg "github.com/juanspinelli/dagster/internal/pkg/kafka"
	loggerpkg "github.com/juanspinelli/dagster/internal/pkg/logger"
)

// partition is the single partition run log topics are produced to,
// keeping per-run delivery ordered.
const partition int32 = 0

// Repository implements the log channel over Kafka. Each run has its own
// single-partition topic; every record carries one wire batch and the
// resume cursor is the offset of the next record to consume.
type Repository struct {
	brokers []string
}

// New creates a new Kafka log stream repository.
func New(brokers ...string) *Repository {
	return &Repository{
		brokers: brokers,
	}
}

// subscription is one open run log subscription.
type subscription struct {
	client *kgo.Client
	cancel context.CancelFunc
	g      *errgroup.Group
}

// Close stops the poll loop and closes the Kafka client. Idempotent.
func (s *subscription) Close() error {
	s.cancel()
	s.client.Close()
	return s.g.Wait()
}

// Open starts consuming the run's log topic at the request cursor (or
// from the beginning when the cursor is empty) and delivers decoded
// batches to onBatch. The first batch after Open is flagged as the first
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

	offset := kgo.NewOffset().AtStart()
	if req.Cursor != "" {
		at, err := strconv.ParseInt(req.Cursor, 10, 64)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid resume cursor: %v", err)
		}
		offset = kgo.NewOffset().At(at)
	}

	client, err := kafkapkg.New(ctx,
		kafkapkg.WithBrokers(r.brokers...),
		kafkapkg.WithConsumePartitions(
			kafkapkg.GetRunLogsTopic(req.RunID),
			map[int32]kgo.Offset{partition: offset},
		),
	)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	sub := &subscription{
		client: client,
		cancel: cancel,
		g:      g,
	}

	g.Go(func() error {
		r.poll(gctx, req.RunID, client, onBatch, onError)
		return nil
	})

	return sub, nil
}

// poll delivers fetched records until the subscription is closed.
func (r *Repository) poll(
	ctx context.Context,
	runID string,
	client *kgo.Client,
	onBatch func(batch *runsmodel.LogBatch, firstResponse bool),
	onError func(err error),
) {
	logger := loggerpkg.FromContext(ctx)
	first := true

	for {
		fetches := client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return
		}

		fetches.EachError(func(topic string, p int32, err error) {
			onError(status.Errorf(codes.Unavailable, "failed to fetch from %s/%d: %v", topic, p, err))
		})

		fetches.EachRecord(func(rec *kgo.Record) {
			batch, err := runsmodel.UnmarshalBatch(rec.Value)
			if err != nil {
				// A malformed record is not a transport failure; skip it
				// and keep consuming.
				logger.Warn("failed to decode run log batch",
					zap.String("run_id", runID),
					zap.Int64("offset", rec.Offset),
					zap.Error(err),
				)
				return
			}

			batch.Cursor = strconv.FormatInt(rec.Offset+1, 10)
			onBatch(batch, first)
			first = false
		})
	}
}
