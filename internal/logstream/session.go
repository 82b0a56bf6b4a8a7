package logstream

import (
	"context"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
	loggerpkg "github.com/juanspinelli/dagster/internal/pkg/logger"
	svcpkg "github.com/juanspinelli/dagster/internal/pkg/svc"
)

// Update is delivered to the consumer callback after every state change.
// Epoch advances whenever the accumulated sequence is reset and key
// numbering restarts; consumers tracking keys must discard them on an
// epoch change.
type Update struct {
	AllEvents      []Accumulated
	FilteredEvents []Accumulated
	Loaded         bool
	Epoch          int
}

// UpdateFunc consumes session updates. It is invoked synchronously after
// each state mutation; no error or panic crosses this boundary from the
// session side.
type UpdateFunc func(update *Update)

// Session owns the lifecycle of one log stream subscription for one run
// id: it feeds inbound batches through the accumulator and the status
// projector, recomputes the filtered view and invokes the consumer
// callback. Batches are serialized under the session mutex; the channel
// primitive owns reconnection.
type Session struct {
	mu sync.Mutex

	channel Channel
	tp      trace.Tracer
	logger  *zap.Logger

	onUpdate UpdateFunc

	filter        *Filter
	selectedSteps []string

	acc    *Accumulator
	proj   *Projector
	runID  string
	closer io.Closer
	loaded bool
}

// NewSession creates a session over the given channel and status cache.
func NewSession(ctx context.Context, channel Channel, cache StatusCache, onUpdate UpdateFunc) *Session {
	return &Session{
		channel:  channel,
		tp:       otel.Tracer(svcpkg.Info().GetName()),
		logger:   loggerpkg.FromContext(ctx),
		onUpdate: onUpdate,
		filter:   DefaultFilter(nil),
		acc:      NewAccumulator(),
		proj:     NewProjector(cache),
	}
}

// Bind subscribes the session to the given run id. Any prior binding is
// released first: the old channel is closed and the accumulated state is
// cleared before the new subscription is opened, so a stale and a fresh
// subscription never write into the same sequence. An empty run id only
// unbinds.
func (s *Session) Bind(ctx context.Context, runID string) error {
	s.mu.Lock()
	stale, staleRunID := s.detachLocked()
	s.mu.Unlock()

	s.closeDetached(stale, staleRunID)

	if runID == "" {
		return nil
	}

	onBatch := func(batch *runsmodel.LogBatch, firstResponse bool) {
		s.consume(ctx, runID, batch, firstResponse)
	}
	onError := func(err error) {
		// Reconnection policy belongs to the channel primitive; the next
		// successful batch arrives flagged as a first response.
		s.logger.Error("log channel error",
			zap.String("run_id", runID),
			zap.Error(err),
		)
	}

	// Opening under the mutex keeps batches delivered by the new channel
	// waiting until the binding is recorded; channels deliver from their
	// own goroutines.
	s.mu.Lock()
	defer s.mu.Unlock()

	closer, err := s.channel.Open(ctx, &Request{RunID: runID}, onBatch, onError)
	if err != nil {
		return err
	}

	s.runID = runID
	s.closer = closer
	return nil
}

// Unbind closes the active subscription, if any. It is idempotent.
func (s *Session) Unbind() {
	s.mu.Lock()
	stale, staleRunID := s.detachLocked()
	s.mu.Unlock()

	s.closeDetached(stale, staleRunID)
}

// detachLocked clears the active binding and hands the closer back to be
// closed outside the mutex.
func (s *Session) detachLocked() (io.Closer, string) {
	if s.closer == nil && s.runID == "" {
		return nil, ""
	}

	closer, runID := s.closer, s.runID
	s.closer = nil
	s.runID = ""
	s.loaded = false
	s.acc.Reset()
	s.notifyLocked(nil)

	return closer, runID
}

// closeDetached closes a detached channel. It must run without the
// session mutex: the transports join their delivery goroutine in Close,
// and an in-flight batch needs the mutex to hit the stale-run guard.
func (s *Session) closeDetached(closer io.Closer, runID string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		s.logger.Warn("failed to close log channel",
			zap.String("run_id", runID),
			zap.Error(err),
		)
	}
}

// SetFilter replaces the active filter and recomputes the filtered view.
// A nil filter restores the default.
func (s *Session) SetFilter(f *Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == nil {
		f = DefaultFilter(nil)
	}
	s.filter = f
	s.notifyLocked(s.acc.Events())
}

// SetSelectedSteps replaces the step selection consulted by query tokens
// and recomputes the filtered view.
func (s *Session) SetSelectedSteps(stepKeys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedSteps = stepKeys
	s.notifyLocked(s.acc.Events())
}

// consume processes one inbound batch: accumulate, project, filter,
// notify, in that order and under the session mutex.
func (s *Session) consume(ctx context.Context, runID string, batch *runsmodel.LogBatch, firstResponse bool) {
	ctx, span := s.tp.Start(ctx, "Session.consume")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	// A batch from a stale subscription must not touch fresh state.
	if runID != s.runID {
		return
	}

	all := s.acc.Ingest(batch, firstResponse)
	s.loaded = true

	if !batch.Failure {
		if err := s.proj.Project(ctx, runID, batch.Events); err != nil {
			// Best-effort projection; the accumulated sequence stays
			// authoritative.
			s.logger.Error("failed to project run status",
				zap.String("run_id", runID),
				zap.Error(err),
			)
		}
	}

	s.notifyLocked(all)
}

func (s *Session) notifyLocked(all []Accumulated) {
	if s.onUpdate == nil {
		return
	}

	s.onUpdate(&Update{
		AllEvents:      all,
		FilteredEvents: Apply(all, s.filter, s.selectedSteps),
		Loaded:         s.loaded,
		Epoch:          s.acc.Epoch(),
	})
}
