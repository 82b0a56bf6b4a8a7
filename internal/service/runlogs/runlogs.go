//go:generate mockgen -source=$GOFILE -package=mock -destination=./mock/$GOFILE

package runlogs

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/juanspinelli/dagster/internal/logstream"
	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
	svcpkg "github.com/juanspinelli/dagster/internal/pkg/svc"
)

// Repository provides run related storage operations.
type Repository interface {
	GetRun(ctx context.Context, runID string) (*runsmodel.GetRunResponse, error)
	ListRunStepKeys(ctx context.Context, runID string) ([]string, error)
	SeedStatusRecord(ctx context.Context, runID string) error
}

// Streamer owns one log stream subscription.
type Streamer interface {
	Bind(ctx context.Context, runID string) error
	Unbind()
	SetFilter(f *logstream.Filter)
	SetSelectedSteps(stepKeys []string)
}

// Service provides run log streaming operations.
type Service struct {
	validator *validator.Validate
	tp        trace.Tracer
	repo      Repository
	streamer  Streamer
	tokenizer logstream.Tokenizer
}

// New creates a new runlogs service.
func New(validator *validator.Validate, repo Repository, streamer Streamer, tokenizer logstream.Tokenizer) *Service {
	return &Service{
		validator: validator,
		tp:        otel.Tracer(svcpkg.Info().GetName()),
		repo:      repo,
		streamer:  streamer,
		tokenizer: tokenizer,
	}
}

// TailRunRequest holds the request parameters for tailing a run's logs.
type TailRunRequest struct {
	RunID string `validate:"required"`
	Query string
	Since int64 `validate:"gte=0"`
}

// TailRun resolves the run, seeds its status cache record and binds the
// streamer to the run's log stream with a filter built from the query.
func (s *Service) TailRun(ctx context.Context, req *TailRunRequest) (err error) {
	ctx, span := s.tp.Start(ctx, "Service.TailRun")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	// Validate the request
	if err = s.validator.Struct(req); err != nil {
		err = status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
		return err
	}

	if _, err = s.repo.GetRun(ctx, req.RunID); err != nil {
		return err
	}

	if err = s.repo.SeedStatusRecord(ctx, req.RunID); err != nil {
		return err
	}

	filter := logstream.DefaultFilter(s.tokenizer.Tokenize(req.Query))
	filter.Since = req.Since
	s.streamer.SetFilter(filter)

	return s.streamer.Bind(ctx, req.RunID)
}

// SetQuery replaces the active filter with one built from the query.
func (s *Service) SetQuery(ctx context.Context, query string, since int64) {
	_, span := s.tp.Start(ctx, "Service.SetQuery")
	defer span.End()

	filter := logstream.DefaultFilter(s.tokenizer.Tokenize(query))
	filter.Since = since
	s.streamer.SetFilter(filter)
}

// SelectSteps replaces the step selection consulted by query tokens.
func (s *Service) SelectSteps(ctx context.Context, stepKeys []string) {
	_, span := s.tp.Start(ctx, "Service.SelectSteps")
	defer span.End()

	s.streamer.SetSelectedSteps(stepKeys)
}

// FilterSuggestionsRequest holds the request parameters for filter
// suggestions.
type FilterSuggestionsRequest struct {
	RunID string `validate:"required"`
}

// FilterSuggestions returns the advisory filter suggestions for the run:
// its step keys and the structured event type names.
func (s *Service) FilterSuggestions(ctx context.Context, req *FilterSuggestionsRequest) (suggestions []logstream.Suggestion, err error) {
	ctx, span := s.tp.Start(ctx, "Service.FilterSuggestions")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	// Validate the request
	if err = s.validator.Struct(req); err != nil {
		err = status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
		return nil, err
	}

	stepKeys, err := s.repo.ListRunStepKeys(ctx, req.RunID)
	if err != nil {
		return nil, err
	}

	return logstream.Suggestions(stepKeys), nil
}

// Stop unbinds the active subscription, if any.
func (s *Service) Stop() {
	s.streamer.Unbind()
}
