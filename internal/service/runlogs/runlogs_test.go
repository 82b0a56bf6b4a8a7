package runlogs_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/juanspinelli/dagster/internal/logstream"
	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
	runlogssvc "github.com/juanspinelli/dagster/internal/service/runlogs"
	runlogsmock "github.com/juanspinelli/dagster/internal/service/runlogs/mock"
)

func TestTailRun(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := runlogsmock.NewMockRepository(ctrl)
	streamer := runlogsmock.NewMockStreamer(ctrl)

	s := runlogssvc.New(validator.New(), repo, streamer, logstream.QueryTokenizer{})

	tests := []struct {
		name  string
		req   *runlogssvc.TailRunRequest
		mock  func(req *runlogssvc.TailRunRequest)
		isErr bool
	}{
		{
			name: "success",
			req: &runlogssvc.TailRunRequest{
				RunID: "run1",
			},
			mock: func(req *runlogssvc.TailRunRequest) {
				repo.EXPECT().GetRun(gomock.Any(), req.RunID).Return(&runsmodel.GetRunResponse{ID: req.RunID}, nil)
				repo.EXPECT().SeedStatusRecord(gomock.Any(), req.RunID).Return(nil)
				streamer.EXPECT().SetFilter(gomock.Any())
				streamer.EXPECT().Bind(gomock.Any(), req.RunID).Return(nil)
			},
		},
		{
			name: "success with query and since",
			req: &runlogssvc.TailRunRequest{
				RunID: "run1",
				Query: "step:load timeout",
				Since: 1700000000000,
			},
			mock: func(req *runlogssvc.TailRunRequest) {
				repo.EXPECT().GetRun(gomock.Any(), req.RunID).Return(&runsmodel.GetRunResponse{ID: req.RunID}, nil)
				repo.EXPECT().SeedStatusRecord(gomock.Any(), req.RunID).Return(nil)
				streamer.EXPECT().SetFilter(gomock.Any()).Do(func(f *logstream.Filter) {
					if len(f.Values) != 2 {
						t.Errorf("expected 2 filter values, got %d", len(f.Values))
					}
					if f.Since != req.Since {
						t.Errorf("expected since %d, got %d", req.Since, f.Since)
					}
				})
				streamer.EXPECT().Bind(gomock.Any(), req.RunID).Return(nil)
			},
		},
		{
			name: "error: missing run id",
			req: &runlogssvc.TailRunRequest{
				RunID: "",
			},
			mock:  func(_ *runlogssvc.TailRunRequest) {},
			isErr: true,
		},
		{
			name: "error: negative since",
			req: &runlogssvc.TailRunRequest{
				RunID: "run1",
				Since: -1,
			},
			mock:  func(_ *runlogssvc.TailRunRequest) {},
			isErr: true,
		},
		{
			name: "error: run not found",
			req: &runlogssvc.TailRunRequest{
				RunID: "missing",
			},
			mock: func(req *runlogssvc.TailRunRequest) {
				repo.EXPECT().GetRun(gomock.Any(), req.RunID).Return(
					nil, status.Error(codes.NotFound, "run not found"),
				)
			},
			isErr: true,
		},
		{
			name: "error: failed to seed status record",
			req: &runlogssvc.TailRunRequest{
				RunID: "run1",
			},
			mock: func(req *runlogssvc.TailRunRequest) {
				repo.EXPECT().GetRun(gomock.Any(), req.RunID).Return(&runsmodel.GetRunResponse{ID: req.RunID}, nil)
				repo.EXPECT().SeedStatusRecord(gomock.Any(), req.RunID).Return(
					status.Error(codes.Internal, "cache unavailable"),
				)
			},
			isErr: true,
		},
		{
			name: "error: failed to bind",
			req: &runlogssvc.TailRunRequest{
				RunID: "run1",
			},
			mock: func(req *runlogssvc.TailRunRequest) {
				repo.EXPECT().GetRun(gomock.Any(), req.RunID).Return(&runsmodel.GetRunResponse{ID: req.RunID}, nil)
				repo.EXPECT().SeedStatusRecord(gomock.Any(), req.RunID).Return(nil)
				streamer.EXPECT().SetFilter(gomock.Any())
				streamer.EXPECT().Bind(gomock.Any(), req.RunID).Return(
					status.Error(codes.Unavailable, "broker unreachable"),
				)
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock(tt.req)

			err := s.TailRun(t.Context(), tt.req)
			if tt.isErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSetQuery(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := runlogsmock.NewMockRepository(ctrl)
	streamer := runlogsmock.NewMockStreamer(ctrl)

	s := runlogssvc.New(validator.New(), repo, streamer, logstream.QueryTokenizer{})

	streamer.EXPECT().SetFilter(gomock.Any()).Do(func(f *logstream.Filter) {
		if len(f.Values) != 1 || f.Values[0].Token != logstream.TokenType {
			t.Errorf("expected a single type criterion, got %v", f.Values)
		}
		if f.Since != 42 {
			t.Errorf("expected since 42, got %d", f.Since)
		}
	})

	s.SetQuery(t.Context(), "type:materialization", 42)
}

func TestSelectSteps(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := runlogsmock.NewMockRepository(ctrl)
	streamer := runlogsmock.NewMockStreamer(ctrl)

	s := runlogssvc.New(validator.New(), repo, streamer, logstream.QueryTokenizer{})

	streamer.EXPECT().SetSelectedSteps([]string{"load", "transform"})

	s.SelectSteps(t.Context(), []string{"load", "transform"})
}

func TestFilterSuggestions(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := runlogsmock.NewMockRepository(ctrl)
	streamer := runlogsmock.NewMockStreamer(ctrl)

	s := runlogssvc.New(validator.New(), repo, streamer, logstream.QueryTokenizer{})

	tests := []struct {
		name  string
		req   *runlogssvc.FilterSuggestionsRequest
		mock  func(req *runlogssvc.FilterSuggestionsRequest)
		want  int
		isErr bool
	}{
		{
			name: "success",
			req: &runlogssvc.FilterSuggestionsRequest{
				RunID: "run1",
			},
			mock: func(req *runlogssvc.FilterSuggestionsRequest) {
				repo.EXPECT().ListRunStepKeys(gomock.Any(), req.RunID).Return(
					[]string{"load", "transform"}, nil,
				)
			},
			want: 2,
		},
		{
			name: "error: missing run id",
			req: &runlogssvc.FilterSuggestionsRequest{
				RunID: "",
			},
			mock:  func(_ *runlogssvc.FilterSuggestionsRequest) {},
			isErr: true,
		},
		{
			name: "error: failed to list step keys",
			req: &runlogssvc.FilterSuggestionsRequest{
				RunID: "run1",
			},
			mock: func(req *runlogssvc.FilterSuggestionsRequest) {
				repo.EXPECT().ListRunStepKeys(gomock.Any(), req.RunID).Return(
					nil, status.Error(codes.Internal, "database unavailable"),
				)
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock(tt.req)

			suggestions, err := s.FilterSuggestions(t.Context(), tt.req)
			if tt.isErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(suggestions) != tt.want {
				t.Errorf("expected %d suggestion groups, got %d", tt.want, len(suggestions))
			}
		})
	}
}

func TestStop(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := runlogsmock.NewMockRepository(ctrl)
	streamer := runlogsmock.NewMockStreamer(ctrl)

	s := runlogssvc.New(validator.New(), repo, streamer, logstream.QueryTokenizer{})

	streamer.EXPECT().Unbind()

	s.Stop()
}
