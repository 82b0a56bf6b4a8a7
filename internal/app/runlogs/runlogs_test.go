package runlogs_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apppkg "github.com/juanspinelli/dagster/internal/app/runlogs"
	appmock "github.com/juanspinelli/dagster/internal/app/runlogs/mock"
	runlogssvc "github.com/juanspinelli/dagster/internal/service/runlogs"
)

func TestRun(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := appmock.NewMockService(ctrl)
	app := apppkg.New(t.Context(), svc)

	req := &runlogssvc.TailRunRequest{RunID: "run1"}

	ctx, cancel := context.WithCancel(t.Context())

	svc.EXPECT().TailRun(gomock.Any(), req).Return(nil)
	svc.EXPECT().Stop()

	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx, req)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected Run to return after context cancellation")
	}
}

func TestRunTailError(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := appmock.NewMockService(ctrl)
	app := apppkg.New(t.Context(), svc)

	req := &runlogssvc.TailRunRequest{RunID: "missing"}

	svc.EXPECT().TailRun(gomock.Any(), req).Return(
		status.Error(codes.NotFound, "run not found"),
	)

	if err := app.Run(t.Context(), req); err == nil {
		t.Fatal("expected error, got nil")
	}
}
