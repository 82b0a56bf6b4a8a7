package kafkastream_test

import (
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/juanspinelli/dagster/internal/logstream"
	"github.com/juanspinelli/dagster/internal/repository/kafkastream"
)

func TestOpenValidation(t *testing.T) {
	repo := kafkastream.New("localhost:9092")

	tests := []struct {
		name string
		req  *logstream.Request
	}{
		{
			name: "error: nil request",
			req:  nil,
		},
		{
			name: "error: missing run id",
			req:  &logstream.Request{},
		},
		{
			name: "error: non-numeric resume cursor",
			req:  &logstream.Request{RunID: "run1", Cursor: "latest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Open(t.Context(), tt.req, nil, nil)
			if status.Code(err) != codes.InvalidArgument {
				t.Fatalf("expected InvalidArgument, got %v", err)
			}
		})
	}
}
