package redisstream_test

import (
	"testing"

	"github.com/go-redis/redismock/v9"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/juanspinelli/dagster/internal/logstream"
	redispkg "github.com/juanspinelli/dagster/internal/pkg/redis"
	"github.com/juanspinelli/dagster/internal/repository/redisstream"
)

func TestOpenValidation(t *testing.T) {
	client, _ := redismock.NewClientMock()
	repo := redisstream.New(redispkg.NewWithClient(client))

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
