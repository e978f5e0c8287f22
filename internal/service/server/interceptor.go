package server

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/oshokin/desk-planner/internal/logger"
)

// loggingInterceptor hands the server logger to handlers and logs every call.
func loggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	named := logger.FromContext(base)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.WithKV(logger.ToContext(ctx, named), "method", info.FullMethod)
		started := time.Now()

		resp, err := handler(ctx, req)

		logger.DebugKV(ctx, "Call finished", "code", status.Code(err).String(), "duration", time.Since(started))

		return resp, err
	}
}
