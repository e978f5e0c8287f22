package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"

	"github.com/oshokin/desk-planner/internal/logger"
)

// TestResolveListenAddress covers overrides, port extraction and missing addresses.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	addr, err := resolveListenAddress("desks.local:50061", "")
	require.NoError(t, err)
	require.Equal(t, ":50061", addr)

	addr, err = resolveListenAddress("desks.local:50061", "127.0.0.1:9090")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", addr)

	_, err = resolveListenAddress("", "")
	require.ErrorIs(t, err, ErrNoServerAddress)

	_, err = resolveListenAddress("no-port", "")
	require.Error(t, err)
}

// TestLoggingInterceptor passes the call through and logs it with the method name.
func TestLoggingInterceptor(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	base := logger.ToContext(context.Background(), zap.New(core).Sugar())

	interceptor := loggingInterceptor(base)
	info := &grpc.UnaryServerInfo{FullMethod: "/desks.v1.DeskLayoutService/CheckOrder"}

	resp, err := interceptor(context.Background(), "request", info, func(ctx context.Context, req any) (any, error) {
		logger.Info(ctx, "handled")

		return req, nil
	})
	require.NoError(t, err)
	require.Equal(t, "request", resp)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, info.FullMethod, entries[1].ContextMap()["method"])
	require.Equal(t, "OK", entries[1].ContextMap()["code"])
}
