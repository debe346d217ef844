package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/oggyb/spacematch/internal/config"
	"github.com/oggyb/spacematch/internal/metrics"
	_ "github.com/oggyb/spacematch/internal/rpc/jsoncodec" // registers the json codec
)

// NewGRPCServer builds a server with logging and metrics interceptors, the
// standard health service and reflection, and registers all provided services.
func NewGRPCServer(logger *slog.Logger, registrars ...Registrar) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryObserver(logger)))

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
	}

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	for name := range grpcServer.GetServiceInfo() {
		healthServer.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	// enable reflection for easier debugging with grpcurl
	reflection.Register(grpcServer)

	return grpcServer, healthServer
}

// StartGRPCServer listens on cfg.GRPC and serves until ctx is done, then
// drains in-flight calls.
func StartGRPCServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, registrars ...Registrar) error {
	addr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer, healthServer := NewGRPCServer(logger, registrars...)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}()

	logger.Info("gRPC server listening", "addr", lis.Addr().String())
	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// unaryObserver logs every call and records its latency and status code.
func unaryObserver(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		code := status.Code(err)
		metrics.RecordGRPC(info.FullMethod, code.String(), elapsed)

		if err != nil {
			logger.Warn("rpc failed", "method", info.FullMethod, "code", code.String(), "duration", elapsed, "err", err)
		} else {
			logger.Debug("rpc ok", "method", info.FullMethod, "duration", elapsed)
		}
		return resp, err
	}
}
