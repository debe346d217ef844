package server

import (
	"context"
	"net"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/oggyb/spacematch/internal/metrics"
	pb "github.com/oggyb/spacematch/internal/rpc/spacematchpb"
	"github.com/oggyb/spacematch/internal/testinfra"
)

var unimplementedRegistrar = RegistrarFunc(func(s *grpc.Server) {
	pb.RegisterSpaceMatchServiceServer(s, pb.UnimplementedSpaceMatchServiceServer{})
})

func dial(t *testing.T, srv *grpc.Server) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHealthReportsRegisteredServices(t *testing.T) {
	srv, _ := NewGRPCServer(testinfra.Logger(), unimplementedRegistrar)
	conn := dial(t, srv)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: pb.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestInterceptorRecordsStatusCode(t *testing.T) {
	srv, _ := NewGRPCServer(testinfra.Logger(), unimplementedRegistrar)
	conn := dial(t, srv)

	method := pb.FullMethod(pb.GetFeedMethod)
	before := testutil.ToFloat64(metrics.GRPCRequests.WithLabelValues(method, codes.Unimplemented.String()))

	_, err := pb.NewSpaceMatchServiceClient(conn).GetFeed(context.Background(), &pb.GetFeedRequest{SeekerId: "s1"})
	assert.Equal(t, codes.Unimplemented, status.Code(err))

	after := testutil.ToFloat64(metrics.GRPCRequests.WithLabelValues(method, codes.Unimplemented.String()))
	assert.Equal(t, before+1, after)
}
