package spacematch

import (
	"google.golang.org/grpc"

	"github.com/oggyb/spacematch/internal/app"
	pb "github.com/oggyb/spacematch/internal/rpc/spacematchpb"
)

// Registrar ties the SpaceMatch service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the SpaceMatch service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the SpaceMatch service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterSpaceMatchServiceServer(s, NewSpaceMatchService(r.appCtx))
}
