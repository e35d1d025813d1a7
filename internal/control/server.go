package control

import (
	"context"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/signalsfoundry/eventkernel/core"
	"github.com/signalsfoundry/eventkernel/internal/logging"
)

// Server wraps a *core.Simulation with a gRPC health endpoint, reporting
// SERVING once the simulation has been constructed and NOT_SERVING after
// Shutdown is called. It carries no domain-specific RPCs of its own: a
// caller driving the kernel remotely is expected to front it with its own
// service definitions and use Server only for health/liveness plumbing and
// the interceptor chain.
type Server struct {
	log     logging.Logger
	health  *health.Server
	grpc    *grpc.Server
	mu      sync.Mutex
	sim     *core.Simulation
	serving bool
}

const healthServiceName = "eventkernel.control.Simulation"

// NewServer builds a *grpc.Server with the request-id interceptor and
// otelgrpc stats handler installed, registers the standard gRPC health
// service against it, and marks sim as serving.
func NewServer(sim *core.Simulation, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}

	s := &Server{
		log:    log,
		health: health.NewServer(),
		sim:    sim,
	}

	s.grpc = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(RequestIDUnaryServerInterceptor(log)),
	)
	healthpb.RegisterHealthServer(s.grpc, s.health)

	s.setServing(true)
	return s
}

// GRPCServer returns the underlying *grpc.Server so a caller can register
// additional services onto it before calling Serve.
func (s *Server) GRPCServer() *grpc.Server { return s.grpc }

// Simulation returns the wrapped simulation.
func (s *Server) Simulation() *core.Simulation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim
}

func (s *Server) setServing(ok bool) {
	s.mu.Lock()
	s.serving = ok
	s.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(healthServiceName, status)
	s.health.SetServingStatus("", status)
}

// Shutdown marks the service NOT_SERVING and gracefully stops the gRPC
// server.
func (s *Server) Shutdown(ctx context.Context) {
	s.setServing(false)
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
	}
}
