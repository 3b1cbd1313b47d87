package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/msto63/mZW/pkg/core/config"
	corehealth "github.com/msto63/mZW/pkg/core/health"
	"github.com/msto63/mZW/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host              string
	Port              int
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	EnableReflection  bool
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
	Logger            *logging.Logger
}

// DefaultServerConfig returns a default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "0.0.0.0",
		Port:              9400,
		MaxRecvMsgSize:    4 * 1024 * 1024, // 4MB
		MaxSendMsgSize:    16 * 1024 * 1024, // 16MB
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// ServerConfigFrom derives a server configuration from the server section
func ServerConfigFrom(cfg *config.Config) ServerConfig {
	sc := DefaultServerConfig()
	if cfg == nil {
		return sc
	}
	sc.Host = cfg.Server.Host
	sc.Port = cfg.Server.Port
	if cfg.Server.MaxRecvMsgSize > 0 {
		sc.MaxRecvMsgSize = cfg.Server.MaxRecvMsgSize
	}
	if cfg.Server.KeepaliveInterval.Duration > 0 {
		sc.KeepaliveInterval = cfg.Server.KeepaliveInterval.Duration
	}
	return sc
}

// Server wraps a gRPC server with interceptors and the standard health
// service
type Server struct {
	server   *grpc.Server
	health   *health.Server
	config   ServerConfig
	logger   *logging.Logger
	listener net.Listener
}

// NewServer creates a new gRPC server
func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("grpc-server")
	}

	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepaliveInterval,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(logger),
			RequestIDInterceptor(),
			LoggingInterceptor(logger),
			ErrorMappingInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			StreamRecoveryInterceptor(logger),
			StreamLoggingInterceptor(logger),
		),
	}
	serverOpts = append(serverOpts, opts...)

	server := grpc.NewServer(serverOpts...)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)

	if cfg.EnableReflection {
		reflection.Register(server)
	}

	return &Server{
		server: server,
		health: hs,
		config: cfg,
		logger: logger,
	}
}

// GRPCServer returns the underlying gRPC server for service registration
func (s *Server) GRPCServer() *grpc.Server {
	return s.server
}

// SetServingStatus sets the health status reported for service; the empty
// name stands for the whole server
func (s *Server) SetServingStatus(service string, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, st)
}

// ApplyReport publishes a health report: unhealthy services stop serving,
// healthy and degraded ones keep serving
func (s *Server) ApplyReport(service string, report *corehealth.Report) {
	serving := report.Status != corehealth.StatusUnhealthy
	s.SetServingStatus(service, serving)
	if !serving {
		s.logger.Warn("service reported unhealthy", "service", service, "report", report.String())
	}
}

// Start listens on the configured address and serves until stopped
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener, e.g. an in-memory one in tests
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener
	s.logger.Info("gRPC server listening", "address", listener.Addr().String())
	return s.server.Serve(listener)
}

// StartAsync starts the gRPC server in a goroutine
func (s *Server) StartAsync() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	go func() {
		if err := s.Serve(listener); err != nil {
			s.logger.Error("gRPC server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// StopWithTimeout stops the server, forcing it once ctx is done
func (s *Server) StopWithTimeout(ctx context.Context) {
	s.health.Shutdown()
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
	}
}

// Address returns the server address
func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
