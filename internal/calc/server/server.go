package server

import (
	"context"
	"math/big"
	"net"
	"strings"
	"sync"
	"time"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
	"github.com/msto63/mZW/foundation/utils/numfmt"
	"github.com/msto63/mZW/internal/calc/service"
	"github.com/msto63/mZW/pkg/core/cache"
	"github.com/msto63/mZW/pkg/core/config"
	coreGrpc "github.com/msto63/mZW/pkg/core/grpc"
	"github.com/msto63/mZW/pkg/core/logging"
)

// DefaultHealthInterval is how often the workspace checks are published to
// the gRPC health service
const DefaultHealthInterval = 15 * time.Second

// Server is the Calculator gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	logger    *logging.Logger
	results   *cache.Cache[*ValueResponse]
	interval  time.Duration
	startTime time.Time

	stopOnce sync.Once
	done     chan struct{}
}

// Option configures a Server
type Option func(*Server)

// WithHealthInterval sets the health publishing interval
func WithHealthInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.interval = d
		}
	}
}

// New creates a Calculator server around svc
func New(cfg *config.Config, svc *service.Service, logger *logging.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.New("calc-server")
	}

	grpcCfg := coreGrpc.ServerConfigFrom(cfg)
	grpcCfg.Logger = logger
	grpcServer := coreGrpc.NewServer(grpcCfg)

	cacheCfg := cache.DefaultConfig()
	if cfg != nil {
		cacheCfg.MaxItems = cfg.Server.CacheSize
		cacheCfg.TTL = cfg.Server.CacheTTL.Duration
	}

	s := &Server{
		service:   svc,
		grpc:      grpcServer,
		logger:    logger,
		results:   cache.New[*ValueResponse](cacheCfg),
		interval:  DefaultHealthInterval,
		startTime: time.Now(),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	RegisterCalculatorServer(grpcServer.GRPCServer(), s)
	return s
}

// Start serves on the configured address until Stop
func (s *Server) Start() error {
	s.publishHealth()
	go s.healthLoop()
	return s.grpc.Start()
}

// Serve serves on lis until Stop
func (s *Server) Serve(lis net.Listener) error {
	s.publishHealth()
	go s.healthLoop()
	return s.grpc.Serve(lis)
}

// Stop stops the health loop and the gRPC server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.grpc.Stop()
		s.results.Close()
		s.logger.Info("calc server stopped", "uptime", time.Since(s.startTime).String())
	})
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

func (s *Server) healthLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.publishHealth()
		}
	}
}

func (s *Server) publishHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	report := s.service.Health(ctx)
	s.grpc.ApplyReport(ServiceName, report)
	s.grpc.ApplyReport("", report)
}

// Exec implements CalculatorServer.Exec
func (s *Server) Exec(ctx context.Context, req *ExecRequest) (*ExecResponse, error) {
	out, err := s.service.Exec(req.Line)
	if err != nil {
		return nil, err
	}
	return &ExecResponse{Output: out, SessionID: s.service.ID()}, nil
}

// Tetrate implements CalculatorServer.Tetrate
func (s *Server) Tetrate(ctx context.Context, req *TetrateRequest) (*ValueResponse, error) {
	base, err := numfmt.Parse(req.Base)
	if err != nil {
		return nil, err
	}
	v, err := s.service.Tetrate(base, req.Height)
	if err != nil {
		return nil, err
	}
	return valueResponse(v), nil
}

// Ackermann implements CalculatorServer.Ackermann
func (s *Server) Ackermann(ctx context.Context, req *AckermannRequest) (*AckermannResponse, error) {
	r, err := s.service.Ackermann(req.M, req.N)
	if err != nil {
		return nil, err
	}
	return &AckermannResponse{
		Value: r.Value.String(),
		Exact: r.Exact(),
		Clamp: r.Clamp.String(),
	}, nil
}

// HeapSort implements CalculatorServer.HeapSort
func (s *Server) HeapSort(ctx context.Context, req *HeapSortRequest) (*ValuesResponse, error) {
	values, err := parseValues(req.Values)
	if err != nil {
		return nil, err
	}
	sorted, err := s.service.HeapSort(values, req.Descending)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(sorted))
	for i, v := range sorted {
		out[i] = v.String()
	}
	return &ValuesResponse{Values: out}, nil
}

// RangeMax implements CalculatorServer.RangeMax
func (s *Server) RangeMax(ctx context.Context, req *RangeMaxRequest) (*ValueResponse, error) {
	values, err := parseValues(req.Values)
	if err != nil {
		return nil, err
	}
	v, err := s.service.RangeMax(values, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return valueResponse(v), nil
}

// OrderStatistic implements CalculatorServer.OrderStatistic
func (s *Server) OrderStatistic(ctx context.Context, req *OrderStatisticRequest) (*ValueResponse, error) {
	values, err := parseValues(req.Values)
	if err != nil {
		return nil, err
	}
	v, err := s.service.OrderStatistic(values, req.K)
	if err != nil {
		return nil, err
	}
	return valueResponse(v), nil
}

// Calc implements CalculatorServer.Calc
func (s *Server) Calc(ctx context.Context, req *CalcRequest) (*ValueResponse, error) {
	a, err := numfmt.Parse(req.A)
	if err != nil {
		return nil, err
	}
	var b any
	if strings.TrimSpace(req.B) != "" {
		if b, err = numfmt.Parse(req.B); err != nil {
			return nil, err
		}
	} else if !service.IsUnary(req.Op) {
		return nil, mzwerror.New("second operand required").
			WithCode(mzwerror.CodeInvalidInput).
			WithOperation("server.Calc").
			WithDetail("op", req.Op)
	}

	key := strings.ToLower(req.Op) + " " + a.String()
	if b != nil {
		key += " " + b.(*big.Int).String()
	}
	return s.results.GetOrSet(key, func() (*ValueResponse, error) {
		v, err := s.service.Calc(req.Op, a, b)
		if err != nil {
			return nil, err
		}
		return valueResponse(v), nil
	})
}

// CacheStats returns hits and misses of the Calc result cache
func (s *Server) CacheStats() (hits, misses int64) {
	hits, misses, _ = s.results.Stats()
	return hits, misses
}

func parseValues(raw []string) ([]any, error) {
	out := make([]any, len(raw))
	for i, r := range raw {
		v, err := numfmt.Parse(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func valueResponse(v *big.Int) *ValueResponse {
	digits := len(new(big.Int).Abs(v).String())
	return &ValueResponse{Value: v.String(), Digits: digits}
}
