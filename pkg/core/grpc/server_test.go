package grpc

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/pkg/core/config"
	corehealth "github.com/msto63/mZW/pkg/core/health"
	"github.com/msto63/mZW/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type echoRequest struct {
	Text string `json:"text"`
	Fail string `json:"fail,omitempty"`
}

type echoResponse struct {
	Text      string `json:"text"`
	RequestID string `json:"request_id"`
}

func echoHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(echoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		r := req.(*echoRequest)
		switch r.Fail {
		case "input":
			return nil, errors.InvalidInput(errors.ModuleService, "Echo", r.Text, "anything else")
		case "overflow":
			return nil, errors.Overflow(errors.ModuleTower, "Echo", 10)
		case "empty":
			return nil, errors.EmptyStructure(errors.ModuleHeap, "Echo")
		case "panic":
			panic("echo exploded")
		}
		return &echoResponse{Text: strings.ToUpper(r.Text), RequestID: GetRequestID(ctx)}, nil
	}
	if interceptor == nil {
		return handler(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/mzw.test.Echo/Echo"}
	return interceptor(ctx, in, info, handler)
}

var echoServiceDesc = grpc.ServiceDesc{
	ServiceName: "mzw.test.Echo",
	HandlerType: (*interface{})(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Echo", Handler: echoHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "echo",
}

func startTestServer(t *testing.T) (*Server, *grpc.ClientConn) {
	t.Helper()

	cfg := DefaultServerConfig()
	cfg.Logger = logging.New("grpc-test").WithLevel(logging.LevelError)
	srv := NewServer(cfg)
	srv.GRPCServer().RegisterService(&echoServiceDesc, struct{}{})

	lis := bufconn.Listen(1024 * 1024)
	go func() {
		_ = srv.Serve(lis)
	}()

	clientCfg := DefaultClientConfig("passthrough:///bufnet")
	clientCfg.Logger = cfg.Logger
	conn, err := Dial(clientCfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
	})
	return srv, conn
}

func callEcho(ctx context.Context, conn *grpc.ClientConn, req *echoRequest, opts ...grpc.CallOption) (*echoResponse, error) {
	out := new(echoResponse)
	opts = append(opts, JSONCallOption())
	err := conn.Invoke(ctx, "/mzw.test.Echo/Echo", req, out, opts...)
	return out, err
}

func TestServer_JSONRoundTrip(t *testing.T) {
	_, conn := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := callEcho(ctx, conn, &echoRequest{Text: "zahl"})
	if err != nil {
		t.Fatalf("Echo() error = %v", err)
	}
	if resp.Text != "ZAHL" {
		t.Errorf("Text = %q, want %q", resp.Text, "ZAHL")
	}
	if resp.RequestID == "" {
		t.Error("handler should see a request ID")
	}
}

func TestServer_RequestIDPropagation(t *testing.T) {
	_, conn := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = WithRequestID(ctx, "req-42")

	var header metadata.MD
	resp, err := callEcho(ctx, conn, &echoRequest{Text: "x"}, grpc.Header(&header))
	if err != nil {
		t.Fatalf("Echo() error = %v", err)
	}
	if resp.RequestID != "req-42" {
		t.Errorf("RequestID = %q, want %q", resp.RequestID, "req-42")
	}
	if got := header.Get(RequestIDHeader); len(got) == 0 || got[0] != "req-42" {
		t.Errorf("response header %s = %v, want [req-42]", RequestIDHeader, got)
	}
}

func TestServer_ErrorMapping(t *testing.T) {
	_, conn := startTestServer(t)

	tests := []struct {
		fail string
		want codes.Code
	}{
		{"input", codes.InvalidArgument},
		{"overflow", codes.OutOfRange},
		{"empty", codes.FailedPrecondition},
		{"panic", codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.fail, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_, err := callEcho(ctx, conn, &echoRequest{Text: "x", Fail: tt.fail})
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := status.Code(err); got != tt.want {
				t.Errorf("code = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServer_Health(t *testing.T) {
	srv, conn := startTestServer(t)
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}

	srv.ApplyReport("calc", &corehealth.Report{Service: "calc", Status: corehealth.StatusUnhealthy})
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "calc"})
	if err != nil {
		t.Fatalf("Check(calc) error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("status = %v, want NOT_SERVING", resp.GetStatus())
	}

	srv.ApplyReport("calc", &corehealth.Report{Service: "calc", Status: corehealth.StatusDegraded})
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "calc"})
	if err != nil {
		t.Fatalf("Check(calc) error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"range", errors.OutOfRange(errors.ModuleIndexedArray, "QueryRange", 9, 0, 3), codes.InvalidArgument},
		{"not found", errors.NotFound(errors.ModuleGrid, "Get", "(1, 1)"), codes.NotFound},
		{"status passthrough", status.Error(codes.Unavailable, "down"), codes.Unavailable},
		{"plain", context.Canceled, codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServerConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 9911
	cfg.Server.MaxRecvMsgSize = 1024

	sc := ServerConfigFrom(cfg)
	if sc.Port != 9911 {
		t.Errorf("Port = %d, want 9911", sc.Port)
	}
	if sc.MaxRecvMsgSize != 1024 {
		t.Errorf("MaxRecvMsgSize = %d, want 1024", sc.MaxRecvMsgSize)
	}
	if sc.EnableReflection {
		t.Error("reflection should be off by default")
	}

	if got := ServerConfigFrom(nil); got.Port != DefaultServerConfig().Port {
		t.Errorf("nil config Port = %d", got.Port)
	}
}
