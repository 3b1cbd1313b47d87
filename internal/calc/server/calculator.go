package server

import (
	"context"

	coreGrpc "github.com/msto63/mZW/pkg/core/grpc"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "mzw.calc.v1.Calculator"

// Full method names
const (
	Calculator_Exec_FullMethodName           = "/" + ServiceName + "/Exec"
	Calculator_Tetrate_FullMethodName        = "/" + ServiceName + "/Tetrate"
	Calculator_Ackermann_FullMethodName      = "/" + ServiceName + "/Ackermann"
	Calculator_HeapSort_FullMethodName       = "/" + ServiceName + "/HeapSort"
	Calculator_RangeMax_FullMethodName       = "/" + ServiceName + "/RangeMax"
	Calculator_OrderStatistic_FullMethodName = "/" + ServiceName + "/OrderStatistic"
	Calculator_Calc_FullMethodName           = "/" + ServiceName + "/Calc"
)

// Messages travel as JSON; big integers are decimal strings.

// ExecRequest carries one command line
type ExecRequest struct {
	Line string `json:"line"`
}

// ExecResponse carries the command output
type ExecResponse struct {
	Output    string `json:"output"`
	SessionID string `json:"session_id"`
}

// TetrateRequest asks for base^^height
type TetrateRequest struct {
	Base   string `json:"base"`
	Height int    `json:"height"`
}

// AckermannRequest asks for A(m, n)
type AckermannRequest struct {
	M int64 `json:"m"`
	N int64 `json:"n"`
}

// AckermannResponse is a memoized grid value
type AckermannResponse struct {
	Value string `json:"value"`
	Exact bool   `json:"exact"`
	Clamp string `json:"clamp"`
}

// HeapSortRequest lists values to sort
type HeapSortRequest struct {
	Values     []string `json:"values"`
	Descending bool     `json:"descending,omitempty"`
}

// RangeMaxRequest asks for the maximum of values[start..end]
type RangeMaxRequest struct {
	Values []string `json:"values"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
}

// OrderStatisticRequest asks for the k-th smallest distinct value
type OrderStatisticRequest struct {
	Values []string `json:"values"`
	K      int      `json:"k"`
}

// CalcRequest applies Op to A and B; unary operators ignore B
type CalcRequest struct {
	Op string `json:"op"`
	A  string `json:"a"`
	B  string `json:"b,omitempty"`
}

// ValueResponse carries a single big integer
type ValueResponse struct {
	Value  string `json:"value"`
	Digits int    `json:"digits"`
}

// ValuesResponse carries a list of big integers
type ValuesResponse struct {
	Values []string `json:"values"`
}

// CalculatorServer is the server API for the Calculator service
type CalculatorServer interface {
	Exec(context.Context, *ExecRequest) (*ExecResponse, error)
	Tetrate(context.Context, *TetrateRequest) (*ValueResponse, error)
	Ackermann(context.Context, *AckermannRequest) (*AckermannResponse, error)
	HeapSort(context.Context, *HeapSortRequest) (*ValuesResponse, error)
	RangeMax(context.Context, *RangeMaxRequest) (*ValueResponse, error)
	OrderStatistic(context.Context, *OrderStatisticRequest) (*ValueResponse, error)
	Calc(context.Context, *CalcRequest) (*ValueResponse, error)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(CalculatorServer, context.Context, *Req) (*Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalculatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CalculatorServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Calculator_ServiceDesc is the grpc.ServiceDesc for the Calculator service
var Calculator_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Exec", Handler: unaryHandler(Calculator_Exec_FullMethodName, CalculatorServer.Exec)},
		{MethodName: "Tetrate", Handler: unaryHandler(Calculator_Tetrate_FullMethodName, CalculatorServer.Tetrate)},
		{MethodName: "Ackermann", Handler: unaryHandler(Calculator_Ackermann_FullMethodName, CalculatorServer.Ackermann)},
		{MethodName: "HeapSort", Handler: unaryHandler(Calculator_HeapSort_FullMethodName, CalculatorServer.HeapSort)},
		{MethodName: "RangeMax", Handler: unaryHandler(Calculator_RangeMax_FullMethodName, CalculatorServer.RangeMax)},
		{MethodName: "OrderStatistic", Handler: unaryHandler(Calculator_OrderStatistic_FullMethodName, CalculatorServer.OrderStatistic)},
		{MethodName: "Calc", Handler: unaryHandler(Calculator_Calc_FullMethodName, CalculatorServer.Calc)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mzw/calc/v1/calculator",
}

// RegisterCalculatorServer registers srv on s
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&Calculator_ServiceDesc, srv)
}

// CalculatorClient is the client API for the Calculator service
type CalculatorClient struct {
	cc grpc.ClientConnInterface
}

// NewCalculatorClient creates a client on an existing connection
func NewCalculatorClient(cc grpc.ClientConnInterface) *CalculatorClient {
	return &CalculatorClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{coreGrpc.JSONCallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Exec runs one command line in the server workspace
func (c *CalculatorClient) Exec(ctx context.Context, in *ExecRequest, opts ...grpc.CallOption) (*ExecResponse, error) {
	return invoke[ExecResponse](ctx, c.cc, Calculator_Exec_FullMethodName, in, opts)
}

// Tetrate evaluates base^^height
func (c *CalculatorClient) Tetrate(ctx context.Context, in *TetrateRequest, opts ...grpc.CallOption) (*ValueResponse, error) {
	return invoke[ValueResponse](ctx, c.cc, Calculator_Tetrate_FullMethodName, in, opts)
}

// Ackermann computes A(m, n)
func (c *CalculatorClient) Ackermann(ctx context.Context, in *AckermannRequest, opts ...grpc.CallOption) (*AckermannResponse, error) {
	return invoke[AckermannResponse](ctx, c.cc, Calculator_Ackermann_FullMethodName, in, opts)
}

// HeapSort sorts values
func (c *CalculatorClient) HeapSort(ctx context.Context, in *HeapSortRequest, opts ...grpc.CallOption) (*ValuesResponse, error) {
	return invoke[ValuesResponse](ctx, c.cc, Calculator_HeapSort_FullMethodName, in, opts)
}

// RangeMax returns the maximum of a range
func (c *CalculatorClient) RangeMax(ctx context.Context, in *RangeMaxRequest, opts ...grpc.CallOption) (*ValueResponse, error) {
	return invoke[ValueResponse](ctx, c.cc, Calculator_RangeMax_FullMethodName, in, opts)
}

// OrderStatistic returns the k-th smallest distinct value
func (c *CalculatorClient) OrderStatistic(ctx context.Context, in *OrderStatisticRequest, opts ...grpc.CallOption) (*ValueResponse, error) {
	return invoke[ValueResponse](ctx, c.cc, Calculator_OrderStatistic_FullMethodName, in, opts)
}

// Calc applies an arithmetic operator
func (c *CalculatorClient) Calc(ctx context.Context, in *CalcRequest, opts ...grpc.CallOption) (*ValueResponse, error) {
	return invoke[ValueResponse](ctx, c.cc, Calculator_Calc_FullMethodName, in, opts)
}
