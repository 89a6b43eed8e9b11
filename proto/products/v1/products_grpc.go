package productsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/orders/proto/jsoncodec"
)

const ProductsService_ValidateProducts_FullMethodName = "/products.v1.ProductsService/ValidateProducts"

// ProductsServiceClient: клиентский API каталога.
type ProductsServiceClient interface {
	ValidateProducts(ctx context.Context, in ValidateProductsRequest, opts ...grpc.CallOption) (ValidateProductsResponse, error)
}

type productsServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewProductsServiceClient создаёт клиента каталога.
func NewProductsServiceClient(cc grpc.ClientConnInterface) ProductsServiceClient {
	return &productsServiceClient{cc: cc}
}

func (c *productsServiceClient) ValidateProducts(ctx context.Context, in ValidateProductsRequest, opts ...grpc.CallOption) (ValidateProductsResponse, error) {
	var out ValidateProductsResponse
	callOpts := append([]grpc.CallOption{jsoncodec.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, ProductsService_ValidateProducts_FullMethodName, in, &out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductsServiceServer: серверный API каталога.
type ProductsServiceServer interface {
	ValidateProducts(context.Context, ValidateProductsRequest) (ValidateProductsResponse, error)
}

// UnimplementedProductsServiceServer отвечает Unimplemented.
type UnimplementedProductsServiceServer struct{}

func (UnimplementedProductsServiceServer) ValidateProducts(context.Context, ValidateProductsRequest) (ValidateProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateProducts not implemented")
}

// RegisterProductsServiceServer регистрирует реализацию каталога.
func RegisterProductsServiceServer(s grpc.ServiceRegistrar, srv ProductsServiceServer) {
	s.RegisterService(&ProductsService_ServiceDesc, srv)
}

func _ProductsService_ValidateProducts_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	var in ValidateProductsRequest
	if err := dec(&in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductsServiceServer).ValidateProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProductsService_ValidateProducts_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductsServiceServer).ValidateProducts(ctx, req.(ValidateProductsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ProductsService_ServiceDesc: описание сервиса каталога.
var ProductsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "products.v1.ProductsService",
	HandlerType: (*ProductsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ValidateProducts", Handler: _ProductsService_ValidateProducts_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "products/v1/products.go",
}
