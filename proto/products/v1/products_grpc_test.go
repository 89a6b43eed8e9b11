package productsv1

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeClientConn struct {
	invoke func(context.Context, string, any, any, ...grpc.CallOption) error
}

func (f *fakeClientConn) Invoke(ctx context.Context, method string, args any, reply any, opts ...grpc.CallOption) error {
	return f.invoke(ctx, method, args, reply, opts...)
}

func (f *fakeClientConn) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("not implemented")
}

type catalogStub struct {
	UnimplementedProductsServiceServer
}

func (catalogStub) ValidateProducts(_ context.Context, ids ValidateProductsRequest) (ValidateProductsResponse, error) {
	out := make(ValidateProductsResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, Product{ID: id, Price: decimal.NewFromInt(id), Name: "p"})
	}
	return out, nil
}

func TestProductsServiceClient(t *testing.T) {
	var gotMethod string
	var gotArgs any
	conn := &fakeClientConn{
		invoke: func(_ context.Context, method string, args any, reply any, _ ...grpc.CallOption) error {
			gotMethod = method
			gotArgs = args
			out, ok := reply.(*ValidateProductsResponse)
			if !ok {
				t.Fatalf("unexpected reply type %T", reply)
			}
			*out = ValidateProductsResponse{{ID: 1, Name: "Mouse"}}
			return nil
		},
	}

	products, err := NewProductsServiceClient(conn).ValidateProducts(context.Background(), ValidateProductsRequest{1})
	if err != nil {
		t.Fatalf("ValidateProducts failed: %v", err)
	}
	if gotMethod != ProductsService_ValidateProducts_FullMethodName {
		t.Fatalf("unexpected method %s", gotMethod)
	}
	if ids, ok := gotArgs.(ValidateProductsRequest); !ok || len(ids) != 1 {
		t.Fatalf("unexpected args %#v", gotArgs)
	}
	if len(products) != 1 || products[0].Name != "Mouse" {
		t.Fatalf("unexpected products %#v", products)
	}
}

func TestProductsServiceClientError(t *testing.T) {
	conn := &fakeClientConn{
		invoke: func(context.Context, string, any, any, ...grpc.CallOption) error {
			return status.Error(codes.Unavailable, "down")
		},
	}

	_, err := NewProductsServiceClient(conn).ValidateProducts(context.Background(), nil)
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("expected Unavailable, got %v", err)
	}
}

func TestValidateProductsHandler(t *testing.T) {
	decode := func(v any) error {
		*(v.(*ValidateProductsRequest)) = ValidateProductsRequest{3, 4}
		return nil
	}

	resp, err := _ProductsService_ValidateProducts_Handler(catalogStub{}, context.Background(), decode, nil)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if got := resp.(ValidateProductsResponse); len(got) != 2 {
		t.Fatalf("unexpected response %#v", got)
	}

	called := false
	_, err = _ProductsService_ValidateProducts_Handler(catalogStub{}, context.Background(), decode,
		func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			called = true
			if info.FullMethod != ProductsService_ValidateProducts_FullMethodName {
				t.Fatalf("unexpected method %s", info.FullMethod)
			}
			return handler(ctx, req)
		})
	if err != nil || !called {
		t.Fatalf("interceptor path failed: called=%v err=%v", called, err)
	}

	if _, err := (UnimplementedProductsServiceServer{}).ValidateProducts(context.Background(), nil); status.Code(err) != codes.Unimplemented {
		t.Fatalf("expected Unimplemented, got %v", err)
	}
}
