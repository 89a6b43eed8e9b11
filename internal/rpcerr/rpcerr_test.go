package rpcerr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func TestToStatus_DomainError(t *testing.T) {
	err := ToStatus(domain.NewOrderNotFound("abc"))

	require.Equal(t, codes.NotFound, status.Code(err))
	payload, ok := Payload(err)
	require.True(t, ok)
	require.Equal(t, map[string]any{"status": float64(404), "message": "Order abc not found"}, payload)
	require.True(t, IsStructured(payload))
}

func TestToStatus_PersistenceFailureIsBadRequest(t *testing.T) {
	err := ToStatus(domain.NewPersistenceFailure("order creation failed, check server logs", errors.New("pq: boom")))

	require.Equal(t, codes.InvalidArgument, status.Code(err))
	payload, ok := Payload(err)
	require.True(t, ok)
	require.Equal(t, float64(http.StatusBadRequest), payload["status"])
	require.NotContains(t, status.Convert(err).Message(), "pq")
}

func TestToStatus_UnknownErrorIsHidden(t *testing.T) {
	err := ToStatus(errors.New("secret connection string leaked"))

	require.Equal(t, codes.Internal, status.Code(err))
	require.Equal(t, "internal server error", status.Convert(err).Message())
	_, ok := Payload(err)
	require.False(t, ok)
}

func TestToStatus_PassesGRPCStatusThrough(t *testing.T) {
	original := status.Error(codes.DeadlineExceeded, "deadline")
	err := ToStatus(original)

	require.Equal(t, codes.DeadlineExceeded, status.Code(err))
	require.Equal(t, "deadline", status.Convert(err).Message())
}

func TestToStatus_Nil(t *testing.T) {
	require.NoError(t, ToStatus(nil))
}

func TestPayload_PlainError(t *testing.T) {
	_, ok := Payload(errors.New("plain"))
	require.False(t, ok)

	_, ok = Payload(status.Error(codes.InvalidArgument, "no details"))
	require.False(t, ok)
}

func TestWithPayload_KeepsArbitraryFields(t *testing.T) {
	err := WithPayload(codes.Unknown, map[string]any{"status": "abc", "message": "weird", "extra": true})

	payload, ok := Payload(err)
	require.True(t, ok)
	require.Equal(t, "abc", payload["status"])
	require.Equal(t, true, payload["extra"])
	require.Equal(t, "weird", status.Convert(err).Message())
}

func TestIsStructured(t *testing.T) {
	require.False(t, IsStructured(nil))
	require.False(t, IsStructured(map[string]any{"status": 400}))
	require.False(t, IsStructured(map[string]any{"message": "x"}))
	require.True(t, IsStructured(map[string]any{"status": nil, "message": nil}))
}

func TestCoerceStatus(t *testing.T) {
	cases := []struct {
		name  string
		value any
		code  int
		ok    bool
	}{
		{name: "int", value: 404, code: 404, ok: true},
		{name: "float", value: float64(409), code: 409, ok: true},
		{name: "numeric string", value: "404", code: 404, ok: true},
		{name: "padded string", value: " 503 ", code: 503, ok: true},
		{name: "non numeric", value: "abc", ok: false},
		{name: "empty string", value: "", ok: false},
		{name: "fraction", value: 404.5, ok: false},
		{name: "below range", value: 42, ok: false},
		{name: "above range", value: 600, ok: false},
		{name: "nil", value: nil, ok: false},
		{name: "bool", value: true, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, ok := CoerceStatus(tc.value)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.code, code)
			}
		})
	}
}

func TestCodeFromHTTP(t *testing.T) {
	require.Equal(t, codes.InvalidArgument, CodeFromHTTP(http.StatusBadRequest))
	require.Equal(t, codes.NotFound, CodeFromHTTP(http.StatusNotFound))
	require.Equal(t, codes.Unavailable, CodeFromHTTP(http.StatusServiceUnavailable))
	require.Equal(t, codes.Unknown, CodeFromHTTP(418))
}
