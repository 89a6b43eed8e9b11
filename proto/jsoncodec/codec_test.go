package jsoncodec

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	registered := encoding.GetCodec(Name)
	require.NotNil(t, registered)
	require.Equal(t, Name, registered.Name())
}

func TestCodecRoundTrip(t *testing.T) {
	type payload struct {
		ID    int64  `json:"id"`
		Label string `json:"label"`
	}

	data, err := codec{}.Marshal(payload{ID: 7, Label: "seven"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":7,"label":"seven"}`, string(data))

	var decoded payload
	require.NoError(t, codec{}.Unmarshal(data, &decoded))
	require.Equal(t, payload{ID: 7, Label: "seven"}, decoded)
}

func TestCodecEmptyPayload(t *testing.T) {
	var ids []int64
	require.NoError(t, codec{}.Unmarshal(nil, &ids))
	require.Nil(t, ids)
}

func TestCodecInvalidPayload(t *testing.T) {
	var ids []int64
	err := codec{}.Unmarshal([]byte(`{"not":"array"}`), &ids)
	require.Error(t, err)
	require.Contains(t, err.Error(), "jsoncodec")
}
