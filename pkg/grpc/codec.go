package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// JSONCodecName is the content-subtype clients select with
// grpc.CallContentSubtype to talk to services that exchange plain Go structs.
const JSONCodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec lets services exchange plain Go structs instead of generated
// protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return JSONCodecName
}
