package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// JSONCodecName is the content subtype under which JSONCodec is registered
const JSONCodecName = "json"

// JSONCodec marshals plain Go structs as JSON, so services can be
// declared with hand-written service descriptors instead of generated
// protobuf stubs
type JSONCodec struct{}

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

// Marshal encodes v as JSON
func (JSONCodec) Marshal(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec: marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes JSON data into v
func (JSONCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec: unmarshal %T: %w", v, err)
	}
	return nil
}

// Name returns the content subtype
func (JSONCodec) Name() string {
	return JSONCodecName
}
