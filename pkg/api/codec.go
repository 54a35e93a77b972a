// Package api defines the splitit.v1 connect services: request and response
// messages, procedure names, handler and client constructors.
//
// Messages are plain Go structs encoded as JSON. Amounts are sent as strings
// with two fractional digits; request amounts accept JSON numbers or strings.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

const codecName = "json"

// jsonCodec replaces connect's protobuf JSON codec for plain structs.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON configures a handler or client to speak the package's JSON encoding.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
